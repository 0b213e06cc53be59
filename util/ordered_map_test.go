package util

import "testing"

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	om := NewOrderedMap[string, int]()

	om.Set("c", 3)
	om.Set("a", 1)
	om.Set("b", 2)

	wantKeys := []string{"c", "a", "b"}
	gotKeys := om.Keys()

	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("expected %d keys, got %d", len(wantKeys), len(gotKeys))
	}

	for i, k := range wantKeys {
		if gotKeys[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, gotKeys[i])
		}
	}

	wantValues := []int{3, 1, 2}
	for i, v := range om.Values() {
		if v != wantValues[i] {
			t.Errorf("value %d: expected %d, got %d", i, wantValues[i], v)
		}
	}
}

func TestOrderedMapSetKeepsPosition(t *testing.T) {
	om := NewOrderedMap[string, int]()

	om.Set("a", 1)
	om.Set("b", 2)
	om.Set("a", 10)

	if om.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", om.Len())
	}

	if keys := om.Keys(); keys[0] != "a" || keys[1] != "b" {
		t.Errorf("unexpected key order: %v", keys)
	}

	if v, ok := om.Get("a"); !ok || v != 10 {
		t.Errorf("expected a=10, got %d (present=%v)", v, ok)
	}
}

func TestOrderedMapGetMissing(t *testing.T) {
	om := NewOrderedMap[string, int]()

	if _, ok := om.Get("missing"); ok {
		t.Error("expected a miss for an absent key")
	}

	if om.Has("missing") {
		t.Error("Has should report false for an absent key")
	}
}

func TestContains(t *testing.T) {
	xs := []string{"a", "b", "c"}

	if !Contains(xs, "b") {
		t.Error("expected to find b")
	}

	if Contains(xs, "d") {
		t.Error("did not expect to find d")
	}
}

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(x int) int { return x * 2 })

	want := []int{2, 4, 6}
	for i, v := range doubled {
		if v != want[i] {
			t.Errorf("element %d: expected %d, got %d", i, want[i], v)
		}
	}
}

func TestFilter(t *testing.T) {
	evens := Filter([]int{1, 2, 3, 4}, func(x int) bool { return x%2 == 0 })

	if len(evens) != 2 || evens[0] != 2 || evens[1] != 4 {
		t.Errorf("unexpected filter result: %v", evens)
	}
}
