package util

// OrderedMap is a map which additionally remembers the order in which keys
// were first inserted.  Module registries use it so that declarations are
// processed and emitted in source order.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates a new, empty ordered map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

// Get retrieves the value stored under key, if any.
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := om.values[key]
	return v, ok
}

// Set stores value under key.  If the key is already present, its value is
// replaced but its position in the insertion order is retained.
func (om *OrderedMap[K, V]) Set(key K, value V) {
	if _, ok := om.values[key]; !ok {
		om.keys = append(om.keys, key)
	}

	om.values[key] = value
}

// Has returns whether key is present.
func (om *OrderedMap[K, V]) Has(key K) bool {
	_, ok := om.values[key]
	return ok
}

// Len returns the number of entries.
func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}

// Keys returns the keys in insertion order.  The returned slice must not be
// mutated.
func (om *OrderedMap[K, V]) Keys() []K {
	return om.keys
}

// Values returns the values in insertion order.
func (om *OrderedMap[K, V]) Values() []V {
	vals := make([]V, 0, len(om.keys))

	for _, k := range om.keys {
		vals = append(vals, om.values[k])
	}

	return vals
}
