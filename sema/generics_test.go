package sema_test

import (
	"testing"

	"pplc/hir"
	"pplc/sema"
)

func TestGenericMonomorphization(t *testing.T) {
	m := lowerOK(t, `
fn<T> identity <x: T> -> T => x

let a = identity 3
`)

	if got := variableType(t, m, "a"); got != "Integer" {
		t.Errorf("expected a: Integer, got %s", got)
	}

	f := m.FunctionWithName("identity <:Integer>")
	if f == nil {
		t.Fatal("expected the Integer specialization to be recorded")
	}

	if !f.Defined {
		t.Error("expected the specialization to carry a body")
	}

	if f.SpecializationOf == nil || f.SpecializationOf.NameFormat() != "identity <>" {
		t.Error("expected the specialization to point at its generic original")
	}
}

func TestGenericSharedSpecialization(t *testing.T) {
	m := lowerOK(t, `
fn<T> identity <x: T> -> T => x

let a = identity 3
let b = identity 4
let c = identity "s"
`)

	integers := 0
	for _, f := range m.Monomorphized {
		if f.Name() == "identity <:Integer>" {
			integers++
		}
	}

	if integers != 1 {
		t.Errorf("expected one shared Integer specialization, got %d", integers)
	}

	if m.FunctionWithName("identity <:String>") == nil {
		t.Error("expected a String specialization as well")
	}
}

func TestRecursiveGenericTermination(t *testing.T) {
	m := lowerOK(t, `
fn<T> echo <x: T> -> T => echo x

let e = echo 1
`)

	var echoes []*hir.Function
	for _, f := range m.Monomorphized {
		if f.Name() == "echo <:Integer>" {
			echoes = append(echoes, f)
		}
	}

	if len(echoes) != 1 {
		t.Fatalf("expected exactly one echo specialization, got %d", len(echoes))
	}

	ret, ok := echoes[0].Body[len(echoes[0].Body)-1].(*hir.Return)
	if !ok {
		t.Fatal("expected the body to end in a return")
	}

	call, ok := ret.Value.(*hir.Call)
	if !ok {
		t.Fatalf("expected the returned value to be a call, got %T", ret.Value)
	}

	if call.Function != echoes[0] {
		t.Error("expected the recursive call to target the specialization itself")
	}
}

func TestTraitConformance(t *testing.T) {
	m := lowerOK(t, `
trait Show:
	fn show <s: &Self> -> String

type Point:
	x: Integer

fn show <p: &Point> -> String => "point"

fn describe <x: Show> -> String => show x

let d = describe Point { x: 1 }
`)

	if got := variableType(t, m, "d"); got != "String" {
		t.Errorf("expected d: String, got %s", got)
	}

	if m.FunctionWithName("describe <:Point>") == nil {
		t.Error("expected describe to be specialized for Point")
	}
}

func TestTraitNotImplemented(t *testing.T) {
	err := lowerFail(t, `
trait Show:
	fn show <s: &Self> -> String

fn describe <x: Show> -> String => show x

let d = describe 5
`)

	nf, ok := err.(*sema.NoFunction)
	if !ok {
		t.Fatalf("expected a no-function error, got %T: %s", err, err)
	}

	if len(nf.Candidates) == 0 {
		t.Fatal("expected the rejected candidate to be reported")
	}

	if _, ok := nf.Candidates[0].Reason.(*sema.NotImplemented); !ok {
		t.Errorf("expected a conformance reason, got %T", nf.Candidates[0].Reason)
	}
}

func TestTraitDefaultMethod(t *testing.T) {
	m := lowerOK(t, `
trait Greet:
	fn greeting <g: &Self> -> String
	fn greet <g: &Self> -> String => "hello, " + (greeting g)

type Person:
	name: String

fn greeting <p: &Person> -> String => "someone"

let msg = greet Person { name: "Ada" }
`)

	if got := variableType(t, m, "msg"); got != "String" {
		t.Errorf("expected msg: String, got %s", got)
	}
}

func TestTraitOperator(t *testing.T) {
	m := lowerOK(t, `
type A

trait Eq:
	fn <x: &Self> == <y: &Self> -> Bool

fn <x: A> == <y: A> -> Bool => true

let r = A == A
`)

	if got := variableType(t, m, "r"); got != "Bool" {
		t.Errorf("expected r: Bool, got %s", got)
	}

	info := m.VariableNamed("$type@A")
	if info == nil {
		t.Fatal("expected a type info singleton for A")
	}

	if info.Type.Repr() != "Type<A>" {
		t.Errorf("expected the singleton to have type Type<A>, got %s", info.Type.Repr())
	}

	if _, ok := info.Initializer.(*hir.Constructor); !ok {
		t.Errorf("expected the singleton to be built by a constructor, got %T", info.Initializer)
	}
}

func TestTraitOperatorUnimplemented(t *testing.T) {
	err := lowerFail(t, `
type A

trait Eq:
	fn <x: &Self> == <y: &Self> -> Bool

let r = A == A
`)

	nf, ok := err.(*sema.NoFunction)
	if !ok {
		t.Fatalf("expected a no-function error, got %T: %s", err, err)
	}

	found := false
	for _, c := range nf.Candidates {
		if _, ok := c.Reason.(*sema.NotImplemented); ok {
			found = true
		}
	}

	if !found {
		t.Error("expected the trait operator to be rejected for lack of an implementation")
	}
}

func TestTypeInfoSingletonShared(t *testing.T) {
	m := lowerOK(t, `
type A

fn <x: A> == <y: A> -> Bool => true

let r1 = A == A
let r2 = A == A
`)

	count := 0
	for _, stmt := range m.Statements {
		if decl, ok := stmt.(*hir.Declaration); ok && decl.Var.Name == "$type@A" {
			count++
		}
	}

	if count != 1 {
		t.Errorf("expected one shared type info declaration, got %d", count)
	}
}
