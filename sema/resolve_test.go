package sema_test

import (
	"testing"

	"pplc/depm"
	"pplc/hir"
	"pplc/sema"
	"pplc/syntax"
)

func lower(t *testing.T, src string) (*hir.Module, []error) {
	t.Helper()

	c := depm.NewCompiler()

	mod, err := syntax.Parse("test", src)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}

	return c.LowerModule(mod)
}

func lowerOK(t *testing.T, src string) *hir.Module {
	t.Helper()

	m, errs := lower(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	return m
}

func lowerFail(t *testing.T, src string) error {
	t.Helper()

	_, errs := lower(t, src)
	if len(errs) == 0 {
		t.Fatal("expected errors")
	}

	return errs[0]
}

func variableType(t *testing.T, m *hir.Module, name string) string {
	t.Helper()

	v := m.VariableNamed(name)
	if v == nil {
		t.Fatalf("variable `%s` not found", name)
	}

	return v.Type.Repr()
}

func TestModuleLowering(t *testing.T) {
	m := lowerOK(t, "let x = 1\nx\n")

	v := m.VariableNamed("x")
	if v == nil || v.Mut {
		t.Fatal("expected an immutable module variable x")
	}

	if v.Type.Repr() != "Integer" {
		t.Errorf("expected x: Integer, got %s", v.Type.Repr())
	}

	var expr *hir.ExpressionStmt
	for _, stmt := range m.Statements {
		if es, ok := stmt.(*hir.ExpressionStmt); ok {
			expr = es
		}
	}

	if expr == nil {
		t.Fatal("expected the bare expression to survive as a module statement")
	}

	ref, ok := expr.Expr.(*hir.VariableReference)
	if !ok || ref.Var != hir.Local(v) {
		t.Error("expected the statement to reference the module variable")
	}
}

func TestOverloadResolution(t *testing.T) {
	m := lowerOK(t, `
fn inc <x: Integer> -> Integer => x + 1
fn inc <x: String> -> String => x + "!"

let a = inc 5
let b = inc "hi"
`)

	if got := variableType(t, m, "a"); got != "Integer" {
		t.Errorf("expected a: Integer, got %s", got)
	}

	if got := variableType(t, m, "b"); got != "String" {
		t.Errorf("expected b: String, got %s", got)
	}
}

func TestMultiPartNames(t *testing.T) {
	m := lowerOK(t, `
fn distance from <a: Integer> to <b: Integer> -> Integer => b - a

let d = distance from 3 to 10
`)

	if got := variableType(t, m, "d"); got != "Integer" {
		t.Errorf("expected d: Integer, got %s", got)
	}

	f := m.FunctionWithName("distance from <:Integer> to <:Integer>")
	if f == nil {
		t.Fatal("expected the function to be registered under its full name")
	}

	if f.NameFormat() != "distance from <> to <>" {
		t.Errorf("unexpected name format %q", f.NameFormat())
	}
}

func TestBareNameCall(t *testing.T) {
	m := lowerOK(t, `
fn answer -> Integer => 42

let x = answer
`)

	if got := variableType(t, m, "x"); got != "Integer" {
		t.Errorf("expected x: Integer, got %s", got)
	}

	v := m.VariableNamed("x")
	if _, ok := v.Initializer.(*hir.Call); !ok {
		t.Errorf("expected the initializer to be a call, got %T", v.Initializer)
	}
}

func TestImplicitReturnDeduction(t *testing.T) {
	m := lowerOK(t, `
fn double <x: Integer> => x + x

let y = double 4
`)

	f := m.FunctionWithName("double <:Integer>")
	if f == nil {
		t.Fatal("function not found")
	}

	if f.Return.Repr() != "Integer" {
		t.Errorf("expected the return type to be deduced as Integer, got %s", f.Return.Repr())
	}

	last := f.Body[len(f.Body)-1]
	ret, ok := last.(*hir.Return)
	if !ok || !ret.Implicit {
		t.Error("expected the body to end in an implicit return")
	}
}

func TestCallBeforeDeduction(t *testing.T) {
	err := lowerFail(t, `
let y = bump 1

fn bump <x: Integer> => x + 1
`)

	if _, ok := err.(*sema.CantDeduceType); !ok {
		t.Errorf("expected a deduction error, got %T: %s", err, err)
	}
}

func TestImplicitReturnOfUndefinedValue(t *testing.T) {
	err := lowerFail(t, `
fn f => g

let g = 1
`)

	if _, ok := err.(*sema.CantDeduceReturnType); !ok {
		t.Errorf("expected a return deduction error, got %T: %s", err, err)
	}
}

func TestOperatorResolution(t *testing.T) {
	m := lowerOK(t, `
let s = (1 + 2) * 3
let eq = 2 == 2
`)

	if got := variableType(t, m, "s"); got != "Integer" {
		t.Errorf("expected s: Integer, got %s", got)
	}

	if got := variableType(t, m, "eq"); got != "Bool" {
		t.Errorf("expected eq: Bool, got %s", got)
	}
}

func TestDirectRecursion(t *testing.T) {
	lowerOK(t, `
fn count down <n: Integer> -> Integer:
	if n < 1:
		return 0
	return count down (n - 1)
`)
}

func TestNoFunctionError(t *testing.T) {
	err := lowerFail(t, "let z = frobnicate 1 2\n")

	nf, ok := err.(*sema.NoFunction)
	if !ok {
		t.Fatalf("expected a no-function error, got %T: %s", err, err)
	}

	if nf.Kind != "function" {
		t.Errorf("expected kind function, got %s", nf.Kind)
	}

	if nf.Name != "frobnicate <:Integer> <:Integer>" {
		t.Errorf("unexpected rendered name %q", nf.Name)
	}
}

func TestNoOperationError(t *testing.T) {
	err := lowerFail(t, "let z = \"a\" - \"b\"\n")

	nf, ok := err.(*sema.NoFunction)
	if !ok {
		t.Fatalf("expected a no-function error, got %T: %s", err, err)
	}

	if nf.Kind != "operation" {
		t.Errorf("expected kind operation, got %s", nf.Kind)
	}

	if len(nf.Candidates) == 0 {
		t.Fatal("expected the rejected candidates to be reported")
	}

	atm, ok := nf.Candidates[0].Reason.(*sema.ArgumentTypeMismatch)
	if !ok {
		t.Fatalf("expected an argument type reason, got %T", nf.Candidates[0].Reason)
	}

	if atm.Got.Repr() != "String" {
		t.Errorf("expected the String argument to be reported, got %s", atm.Got.Repr())
	}
}

func TestUndefinedVariable(t *testing.T) {
	err := lowerFail(t, "let u = nope\n")

	if _, ok := err.(*sema.UndefinedVariable); !ok {
		t.Errorf("expected an undefined variable error, got %T: %s", err, err)
	}
}

func TestUnknownType(t *testing.T) {
	err := lowerFail(t, "let q: Missing = 1\n")

	if _, ok := err.(*sema.UnknownType); !ok {
		t.Errorf("expected an unknown type error, got %T: %s", err, err)
	}
}

func TestConditionTypeMismatch(t *testing.T) {
	err := lowerFail(t, "fn f:\n\tif 1:\n\t\treturn\n")

	if _, ok := err.(*sema.ConditionTypeMismatch); !ok {
		t.Errorf("expected a condition type error, got %T: %s", err, err)
	}
}

func TestAssignmentToImmutable(t *testing.T) {
	err := lowerFail(t, "fn f:\n\tlet x = 1\n\tx = 2\n")

	if _, ok := err.(*sema.AssignmentToImmutable); !ok {
		t.Errorf("expected an immutable assignment error, got %T: %s", err, err)
	}
}

func TestMutableAssignment(t *testing.T) {
	lowerOK(t, "fn f:\n\tlet mut x = 1\n\tx = 2\n")
}

func TestReturnTypeMismatch(t *testing.T) {
	err := lowerFail(t, "fn f -> String:\n\treturn 1\n")

	if _, ok := err.(*sema.ReturnTypeMismatch); !ok {
		t.Errorf("expected a return type error, got %T: %s", err, err)
	}
}

func TestMissingReturnValue(t *testing.T) {
	err := lowerFail(t, "fn f -> Integer:\n\treturn\n")

	if _, ok := err.(*sema.MissingReturnValue); !ok {
		t.Errorf("expected a missing return value error, got %T: %s", err, err)
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	err := lowerFail(t, "return\n")

	if _, ok := err.(*sema.ReturnOutsideFunction); !ok {
		t.Errorf("expected a return placement error, got %T: %s", err, err)
	}
}

func TestMutableReferenceToImmutable(t *testing.T) {
	err := lowerFail(t, `
fn poke <y: &mut Integer>

fn f <x: Integer>:
	poke x
`)

	nf, ok := err.(*sema.NoFunction)
	if !ok {
		t.Fatalf("expected a no-function error, got %T: %s", err, err)
	}

	if len(nf.Candidates) == 0 {
		t.Fatal("expected the rejected candidate to be reported")
	}

	if _, ok := nf.Candidates[0].Reason.(*sema.ReferenceMutToImmutable); !ok {
		t.Errorf("expected a mutability reason, got %T", nf.Candidates[0].Reason)
	}
}

func TestConstructorAndMembers(t *testing.T) {
	m := lowerOK(t, `
type Point:
	x: Integer
	y: Integer

let p = Point { x: 1, y: 2 }
let px = p.x
`)

	if got := variableType(t, m, "p"); got != "Point" {
		t.Errorf("expected p: Point, got %s", got)
	}

	if got := variableType(t, m, "px"); got != "Integer" {
		t.Errorf("expected px: Integer, got %s", got)
	}
}

func TestConstructorMissingFields(t *testing.T) {
	err := lowerFail(t, `
type Point:
	x: Integer
	y: Integer

let p = Point { x: 1 }
`)

	mf, ok := err.(*sema.MissingFields)
	if !ok {
		t.Fatalf("expected a missing fields error, got %T: %s", err, err)
	}

	if len(mf.Fields) != 1 || mf.Fields[0] != "y" {
		t.Errorf("expected y to be missing, got %v", mf.Fields)
	}
}

func TestConstructorShorthand(t *testing.T) {
	m := lowerOK(t, `
type Wrapper:
	value: Integer

let value = 7
let w = Wrapper { value }
`)

	if got := variableType(t, m, "w"); got != "Wrapper" {
		t.Errorf("expected w: Wrapper, got %s", got)
	}
}

func TestGenericClassDeduction(t *testing.T) {
	m := lowerOK(t, `
type Box<T>:
	value: T

let b = Box { value: 3 }
let v = b.value
`)

	if got := variableType(t, m, "b"); got != "Box<Integer>" {
		t.Errorf("expected b: Box<Integer>, got %s", got)
	}

	if got := variableType(t, m, "v"); got != "Integer" {
		t.Errorf("expected v: Integer, got %s", got)
	}
}

func TestUseImport(t *testing.T) {
	c := depm.NewCompiler()

	libAST, err := syntax.Parse("lib", "fn triple <x: Integer> -> Integer => x + x\n")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}

	if _, errs := c.LowerModule(libAST); len(errs) > 0 {
		t.Fatalf("unexpected errors in lib: %v", errs)
	}

	appAST, err := syntax.Parse("app", "use lib.triple\nlet n = triple 2\n")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}

	app, errs := c.LowerModule(appAST)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors in app: %v", errs)
	}

	if v := app.VariableNamed("n"); v == nil || v.Type.Repr() != "Integer" {
		t.Error("expected n: Integer imported through use")
	}
}

func TestUseWildcard(t *testing.T) {
	c := depm.NewCompiler()

	libAST, _ := syntax.Parse("lib", "type Pair:\n\tfirst: Integer\n\tsecond: Integer\n")
	if _, errs := c.LowerModule(libAST); len(errs) > 0 {
		t.Fatalf("unexpected errors in lib: %v", errs)
	}

	appAST, _ := syntax.Parse("app", "use lib.*\nlet p = Pair { first: 1, second: 2 }\n")
	app, errs := c.LowerModule(appAST)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors in app: %v", errs)
	}

	if v := app.VariableNamed("p"); v == nil || v.Type.Repr() != "Pair" {
		t.Error("expected p: Pair imported through the wildcard")
	}
}

func TestUnresolvedImport(t *testing.T) {
	err := lowerFail(t, "use nothing.here\n")

	if _, ok := err.(*sema.UnresolvedImport); !ok {
		t.Errorf("expected an unresolved import error, got %T: %s", err, err)
	}
}

func TestVariableShadowing(t *testing.T) {
	m := lowerOK(t, `
fn f -> String:
	let x = 1
	let x = "shadow"
	return x
`)

	f := m.FunctionWithName("f")
	if f == nil {
		t.Fatal("function not found")
	}
}
