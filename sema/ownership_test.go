package sema_test

import (
	"testing"

	"pplc/hir"
)

func fnNamed(t *testing.T, m *hir.Module, name string) *hir.Function {
	t.Helper()

	f := m.FunctionWithName(name)
	if f == nil {
		t.Fatalf("function `%s` not found", name)
	}

	return f
}

// countCalls counts top-level expression statements calling the given symbol.
func countCalls(stmts []hir.Statement, link string) int {
	n := 0

	for _, stmt := range stmts {
		es, ok := stmt.(*hir.ExpressionStmt)
		if !ok {
			continue
		}

		if call, ok := es.Expr.(*hir.Call); ok && call.Function.LinkName() == link {
			n++
		}
	}

	return n
}

func TestDestructorsAtScopeEnd(t *testing.T) {
	m := lowerOK(t, `
fn consume <s: String>:
	let x = s + "!"
`)

	f := fnNamed(t, m, "consume <:String>")

	if got := countCalls(f.Body, "ppl_string_destroy"); got != 2 {
		t.Errorf("expected the parameter and the local to be destroyed, got %d calls", got)
	}

	last, ok := f.Body[len(f.Body)-1].(*hir.ExpressionStmt)
	if !ok {
		t.Fatal("expected the body to end in a destroy call")
	}

	arg := last.Expr.(*hir.Call).Args[0].(*hir.ImplicitConversion)
	if arg.Kind != hir.ConvReference {
		t.Error("expected the destroyed value to be passed by mutable reference")
	}
}

func TestReturnedLocalEscapesDestruction(t *testing.T) {
	m := lowerOK(t, `
fn pass <s: String> -> String:
	return s
`)

	f := fnNamed(t, m, "pass <:String>")

	if len(f.Body) != 1 {
		t.Fatalf("expected only the return to remain, got %d statements", len(f.Body))
	}

	if _, ok := f.Body[0].(*hir.Return); !ok {
		t.Fatalf("expected a return, got %T", f.Body[0])
	}
}

func TestAssignmentDestroysOldValue(t *testing.T) {
	m := lowerOK(t, `
fn overwrite:
	let mut s = "a"
	s = "b"
`)

	f := fnNamed(t, m, "overwrite")

	if got := countCalls(f.Body, "ppl_string_destroy"); got != 2 {
		t.Errorf("expected the old value and the scope exit to destroy, got %d calls", got)
	}
}

func TestBranchDestruction(t *testing.T) {
	m := lowerOK(t, `
fn pick <a: Integer> <b: Integer> -> Integer:
	if a < b:
		return b
	return a
`)

	f := fnNamed(t, m, "pick <:Integer> <:Integer>")

	var cond *hir.If
	for _, stmt := range f.Body {
		if s, ok := stmt.(*hir.If); ok {
			cond = s
		}
	}

	if cond == nil {
		t.Fatal("expected the if statement to survive")
	}

	// the branch returning b must destroy a, and the fallthrough returning a
	// must destroy b
	if got := countCalls(cond.Body, "ppl_integer_destroy"); got != 1 {
		t.Errorf("expected one destroy inside the branch, got %d", got)
	}

	if got := countCalls(f.Body, "ppl_integer_destroy"); got != 1 {
		t.Errorf("expected one destroy before the final return, got %d", got)
	}
}

func TestArgumentCloned(t *testing.T) {
	m := lowerOK(t, `
fn consume <s: String>

fn hand over <s: String>:
	consume s
`)

	f := fnNamed(t, m, "hand over <:String>")

	es, ok := f.Body[0].(*hir.ExpressionStmt)
	if !ok {
		t.Fatalf("expected the call statement first, got %T", f.Body[0])
	}

	arg, ok := es.Expr.(*hir.Call).Args[0].(*hir.Call)
	if !ok {
		t.Fatalf("expected the argument to be cloned, got %T", es.Expr.(*hir.Call).Args[0])
	}

	if arg.Function.LinkName() != "ppl_string_clone" {
		t.Errorf("expected a clone call, got %s", arg.Function.LinkName())
	}

	if got := countCalls(f.Body, "ppl_string_destroy"); got != 1 {
		t.Errorf("expected the parameter to be destroyed once, got %d calls", got)
	}
}

func TestTemporaryForReferenceToRvalue(t *testing.T) {
	m := lowerOK(t, `
fn norm <x: &Integer> -> Integer => x + 0

let t = norm 41
`)

	var block *hir.Block
	for _, stmt := range m.Statements {
		if b, ok := stmt.(*hir.Block); ok {
			block = b
		}
	}

	if block == nil {
		t.Fatal("expected the statement to be wrapped in a block")
	}

	decl, ok := block.Statements[0].(*hir.Declaration)
	if !ok || !decl.Var.IsTemporary() {
		t.Fatal("expected the block to declare a temporary first")
	}

	if decl.Var.Type.Repr() != "Integer" {
		t.Errorf("expected the temporary to be an Integer, got %s", decl.Var.Type.Repr())
	}
}
