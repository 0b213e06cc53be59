package syntax

import (
	"testing"

	"pplc/ast"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()

	mod, err := Parse("test", src)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}

	return mod
}

func TestParseFunctionDecl(t *testing.T) {
	mod := parse(t, "fn distance from <a: Point> to <b: Point> -> Rational\n")

	fn, ok := mod.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected a function declaration, got %T", mod.Statements[0])
	}

	if len(fn.NameParts) != 5 {
		t.Fatalf("expected 5 name parts, got %d", len(fn.NameParts))
	}

	words := []int{0, 1, 3}
	for _, i := range words {
		if _, ok := fn.NameParts[i].(*ast.FnNameWord); !ok {
			t.Errorf("name part %d: expected a word, got %T", i, fn.NameParts[i])
		}
	}

	for _, i := range []int{2, 4} {
		param, ok := fn.NameParts[i].(*ast.FnNameParam)
		if !ok {
			t.Fatalf("name part %d: expected a parameter, got %T", i, fn.NameParts[i])
		}

		if param.Ty.Name.Name != "Point" {
			t.Errorf("name part %d: expected type Point, got %s", i, param.Ty.Name.Name)
		}
	}

	if fn.ReturnType == nil || fn.ReturnType.Name.Name != "Rational" {
		t.Error("expected return type Rational")
	}

	if fn.HasBody {
		t.Error("a bodyless declaration should not have a body")
	}
}

func TestParseExpressionBody(t *testing.T) {
	mod := parse(t, "fn double <x: Integer> => x + x\n")

	fn := mod.Statements[0].(*ast.FunctionDecl)
	if !fn.HasBody || !fn.ImplicitReturn {
		t.Fatal("expected an implicit-return body")
	}

	es, ok := fn.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", fn.Body[0])
	}

	call, ok := es.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected a call, got %T", es.Expr)
	}

	if call.Kind != ast.CallOperation {
		t.Error("a call containing an operator should be an operation")
	}
}

func TestParseGenericFunction(t *testing.T) {
	mod := parse(t, "fn<T> identity <x: T> -> T => x\n")

	fn := mod.Statements[0].(*ast.FunctionDecl)
	if len(fn.GenericParams) != 1 || fn.GenericParams[0].Name.Name != "T" {
		t.Fatalf("expected one generic parameter T, got %v", fn.GenericParams)
	}

	if _, ok := fn.Body[0].(*ast.ExprStmt).Expr.(*ast.VariableReference); !ok {
		t.Error("expected the body to be a bare variable reference")
	}
}

func TestParseLessThanOperatorName(t *testing.T) {
	// a bare `<` name part must not be mistaken for a parameter opener
	mod := parse(t, "fn <x: Integer> < <y: Integer> -> Bool\n")

	fn := mod.Statements[0].(*ast.FunctionDecl)
	if len(fn.NameParts) != 3 {
		t.Fatalf("expected 3 name parts, got %d", len(fn.NameParts))
	}

	word, ok := fn.NameParts[1].(*ast.FnNameWord)
	if !ok || word.Name != "<" {
		t.Errorf("expected the middle part to be the word `<`, got %T", fn.NameParts[1])
	}
}

func TestParseAnonymousParameter(t *testing.T) {
	mod := parse(t, "fn <:Self> == <:Self> -> Bool\n")

	fn := mod.Statements[0].(*ast.FunctionDecl)
	param := fn.NameParts[0].(*ast.FnNameParam)

	if param.Name != nil {
		t.Error("expected an anonymous parameter")
	}

	if param.Ty.Name.Name != "Self" {
		t.Errorf("expected type Self, got %s", param.Ty.Name.Name)
	}
}

func TestParseTypeDecl(t *testing.T) {
	mod := parse(t, "type Point:\n\tx: Integer\n\ty: Integer\n")

	decl := mod.Statements[0].(*ast.TypeDecl)
	if decl.Name.Name != "Point" || len(decl.Members) != 2 {
		t.Fatalf("expected Point with 2 members, got %s with %d", decl.Name.Name, len(decl.Members))
	}

	if decl.Members[1].Name.Name != "y" {
		t.Errorf("expected second member y, got %s", decl.Members[1].Name.Name)
	}
}

func TestParseOpaqueTypeDecl(t *testing.T) {
	mod := parse(t, "@builtin\ntype Integer\n")

	decl := mod.Statements[0].(*ast.TypeDecl)
	if len(decl.Members) != 0 {
		t.Error("expected no members")
	}

	if len(decl.Annotations) != 1 || decl.Annotations[0].Name.Name != "builtin" {
		t.Error("expected the @builtin annotation")
	}
}

func TestParseAnnotationWithArgs(t *testing.T) {
	mod := parse(t, "@mangle_as(\"ppl_integer_add\")\nfn <x: Integer> + <y: Integer> -> Integer\n")

	fn := mod.Statements[0].(*ast.FunctionDecl)
	if len(fn.Annotations) != 1 {
		t.Fatalf("expected one annotation, got %d", len(fn.Annotations))
	}

	annot := fn.Annotations[0]
	if annot.Name.Name != "mangle_as" || len(annot.Args) != 1 {
		t.Fatal("expected mangle_as with one argument")
	}

	lit, ok := annot.Args[0].(*ast.Literal)
	if !ok || lit.Value != "ppl_integer_add" {
		t.Errorf("expected the mangled name literal, got %v", annot.Args[0])
	}
}

func TestParseTraitDecl(t *testing.T) {
	mod := parse(t, "trait Show:\n\tfn show <s: &Self> -> String\n")

	decl := mod.Statements[0].(*ast.TraitDecl)
	if decl.Name.Name != "Show" || len(decl.Functions) != 1 {
		t.Fatal("expected trait Show with one function")
	}

	param := decl.Functions[0].NameParts[1].(*ast.FnNameParam)
	if param.Ty.Name.Name != "Reference" || param.Ty.GenericArgs[0].Name.Name != "Self" {
		t.Error("expected the parameter type to desugar to Reference<Self>")
	}
}

func TestParseReferenceTypes(t *testing.T) {
	mod := parse(t, "fn destroy <x: &mut String>\n")

	param := mod.Statements[0].(*ast.FunctionDecl).NameParts[1].(*ast.FnNameParam)
	if param.Ty.Name.Name != "ReferenceMut" {
		t.Errorf("expected &mut to desugar to ReferenceMut, got %s", param.Ty.Name.Name)
	}
}

func TestParseConstructor(t *testing.T) {
	mod := parse(t, "let p = Point { x: 1, y: 2 }\n")

	decl := mod.Statements[0].(*ast.VariableDecl)
	ctor, ok := decl.Initializer.(*ast.Constructor)
	if !ok {
		t.Fatalf("expected a constructor, got %T", decl.Initializer)
	}

	if ctor.Ty.Name.Name != "Point" || len(ctor.Initializers) != 2 {
		t.Fatal("expected Point with 2 initializers")
	}

	if ctor.Initializers[0].Name.Name != "x" || ctor.Initializers[0].Value == nil {
		t.Error("expected an explicit x initializer")
	}
}

func TestParseConstructorShorthand(t *testing.T) {
	mod := parse(t, "let p = Point { x }\n")

	ctor := mod.Statements[0].(*ast.VariableDecl).Initializer.(*ast.Constructor)
	if ctor.Initializers[0].Value != nil {
		t.Error("shorthand initializer should carry no value")
	}
}

func TestParseMemberAccess(t *testing.T) {
	mod := parse(t, "let v = p.x\n")

	ref, ok := mod.Statements[0].(*ast.VariableDecl).Initializer.(*ast.MemberReference)
	if !ok {
		t.Fatal("expected a member reference")
	}

	if ref.Member.Name != "x" {
		t.Errorf("expected member x, got %s", ref.Member.Name)
	}
}

func TestParseSingleWordExpressions(t *testing.T) {
	mod := parse(t, "let a = count\nlet b = Integer\n")

	if _, ok := mod.Statements[0].(*ast.VariableDecl).Initializer.(*ast.VariableReference); !ok {
		t.Error("a lone lowercase word should parse as a variable reference")
	}

	if _, ok := mod.Statements[1].(*ast.VariableDecl).Initializer.(*ast.TypeReference); !ok {
		t.Error("a lone capitalized word should parse as a type reference")
	}
}

func TestParseIfElse(t *testing.T) {
	src := "fn f:\n\tif a:\n\t\tx\n\telse if b:\n\t\ty\n\telse:\n\t\tz\n"
	mod := parse(t, src)

	fn := mod.Statements[0].(*ast.FunctionDecl)
	stmt, ok := fn.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected an if statement, got %T", fn.Body[0])
	}

	if len(stmt.ElseIfs) != 1 || len(stmt.Else) != 1 {
		t.Errorf("expected 1 else-if and an else, got %d and %d", len(stmt.ElseIfs), len(stmt.Else))
	}
}

func TestParseWhileAndLoop(t *testing.T) {
	mod := parse(t, "fn f:\n\twhile a < b:\n\t\tx\n\tloop:\n\t\ty\n")

	fn := mod.Statements[0].(*ast.FunctionDecl)
	if _, ok := fn.Body[0].(*ast.While); !ok {
		t.Errorf("expected a while, got %T", fn.Body[0])
	}

	if _, ok := fn.Body[1].(*ast.Loop); !ok {
		t.Errorf("expected a loop, got %T", fn.Body[1])
	}
}

func TestParseUse(t *testing.T) {
	mod := parse(t, "use geometry.distance\nuse geometry.*\n")

	one := mod.Statements[0].(*ast.Use)
	if len(one.Path) != 2 || one.Wildcard {
		t.Error("expected a two-part use path")
	}

	star := mod.Statements[1].(*ast.Use)
	if len(star.Path) != 1 || !star.Wildcard {
		t.Error("expected a wildcard use")
	}
}

func TestParseAssignment(t *testing.T) {
	mod := parse(t, "fn f:\n\tx = y + 1\n")

	fn := mod.Statements[0].(*ast.FunctionDecl)
	assign, ok := fn.Body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected an assignment, got %T", fn.Body[0])
	}

	if _, ok := assign.Target.(*ast.VariableReference); !ok {
		t.Error("expected the target to be a variable reference")
	}
}

func TestParseReturn(t *testing.T) {
	mod := parse(t, "fn f -> Integer:\n\treturn 1\nfn g:\n\treturn\n")

	f := mod.Statements[0].(*ast.FunctionDecl)
	ret := f.Body[0].(*ast.Return)
	if ret.Value == nil {
		t.Error("expected a return value")
	}

	g := mod.Statements[1].(*ast.FunctionDecl)
	if g.Body[0].(*ast.Return).Value != nil {
		t.Error("expected a bare return")
	}
}

func TestParseGenericTypeRef(t *testing.T) {
	mod := parse(t, "let b: Box<Integer> = x\n")

	decl := mod.Statements[0].(*ast.VariableDecl)
	if decl.TypeRef == nil || len(decl.TypeRef.GenericArgs) != 1 {
		t.Fatal("expected Box with one generic argument")
	}

	if decl.TypeRef.GenericArgs[0].Name.Name != "Integer" {
		t.Error("expected generic argument Integer")
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("test", "let = 1\n")
	if err == nil {
		t.Fatal("expected a parse error")
	}

	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected a syntax error, got %T", err)
	}

	if perr.Span() == nil {
		t.Error("expected the error to carry a span")
	}
}
