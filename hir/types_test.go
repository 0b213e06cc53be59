package hir

import "testing"

func integerClass() *Class {
	return &Class{Basename: "Integer", Builtin: BuiltinInteger}
}

func referenceTo(t Type) *Class {
	return &Class{
		Basename:      "Reference",
		Builtin:       BuiltinReference,
		GenericParams: []Type{t},
	}
}

func TestFunctionNames(t *testing.T) {
	f := &Function{
		NameParts: []FunctionNamePart{
			&TextPart{Text: "distance"},
			&TextPart{Text: "from"},
			&ParameterPart{Parameter: &Parameter{Name: "a", Type: integerClass()}},
			&TextPart{Text: "to"},
			&ParameterPart{Parameter: &Parameter{Name: "b", Type: integerClass()}},
		},
		Return: integerClass(),
	}

	if got := f.NameFormat(); got != "distance from <> to <>" {
		t.Errorf("unexpected format %q", got)
	}

	if got := f.Name(); got != "distance from <:Integer> to <:Integer>" {
		t.Errorf("unexpected name %q", got)
	}

	if got := f.LinkName(); got != f.Name() {
		t.Errorf("expected the link name to default to the full name, got %q", got)
	}

	f.MangledName = "ppl_distance"
	if got := f.LinkName(); got != "ppl_distance" {
		t.Errorf("expected the mangled name to win, got %q", got)
	}
}

func TestClassEquality(t *testing.T) {
	a := integerClass()
	b := integerClass()

	// distinct declarations named alike are different types
	if a.Equals(b) {
		t.Error("expected classes with different origins to differ")
	}

	spec := &Class{Basename: "Integer", Builtin: BuiltinInteger, SpecializationOf: a}
	if !a.Equals(spec) {
		t.Error("expected a specialization to equal its origin")
	}
}

func TestWithoutRef(t *testing.T) {
	integer := integerClass()
	ref := referenceTo(integer)

	if WithoutRef(ref) != Type(integer) {
		t.Error("expected the reference layer to be stripped")
	}

	if WithoutRef(integer) != Type(integer) {
		t.Error("expected a non-reference type to pass through")
	}
}

func TestSpecializeTypeIdentity(t *testing.T) {
	integer := integerClass()
	ref := referenceTo(integer)

	out := SpecializeType(ref, func(Type) Type { return nil })
	if out != Type(ref) {
		t.Error("expected a concrete type to keep its identity")
	}
}

func TestSpecializeTypeSubstitution(t *testing.T) {
	g := &GenericType{Name: "T"}
	box := &Class{
		Basename:      "Box",
		GenericParams: []Type{g},
		Members:       []*Member{{Name: "value", Ty: g}},
	}

	integer := integerClass()
	out := SpecializeType(box, func(t Type) Type {
		if t == Type(g) {
			return integer
		}

		return nil
	})

	cls, ok := out.(*Class)
	if !ok || cls == box {
		t.Fatal("expected a fresh specialized class")
	}

	if cls.Repr() != "Box<Integer>" {
		t.Errorf("unexpected rendering %q", cls.Repr())
	}

	if cls.Members[0].Ty != Type(integer) {
		t.Error("expected the member type to be substituted")
	}

	if cls.Origin() != box {
		t.Error("expected the specialization to point at its origin")
	}
}

func TestSizeInBytes(t *testing.T) {
	integer := integerClass()

	point := &Class{
		Basename: "Point",
		Members: []*Member{
			{Name: "x", Ty: integer},
			{Name: "y", Ty: integer},
		},
	}

	if got := SizeInBytes(point); got != 16 {
		t.Errorf("expected 16 bytes, got %d", got)
	}

	if got := SizeInBytes(&Class{Basename: "Bool", Builtin: BuiltinBool}); got != 1 {
		t.Errorf("expected 1 byte, got %d", got)
	}
}

func TestTemporaryNaming(t *testing.T) {
	if !(&Variable{Name: "$tmp@12"}).IsTemporary() {
		t.Error("expected $tmp names to be temporaries")
	}

	if (&Variable{Name: "total"}).IsTemporary() {
		t.Error("expected ordinary names not to be temporaries")
	}
}
