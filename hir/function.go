package hir

import (
	"fmt"
	"strings"
)

// Local is anything referable by name inside a body: a variable or a
// function parameter.
type Local interface {
	LocalName() string
	Ty() Type
	Mutable() bool
}

// Variable is a declared variable.  It is created during the declare phase
// with an Unknown type and filled in during define; identity is pointer
// identity.
type Variable struct {
	Name        string
	Mut         bool
	Type        Type
	Initializer Expression
}

func (v *Variable) LocalName() string {
	return v.Name
}

func (v *Variable) Ty() Type {
	return v.Type
}

func (v *Variable) Mutable() bool {
	return v.Mut
}

// IsTemporary returns whether the variable was materialized by the compiler
// for an intermediate value.
func (v *Variable) IsTemporary() bool {
	return strings.HasPrefix(v.Name, "$tmp")
}

// Parameter is a single function parameter.
type Parameter struct {
	Name string
	Type Type
}

func (p *Parameter) LocalName() string {
	return p.Name
}

func (p *Parameter) Ty() Type {
	return p.Type
}

func (p *Parameter) Mutable() bool {
	return false
}

// -----------------------------------------------------------------------------

// FunctionNamePart is one part of a function's multi-part name: a text word
// or a parameter.
type FunctionNamePart interface {
	namePart()
}

// TextPart is a word part of a function name.
type TextPart struct {
	Text string
}

func (*TextPart) namePart() {}

// ParameterPart is a parameter part of a function name.
type ParameterPart struct {
	Parameter *Parameter
}

func (*ParameterPart) namePart() {}

// -----------------------------------------------------------------------------

// Function is a function declaration or definition.  An undefined function
// declares an external symbol or a trait requirement.
type Function struct {
	GenericTypes []Type
	NameParts    []FunctionNamePart
	Return       Type

	// MangledName overrides the linkage name when set via `@mangle_as`.
	MangledName string

	// Trait is set for functions declared inside a trait body.
	Trait *Trait

	// SpecializationOf points at the generic original of a monomorphization.
	SpecializationOf *Function

	Defined bool
	Body    []Statement
}

// Parameters returns the function's parameters in order.
func (f *Function) Parameters() []*Parameter {
	var params []*Parameter

	for _, part := range f.NameParts {
		if p, ok := part.(*ParameterPart); ok {
			params = append(params, p.Parameter)
		}
	}

	return params
}

// NameFormat renders the function name with parameter slots as `<>`.  Two
// functions overload each other iff their formats are equal.
func (f *Function) NameFormat() string {
	var parts []string

	for _, part := range f.NameParts {
		switch p := part.(type) {
		case *TextPart:
			parts = append(parts, p.Text)
		case *ParameterPart:
			parts = append(parts, "<>")
		}
	}

	return strings.Join(parts, " ")
}

// Name renders the function name with parameter slots as `<:Type>`.  The
// name uniquely identifies the function among its overloads.
func (f *Function) Name() string {
	var parts []string

	for _, part := range f.NameParts {
		switch p := part.(type) {
		case *TextPart:
			parts = append(parts, p.Text)
		case *ParameterPart:
			parts = append(parts, fmt.Sprintf("<:%s>", p.Parameter.Type.Repr()))
		}
	}

	return strings.Join(parts, " ")
}

// LinkName returns the symbol name used for code generation.
func (f *Function) LinkName() string {
	if f.MangledName != "" {
		return f.MangledName
	}

	return f.Name()
}

// IsGeneric returns whether the function still mentions unbound generics.
func (f *Function) IsGeneric() bool {
	if len(f.GenericTypes) > 0 {
		for _, g := range f.GenericTypes {
			if g.IsGeneric() {
				return true
			}
		}
	}

	for _, p := range f.Parameters() {
		if p.Type.IsGeneric() {
			return true
		}
	}

	return f.Return.IsGeneric()
}

// Ty returns the function's type as a value.
func (f *Function) Ty() Type {
	var params []Type
	for _, p := range f.Parameters() {
		params = append(params, p.Type)
	}

	return &FuncType{Params: params, Return: f.Return}
}
