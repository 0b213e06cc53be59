package hir

import (
	"math/big"

	"pplc/report"
)

// Expression is the parent interface of all typed HIR expressions.
type Expression interface {
	Ty() Type
	Span() *report.TextSpan

	// Mutable returns whether the expression may be assigned through or
	// mutably referenced.
	Mutable() bool
}

// -----------------------------------------------------------------------------

// The different kinds of literal.
const (
	LiteralNone = iota
	LiteralBool
	LiteralInteger
	LiteralRational
	LiteralString
)

// Literal is a typed literal constant.  Integer and rational payloads are
// arbitrary precision, matching the runtime representation.
type Literal struct {
	Pos  *report.TextSpan
	Kind int

	BoolValue bool
	IntValue  *big.Int
	RatValue  *big.Rat
	StrValue  string

	Type Type
}

func (l *Literal) Ty() Type {
	return l.Type
}

func (l *Literal) Span() *report.TextSpan {
	return l.Pos
}

func (l *Literal) Mutable() bool {
	return false
}

// VariableReference references a variable or parameter.
type VariableReference struct {
	Pos *report.TextSpan
	Var Local
}

func (v *VariableReference) Ty() Type {
	return v.Var.Ty()
}

func (v *VariableReference) Span() *report.TextSpan {
	return v.Pos
}

func (v *VariableReference) Mutable() bool {
	return v.Var.Mutable() || IsMutReferenceType(v.Var.Ty())
}

// Call applies a resolved function to converted arguments.
type Call struct {
	Pos *report.TextSpan

	// Function is the callee; after monomorphization it is never generic.
	Function *Function

	// Generic is the original generic function the callee was produced
	// from, nil for non-generic calls.
	Generic *Function

	Args []Expression
}

func (c *Call) Ty() Type {
	return c.Function.Return
}

func (c *Call) Span() *report.TextSpan {
	return c.Pos
}

func (c *Call) Mutable() bool {
	return IsMutReferenceType(c.Function.Return)
}

// TypeReference is a type used as an expression.  During monomorphization it
// is replaced with a reference to the module-level type info singleton.
type TypeReference struct {
	Pos *report.TextSpan

	// Referenced is the type being referred to.
	Referenced Type

	// TypeFor is the `Type<Referenced>` class of the type info value.
	TypeFor Type
}

func (t *TypeReference) Ty() Type {
	return t.Referenced
}

func (t *TypeReference) Span() *report.TextSpan {
	return t.Pos
}

func (t *TypeReference) Mutable() bool {
	return false
}

// MemberReference accesses a member of a class value.
type MemberReference struct {
	Pos *report.TextSpan

	Base   Expression
	Member *Member
	Index  int
}

func (m *MemberReference) Ty() Type {
	return m.Member.Ty
}

func (m *MemberReference) Span() *report.TextSpan {
	return m.Pos
}

func (m *MemberReference) Mutable() bool {
	return m.Base.Mutable()
}

// Initializer is one evaluated field initializer of a constructor.
type Initializer struct {
	Pos    *report.TextSpan
	Member *Member
	Index  int
	Value  Expression
}

// Constructor builds a class value from field initializers.
type Constructor struct {
	Pos *report.TextSpan

	Class        *Class
	Initializers []*Initializer
}

func (c *Constructor) Ty() Type {
	return c.Class
}

func (c *Constructor) Span() *report.TextSpan {
	return c.Pos
}

func (c *Constructor) Mutable() bool {
	return false
}

// -----------------------------------------------------------------------------

// The kinds of implicit conversion.
const (
	ConvReference = iota
	ConvDereference
	ConvCopy
)

// ImplicitConversion adjusts an expression's type to what its context
// expects: taking a reference, dereferencing, or copying the value.
type ImplicitConversion struct {
	Kind       int
	Type       Type
	Expression Expression
}

func (ic *ImplicitConversion) Ty() Type {
	return ic.Type
}

func (ic *ImplicitConversion) Span() *report.TextSpan {
	return ic.Expression.Span()
}

func (ic *ImplicitConversion) Mutable() bool {
	return IsMutReferenceType(ic.Type)
}
