package ast

import "pplc/report"

// Expression is the parent interface of all expression nodes.
type Expression interface {
	ASTNode
	expression()
}

// ExprBase tags a node as an expression.
type ExprBase struct {
	ASTBase
}

func (eb *ExprBase) expression() {}

// NewExprBase creates an expression base over the given span.
func NewExprBase(pos *report.TextSpan) ExprBase {
	return ExprBase{NewASTBaseOn(pos)}
}

// -----------------------------------------------------------------------------

// The different kinds of literal.
const (
	LitInteger = iota
	LitRational
	LitString
	LitBool
	LitNone
)

// Literal is a literal constant such as `42`, `3.14`, or `"hi"`.
type Literal struct {
	ExprBase

	Kind  int
	Value string
}

// NewLiteral creates a new literal of the given kind.
func NewLiteral(kind int, value string, pos *report.TextSpan) *Literal {
	return &Literal{ExprBase: ExprBase{NewASTBaseOn(pos)}, Kind: kind, Value: value}
}

// VariableReference is a bare lowercase name used as an expression.
type VariableReference struct {
	ExprBase
	Name string
}

// NewVariableReference creates a new variable reference.
func NewVariableReference(name string, pos *report.TextSpan) *VariableReference {
	return &VariableReference{ExprBase: ExprBase{NewASTBaseOn(pos)}, Name: name}
}

// TypeReference is a named type, possibly with generic arguments, eg.
// `Integer` or `Pair<A, B>`.  It doubles as an expression so types can be
// passed as values.
type TypeReference struct {
	ExprBase

	Name        Identifier
	GenericArgs []*TypeReference
}

// MemberReference accesses a member of a value: `point.x`.
type MemberReference struct {
	ExprBase

	Base   Expression
	Member Identifier
}

// Initializer is one `field: value` entry of a constructor.  Value may be nil
// for the `Point { x }` shorthand.
type Initializer struct {
	Name  Identifier
	Value Expression
}

// Constructor is a class construction expression: `Point { x: 1, y: 2 }`.
type Constructor struct {
	ExprBase

	Ty           *TypeReference
	Initializers []Initializer
}

// -----------------------------------------------------------------------------

// The kinds of call: regular function application and operator application.
const (
	CallFunction = iota
	CallOperation
)

// CallNamePart is one part of a call's multi-part name: either a bare word
// or an argument expression.
type CallNamePart interface {
	ASTNode
	callNamePart()
}

// CallNameWord is a bare word part of a call.  Whether it names a function
// part, a variable argument, or a type argument is decided during lowering.
type CallNameWord struct {
	ASTBase
	Name string
}

func (*CallNameWord) callNamePart() {}

// NewCallNameWord creates a new word part.
func NewCallNameWord(name string, pos *report.TextSpan) *CallNameWord {
	return &CallNameWord{ASTBase: NewASTBaseOn(pos), Name: name}
}

// CallNameArg is an argument expression part of a call.
type CallNameArg struct {
	ASTBase
	Value Expression
}

func (*CallNameArg) callNamePart() {}

// NewCallNameArg creates a new argument part over the given expression.
func NewCallNameArg(value Expression) *CallNameArg {
	return &CallNameArg{ASTBase: NewASTBaseOn(value.Span()), Value: value}
}

// Call is a function or operator application written as a free-form sequence
// of words and argument expressions, eg. `print x` or `a + b`.
type Call struct {
	ExprBase

	Kind      int
	NameParts []CallNamePart
}
