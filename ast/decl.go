package ast

import "pplc/report"

// Annotation is an `@name(args…)` line attached to a declaration.
type Annotation struct {
	ASTBase

	Name Identifier
	Args []Expression
}

// GenericParam is one `T` or `T: Constraint` entry of a generic parameter
// list.
type GenericParam struct {
	Name       Identifier
	Constraint *TypeReference
}

// -----------------------------------------------------------------------------

// VariableDecl declares a new variable: `let [mut] name [: Type] = value`.
type VariableDecl struct {
	StmtBase

	Annotations []Annotation
	Mutable     bool
	Name        Identifier
	TypeRef     *TypeReference
	Initializer Expression
}

// Member is one `name: Type` field of a type declaration.
type Member struct {
	Name Identifier
	Ty   *TypeReference
}

// TypeDecl declares a class: `type Name<T>: members…`.  Builtin types have no
// members.
type TypeDecl struct {
	StmtBase

	Annotations   []Annotation
	Name          Identifier
	GenericParams []GenericParam
	Members       []Member
}

// TraitDecl declares a trait and its function set.
type TraitDecl struct {
	StmtBase

	Annotations []Annotation
	Name        Identifier
	Functions   []*FunctionDecl
}

// -----------------------------------------------------------------------------

// FnNamePart is one part of a function's multi-part name: a word or a
// parameter.
type FnNamePart interface {
	ASTNode
	fnNamePart()
}

// FnNameWord is a bare word part of a function name, eg. `distance` in
// `fn distance from <a: Point> to <b: Point>`.
type FnNameWord struct {
	ASTBase
	Name string
}

func (*FnNameWord) fnNamePart() {}

// NewFnNameWord creates a new word name part.
func NewFnNameWord(name string, pos *report.TextSpan) *FnNameWord {
	return &FnNameWord{ASTBase: NewASTBaseOn(pos), Name: name}
}

// FnNameParam is a parameter name part: `<x: Integer>` or anonymous `<:Self>`.
type FnNameParam struct {
	ASTBase

	Name *Identifier
	Ty   *TypeReference
}

func (*FnNameParam) fnNamePart() {}

// FunctionDecl declares a function.  A declaration without a body declares an
// external or trait function; `=> expr` bodies set ImplicitReturn.
type FunctionDecl struct {
	StmtBase

	Annotations    []Annotation
	GenericParams  []GenericParam
	NameParts      []FnNamePart
	ReturnType     *TypeReference
	Body           []Statement
	HasBody        bool
	ImplicitReturn bool
}
