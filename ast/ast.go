package ast

import "pplc/report"

// ASTNode is the parent interface of all AST nodes.
type ASTNode interface {
	// Span returns the source byte range of the node.
	Span() *report.TextSpan
}

// ASTBase is the base struct embedded in all AST nodes.
type ASTBase struct {
	pos *report.TextSpan
}

// NewASTBaseOn creates an AST base over the given span.
func NewASTBaseOn(pos *report.TextSpan) ASTBase {
	return ASTBase{pos: pos}
}

// NewASTBaseOver creates an AST base spanning two nodes.
func NewASTBaseOver(start, end ASTNode) ASTBase {
	return ASTBase{pos: report.Over(start.Span(), end.Span())}
}

func (ab *ASTBase) Span() *report.TextSpan {
	return ab.pos
}

// -----------------------------------------------------------------------------

// Identifier is a name with its source location.
type Identifier struct {
	ASTBase
	Name string
}

// NewIdentifier creates a new positioned identifier.
func NewIdentifier(name string, pos *report.TextSpan) Identifier {
	return Identifier{ASTBase: NewASTBaseOn(pos), Name: name}
}

// Module is a parsed source file: a flat list of statements, some of which
// are declarations.
type Module struct {
	Name       string
	Statements []Statement
}
