package ast

import "pplc/report"

// Statement is the parent interface of all statement nodes.
type Statement interface {
	ASTNode
	statement()
}

// StmtBase tags a node as a statement.
type StmtBase struct {
	ASTBase
}

func (sb *StmtBase) statement() {}

// NewStmtBase creates a statement base over the given span.
func NewStmtBase(pos *report.TextSpan) StmtBase {
	return StmtBase{NewASTBaseOn(pos)}
}

// -----------------------------------------------------------------------------

// ExprStmt is an expression used in statement position.
type ExprStmt struct {
	StmtBase
	Expr Expression
}

// NewExprStmt wraps an expression as a statement.
func NewExprStmt(expr Expression) *ExprStmt {
	return &ExprStmt{StmtBase: StmtBase{NewASTBaseOn(expr.Span())}, Expr: expr}
}

// Assignment stores a value into an assignable target: `x = 5`.
type Assignment struct {
	StmtBase

	Target Expression
	Value  Expression
}

// Return exits the enclosing function, optionally with a value.
type Return struct {
	StmtBase
	Value Expression
}

// CondBody is a condition together with its block, used for `else if` arms.
type CondBody struct {
	Condition Expression
	Body      []Statement
}

// If is a conditional statement with optional `else if` arms and `else` block.
type If struct {
	StmtBase

	Condition Expression
	Body      []Statement
	ElseIfs   []CondBody
	Else      []Statement
}

// Loop repeats its body forever.
type Loop struct {
	StmtBase
	Body []Statement
}

// While repeats its body while the condition holds.
type While struct {
	StmtBase

	Condition Expression
	Body      []Statement
}

// Use imports declarations from another module: `use a.b` or `use a.*`.
type Use struct {
	StmtBase

	Path     []Identifier
	Wildcard bool
}
