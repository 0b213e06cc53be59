package hir

// Statement is the parent interface of all HIR statements.
type Statement interface {
	statement()
}

// Declaration introduces a variable.
type Declaration struct {
	Var *Variable
}

func (*Declaration) statement() {}

// ExpressionStmt is an expression evaluated for its effects.
type ExpressionStmt struct {
	Expr Expression
}

func (*ExpressionStmt) statement() {}

// Assignment stores a value into a mutable target.
type Assignment struct {
	Target Expression
	Value  Expression
}

func (*Assignment) statement() {}

// Return exits the enclosing function.  Implicit marks returns promoted from
// `=>` bodies.
type Return struct {
	Value    Expression
	Implicit bool
}

func (*Return) statement() {}

// ElseIf is one `else if` arm of an If statement.
type ElseIf struct {
	Condition Expression
	Body      []Statement
}

// If is a conditional statement.
type If struct {
	Condition Expression
	Body      []Statement
	ElseIfs   []ElseIf
	Else      []Statement
}

func (*If) statement() {}

// Loop repeats its body forever.
type Loop struct {
	Body []Statement
}

func (*Loop) statement() {}

// While repeats its body while the condition holds.
type While struct {
	Condition Expression
	Body      []Statement
}

func (*While) statement() {}

// Use records a processed import.
type Use struct {
	ModuleName string
	Imported   string
}

func (*Use) statement() {}

// Block is a nested statement list, introduced when temporaries are
// materialized.  Destructor insertion flattens blocks into their parent.
type Block struct {
	Statements []Statement
}

func (*Block) statement() {}
