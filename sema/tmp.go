package sema

import (
	"fmt"

	"pplc/hir"
)

// insertTemporaries materializes a variable for every reference taken to a
// freshly produced value, module statements and function bodies alike.  A
// statement that needed temporaries is wrapped in a block holding their
// declarations.
func insertTemporaries(m *hir.Module) {
	m.Statements = tmpStatements(m.Statements)

	m.IterFunctions(func(f *hir.Function) {
		if f.Defined && !f.IsGeneric() {
			f.Body = tmpStatements(f.Body)
		}
	})
}

func tmpStatements(stmts []hir.Statement) []hir.Statement {
	out := make([]hir.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = tmpStatement(s)
	}

	return out
}

func tmpStatement(stmt hir.Statement) hir.Statement {
	switch s := stmt.(type) {
	case *hir.If:
		elseIfs := make([]hir.ElseIf, len(s.ElseIfs))
		for i, arm := range s.ElseIfs {
			elseIfs[i] = hir.ElseIf{Condition: arm.Condition, Body: tmpStatements(arm.Body)}
		}

		return &hir.If{
			Condition: s.Condition,
			Body:      tmpStatements(s.Body),
			ElseIfs:   elseIfs,
			Else:      tmpStatements(s.Else),
		}

	case *hir.Loop:
		return &hir.Loop{Body: tmpStatements(s.Body)}

	case *hir.While:
		return &hir.While{Condition: s.Condition, Body: tmpStatements(s.Body)}

	case *hir.Block:
		return &hir.Block{Statements: tmpStatements(s.Statements)}

	default:
		c := &tmpCollector{}
		rewritten := c.statement(stmt)

		if len(c.decls) == 0 {
			return rewritten
		}

		return &hir.Block{Statements: append(c.decls, rewritten)}
	}
}

// tmpCollector rewrites one statement's expressions, accumulating the
// temporary declarations the statement needs.
type tmpCollector struct {
	decls []hir.Statement
}

func (c *tmpCollector) statement(stmt hir.Statement) hir.Statement {
	switch s := stmt.(type) {
	case *hir.Declaration:
		if s.Var.Initializer != nil {
			s.Var.Initializer = c.expression(s.Var.Initializer)
		}

		return s

	case *hir.ExpressionStmt:
		return &hir.ExpressionStmt{Expr: c.expression(s.Expr)}

	case *hir.Assignment:
		return &hir.Assignment{Target: c.expression(s.Target), Value: c.expression(s.Value)}

	case *hir.Return:
		if s.Value == nil {
			return s
		}

		return &hir.Return{Value: c.expression(s.Value), Implicit: s.Implicit}

	default:
		return stmt
	}
}

func (c *tmpCollector) expression(expr hir.Expression) hir.Expression {
	switch e := expr.(type) {
	case *hir.ImplicitConversion:
		inner := c.expression(e.Expression)

		if e.Kind == hir.ConvReference && !isLvalue(inner) {
			inner = c.materialize(inner, hir.IsMutReferenceType(e.Type))
		}

		return &hir.ImplicitConversion{Kind: e.Kind, Type: e.Type, Expression: inner}

	case *hir.Call:
		args := make([]hir.Expression, len(e.Args))
		for i, arg := range e.Args {
			args[i] = c.expression(arg)
		}

		return &hir.Call{Pos: e.Pos, Function: e.Function, Generic: e.Generic, Args: args}

	case *hir.MemberReference:
		return &hir.MemberReference{
			Pos:    e.Pos,
			Base:   c.expression(e.Base),
			Member: e.Member,
			Index:  e.Index,
		}

	case *hir.Constructor:
		inits := make([]*hir.Initializer, len(e.Initializers))
		for i, init := range e.Initializers {
			inits[i] = &hir.Initializer{
				Pos:    init.Pos,
				Member: init.Member,
				Index:  init.Index,
				Value:  c.expression(init.Value),
			}
		}

		return &hir.Constructor{Pos: e.Pos, Class: e.Class, Initializers: inits}

	default:
		return expr
	}
}

// materialize declares a temporary initialized with expr and returns a
// reference to it.
func (c *tmpCollector) materialize(expr hir.Expression, mutable bool) hir.Expression {
	offset := 0
	if sp := expr.Span(); sp != nil {
		offset = sp.Start
	}

	v := &hir.Variable{
		Name:        fmt.Sprintf("$tmp@%d", offset),
		Mut:         mutable,
		Type:        expr.Ty(),
		Initializer: expr,
	}

	c.decls = append(c.decls, &hir.Declaration{Var: v})

	return &hir.VariableReference{Pos: expr.Span(), Var: v}
}
