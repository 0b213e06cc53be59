package codegen

import (
	"pplc/hir"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func (g *Generator) generateStatements(stmts []hir.Statement) {
	for _, stmt := range stmts {
		if g.block.Term != nil {
			// unreachable code after a return
			return
		}

		g.generateStatement(stmt)
	}
}

func (g *Generator) generateStatement(stmt hir.Statement) {
	switch s := stmt.(type) {
	case *hir.Declaration:
		g.generateDeclaration(s)

	case *hir.ExpressionStmt:
		g.generateExpr(s.Expr)

	case *hir.Assignment:
		addr := g.generateAddr(s.Target)
		g.block.NewStore(g.generateExpr(s.Value), addr)

	case *hir.Return:
		if s.Value == nil || types.Equal(g.fn.Sig.RetType, types.Void) {
			if s.Value != nil {
				g.generateExpr(s.Value)
			}

			g.block.NewRet(nil)
			return
		}

		g.block.NewRet(g.generateExpr(s.Value))

	case *hir.If:
		g.generateIf(s)

	case *hir.Loop:
		body := g.fn.NewBlock("")
		g.block.NewBr(body)

		g.block = body
		g.generateStatements(s.Body)
		if g.block.Term == nil {
			g.block.NewBr(body)
		}

		// nothing ever leaves a bare loop, but later statements still need
		// a block to land in
		g.block = g.fn.NewBlock("")

	case *hir.While:
		g.generateWhile(s)

	case *hir.Block:
		g.generateStatements(s.Statements)

	case *hir.Use:
		// imports carry no code
	}
}

func (g *Generator) generateDeclaration(decl *hir.Declaration) {
	v := decl.Var

	if slot, ok := g.globals[v]; ok {
		if v.Initializer != nil {
			g.block.NewStore(g.generateExpr(v.Initializer), slot)
		}

		return
	}

	slot := g.block.NewAlloca(g.convType(v.Type))
	g.locals[v] = slot

	if v.Initializer != nil {
		g.block.NewStore(g.generateExpr(v.Initializer), slot)
	}
}

func (g *Generator) generateIf(stmt *hir.If) {
	exit := g.fn.NewBlock("")

	branch := func(cond hir.Expression, body []hir.Statement) *ir.Block {
		// returns the block the next condition should be emitted into
		condValue := g.generateExpr(cond)

		thenBlock := g.fn.NewBlock("")
		elseBlock := g.fn.NewBlock("")
		g.block.NewCondBr(condValue, thenBlock, elseBlock)

		g.block = thenBlock
		g.generateStatements(body)
		if g.block.Term == nil {
			g.block.NewBr(exit)
		}

		return elseBlock
	}

	g.block = branch(stmt.Condition, stmt.Body)
	for _, arm := range stmt.ElseIfs {
		g.block = branch(arm.Condition, arm.Body)
	}

	g.generateStatements(stmt.Else)
	if g.block.Term == nil {
		g.block.NewBr(exit)
	}

	g.block = exit
}

func (g *Generator) generateWhile(stmt *hir.While) {
	header := g.fn.NewBlock("")
	body := g.fn.NewBlock("")
	exit := g.fn.NewBlock("")

	g.block.NewBr(header)

	g.block = header
	cond := g.generateExpr(stmt.Condition)
	g.block.NewCondBr(cond, body, exit)

	g.block = body
	g.generateStatements(stmt.Body)
	if g.block.Term == nil {
		g.block.NewBr(header)
	}

	g.block = exit
}
