package syntax

import (
	"pplc/ast"
	"pplc/report"
)

// parseSimpleStatement parses an expression statement or an assignment.
func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.at(TokAssign) {
		p.advance()

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokNewline); err != nil {
			return nil, err
		}

		return &ast.Assignment{
			StmtBase: ast.NewStmtBase(report.Over(expr.Span(), value.Span())),
			Target:   expr,
			Value:    value,
		}, nil
	}

	if _, err := p.expect(TokNewline); err != nil {
		return nil, err
	}

	return ast.NewExprStmt(expr), nil
}

// parseReturn parses `return [expr]`.
func (p *Parser) parseReturn() (ast.Statement, error) {
	kw, err := p.expect(TokReturn)
	if err != nil {
		return nil, err
	}

	ret := &ast.Return{StmtBase: ast.NewStmtBase(kw.Span())}

	if !p.at(TokNewline) && !p.at(TokEOF) {
		ret.Value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}

		ret.StmtBase = ast.NewStmtBase(report.Over(kw.Span(), ret.Value.Span()))
	}

	if _, err := p.expect(TokNewline); err != nil {
		return nil, err
	}

	return ret, nil
}

// parseIf parses an `if` statement with optional `else if` arms and `else`.
func (p *Parser) parseIf() (ast.Statement, error) {
	kw, err := p.expect(TokIf)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.If{
		StmtBase:  ast.NewStmtBase(report.Over(kw.Span(), cond.Span())),
		Condition: cond,
		Body:      body,
	}

	for p.at(TokElse) {
		p.advance()

		if p.at(TokIf) {
			p.advance()

			elifCond, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			elifBody, err := p.parseBlock()
			if err != nil {
				return nil, err
			}

			stmt.ElseIfs = append(stmt.ElseIfs, ast.CondBody{Condition: elifCond, Body: elifBody})
			continue
		}

		stmt.Else, err = p.parseBlock()
		if err != nil {
			return nil, err
		}

		break
	}

	return stmt, nil
}

// parseLoop parses `loop:` and its body.
func (p *Parser) parseLoop() (ast.Statement, error) {
	kw, err := p.expect(TokLoop)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Loop{StmtBase: ast.NewStmtBase(kw.Span()), Body: body}, nil
}

// parseWhile parses `while cond:` and its body.
func (p *Parser) parseWhile() (ast.Statement, error) {
	kw, err := p.expect(TokWhile)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.While{
		StmtBase:  ast.NewStmtBase(report.Over(kw.Span(), cond.Span())),
		Condition: cond,
		Body:      body,
	}, nil
}
