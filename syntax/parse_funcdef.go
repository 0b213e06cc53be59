package syntax

import (
	"pplc/ast"
	"pplc/report"
)

// parseFunctionDecl parses a function declaration:
//
//	fn[<T, …>] name-part… [-> Type] [=> expr | : body]
//
// A generic parameter list must directly follow the `fn` keyword with no
// space; `fn <x: T>` is a parameter, `fn<T>` a generic list.
func (p *Parser) parseFunctionDecl(annots []ast.Annotation) (ast.Statement, error) {
	kw, err := p.expect(TokFn)
	if err != nil {
		return nil, err
	}

	decl := &ast.FunctionDecl{
		StmtBase:    ast.NewStmtBase(kw.Span()),
		Annotations: annots,
	}

	if p.at(TokLt) && p.adjacent(kw) {
		decl.GenericParams, err = p.parseGenericParams()
		if err != nil {
			return nil, err
		}
	}

	for {
		part, ok, err := p.parseFnNamePart()
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		decl.NameParts = append(decl.NameParts, part)
	}

	if len(decl.NameParts) == 0 {
		return nil, errorAt(p.tok(), "function must have at least one name part")
	}

	last := decl.NameParts[len(decl.NameParts)-1]
	decl.StmtBase = ast.NewStmtBase(report.Over(kw.Span(), last.Span()))

	if p.at(TokArrow) {
		p.advance()

		decl.ReturnType, err = p.parseTypeRef()
		if err != nil {
			return nil, err
		}
	}

	switch p.tok().Kind {
	case TokFatArrow:
		p.advance()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokNewline); err != nil {
			return nil, err
		}

		decl.Body = []ast.Statement{ast.NewExprStmt(expr)}
		decl.HasBody = true
		decl.ImplicitReturn = true
	case TokColon:
		decl.Body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}

		decl.HasBody = true
	default:
		if _, err := p.expect(TokNewline); err != nil {
			return nil, err
		}
	}

	return decl, nil
}

// parseFnNamePart parses the next function name part, returning false when
// the name is over.  A `<` opens a parameter only if a `name:` or `:` follows;
// otherwise it is the `<` operator used as a name part.
func (p *Parser) parseFnNamePart() (ast.FnNamePart, bool, error) {
	switch p.tok().Kind {
	case TokIdent, TokTypeName, TokOperator, TokGt:
		tok := p.advance()
		return ast.NewFnNameWord(tok.Value, tok.Span()), true, nil
	case TokLt:
		if p.peek(1).Kind == TokColon || (p.peek(1).Kind == TokIdent && p.peek(2).Kind == TokColon) {
			part, err := p.parseFnNameParam()
			return part, err == nil, err
		}

		tok := p.advance()
		return ast.NewFnNameWord(tok.Value, tok.Span()), true, nil
	default:
		return nil, false, nil
	}
}

// parseFnNameParam parses `<name: Type>` or the anonymous form `<:Type>`.
func (p *Parser) parseFnNameParam() (*ast.FnNameParam, error) {
	lt, err := p.expect(TokLt)
	if err != nil {
		return nil, err
	}

	param := &ast.FnNameParam{}

	if p.at(TokIdent) {
		name := identOf(p.advance())
		param.Name = &name
	}

	if _, err := p.expect(TokColon); err != nil {
		return nil, err
	}

	param.Ty, err = p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	gt, err := p.expect(TokGt)
	if err != nil {
		return nil, err
	}

	param.ASTBase = ast.NewASTBaseOn(report.Over(lt.Span(), gt.Span()))
	return param, nil
}
