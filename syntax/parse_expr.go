package syntax

import (
	"unicode"

	"pplc/ast"
	"pplc/report"
)

// parseExpr parses an expression.  Expressions are free-form sequences of
// words and atoms; a sequence of more than one part is a call whose name is
// resolved against the visible functions during lowering.
func (p *Parser) parseExpr() (ast.Expression, error) {
	var parts []ast.CallNamePart
	hasOp := false

	for {
		done := false

		switch p.tok().Kind {
		case TokIdent:
			if p.peek(1).Kind == TokDot {
				atom, err := p.parseAtom()
				if err != nil {
					return nil, err
				}

				parts = append(parts, ast.NewCallNameArg(atom))
			} else {
				tok := p.advance()
				parts = append(parts, ast.NewCallNameWord(tok.Value, tok.Span()))
			}
		case TokTypeName:
			if p.peek(1).Kind == TokLBrace || (p.peek(1).Kind == TokLt && p.peek(1).Start == p.tok().End) {
				atom, err := p.parseAtom()
				if err != nil {
					return nil, err
				}

				parts = append(parts, ast.NewCallNameArg(atom))
			} else {
				tok := p.advance()
				parts = append(parts, ast.NewCallNameWord(tok.Value, tok.Span()))
			}
		case TokOperator, TokLt, TokGt:
			tok := p.advance()
			parts = append(parts, ast.NewCallNameWord(tok.Value, tok.Span()))
			hasOp = true
		case TokIntLit, TokRatLit, TokStringLit, TokTrue, TokFalse, TokNone, TokLParen:
			atom, err := p.parseAtom()
			if err != nil {
				return nil, err
			}

			parts = append(parts, ast.NewCallNameArg(atom))
		default:
			done = true
		}

		if done {
			break
		}
	}

	if len(parts) == 0 {
		return nil, errorAt(p.tok(), "expected an expression")
	}

	if len(parts) == 1 {
		switch part := parts[0].(type) {
		case *ast.CallNameArg:
			return part.Value, nil
		case *ast.CallNameWord:
			if unicode.IsUpper(rune(part.Name[0])) {
				return &ast.TypeReference{
					ExprBase: ast.NewExprBase(part.Span()),
					Name:     ast.NewIdentifier(part.Name, part.Span()),
				}, nil
			}

			return ast.NewVariableReference(part.Name, part.Span()), nil
		}
	}

	kind := ast.CallFunction
	if hasOp {
		kind = ast.CallOperation
	}

	return &ast.Call{
		ExprBase:  ast.NewExprBase(report.Over(parts[0].Span(), parts[len(parts)-1].Span())),
		Kind:      kind,
		NameParts: parts,
	}, nil
}

// parseAtom parses a primary expression and any trailing member accesses.
func (p *Parser) parseAtom() (ast.Expression, error) {
	var atom ast.Expression

	switch p.tok().Kind {
	case TokIntLit:
		tok := p.advance()
		atom = ast.NewLiteral(ast.LitInteger, tok.Value, tok.Span())
	case TokRatLit:
		tok := p.advance()
		atom = ast.NewLiteral(ast.LitRational, tok.Value, tok.Span())
	case TokStringLit:
		tok := p.advance()
		atom = ast.NewLiteral(ast.LitString, tok.Value, tok.Span())
	case TokTrue, TokFalse:
		tok := p.advance()
		atom = ast.NewLiteral(ast.LitBool, tok.Value, tok.Span())
	case TokNone:
		tok := p.advance()
		atom = ast.NewLiteral(ast.LitNone, tok.Value, tok.Span())
	case TokIdent:
		tok := p.advance()
		atom = ast.NewVariableReference(tok.Value, tok.Span())
	case TokLParen:
		p.advance()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}

		atom = inner
	case TokTypeName:
		ref, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		if p.at(TokLBrace) {
			ctor, err := p.parseConstructor(ref)
			if err != nil {
				return nil, err
			}

			atom = ctor
		} else {
			atom = ref
		}
	default:
		return nil, errorAt(p.tok(), "expected an expression")
	}

	for p.at(TokDot) {
		p.advance()

		member, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}

		atom = &ast.MemberReference{
			ExprBase: ast.NewExprBase(report.Over(atom.Span(), member.Span())),
			Base:     atom,
			Member:   identOf(member),
		}
	}

	return atom, nil
}

// parseConstructor parses `{ field: value, … }` after a type reference.
// `{ field }` initializes the field from the variable of the same name.
func (p *Parser) parseConstructor(ref *ast.TypeReference) (ast.Expression, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}

	ctor := &ast.Constructor{Ty: ref}

	for !p.at(TokRBrace) {
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}

		init := ast.Initializer{Name: identOf(name)}

		if p.at(TokColon) {
			p.advance()

			init.Value, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}

		ctor.Initializers = append(ctor.Initializers, init)

		if p.at(TokComma) {
			p.advance()
		} else {
			break
		}
	}

	rb, err := p.expect(TokRBrace)
	if err != nil {
		return nil, err
	}

	ctor.ExprBase = ast.NewExprBase(report.Over(ref.Span(), rb.Span()))
	return ctor, nil
}
