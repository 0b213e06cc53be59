package syntax

import (
	"pplc/ast"
	"pplc/report"
)

// parseStatement parses a single statement or declaration.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.tok().Kind {
	case TokAt:
		return p.parseAnnotated()
	case TokLet:
		return p.parseVariableDecl(nil)
	case TokFn:
		return p.parseFunctionDecl(nil)
	case TokType:
		return p.parseTypeDecl(nil)
	case TokTrait:
		return p.parseTraitDecl(nil)
	case TokUse:
		return p.parseUse()
	case TokReturn:
		return p.parseReturn()
	case TokIf:
		return p.parseIf()
	case TokLoop:
		return p.parseLoop()
	case TokWhile:
		return p.parseWhile()
	default:
		return p.parseSimpleStatement()
	}
}

// parseAnnotated parses one or more annotation lines followed by the
// declaration they attach to.
func (p *Parser) parseAnnotated() (ast.Statement, error) {
	var annots []ast.Annotation

	for p.at(TokAt) {
		annot, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}

		annots = append(annots, annot)
		p.skipNewlines()
	}

	switch p.tok().Kind {
	case TokLet:
		return p.parseVariableDecl(annots)
	case TokFn:
		return p.parseFunctionDecl(annots)
	case TokType:
		return p.parseTypeDecl(annots)
	case TokTrait:
		return p.parseTraitDecl(annots)
	default:
		return nil, errorAt(p.tok(), "annotations must be followed by a declaration")
	}
}

// parseAnnotation parses `@name` or `@name(args…)`.
func (p *Parser) parseAnnotation() (ast.Annotation, error) {
	at, err := p.expect(TokAt)
	if err != nil {
		return ast.Annotation{}, err
	}

	var name *Token
	if p.at(TokIdent) || p.at(TokTypeName) {
		name = p.advance()
	} else {
		return ast.Annotation{}, errorAt(p.tok(), "expected annotation name")
	}

	annot := ast.Annotation{
		ASTBase: ast.NewASTBaseOn(report.Over(at.Span(), name.Span())),
		Name:    identOf(name),
	}

	if p.at(TokLParen) {
		p.advance()

		for !p.at(TokRParen) {
			arg, err := p.parseExpr()
			if err != nil {
				return ast.Annotation{}, err
			}

			annot.Args = append(annot.Args, arg)

			if p.at(TokComma) {
				p.advance()
			}
		}

		p.advance()
	}

	return annot, nil
}

// parseVariableDecl parses `let [mut] name [: Type] = value`.
func (p *Parser) parseVariableDecl(annots []ast.Annotation) (ast.Statement, error) {
	let, err := p.expect(TokLet)
	if err != nil {
		return nil, err
	}

	mutable := false
	if p.at(TokMut) {
		p.advance()
		mutable = true
	}

	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}

	var typeRef *ast.TypeReference
	if p.at(TokColon) {
		p.advance()

		typeRef, err = p.parseTypeRef()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokAssign); err != nil {
		return nil, err
	}

	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokNewline); err != nil {
		return nil, err
	}

	return &ast.VariableDecl{
		StmtBase:    ast.NewStmtBase(report.Over(let.Span(), init.Span())),
		Annotations: annots,
		Mutable:     mutable,
		Name:        identOf(name),
		TypeRef:     typeRef,
		Initializer: init,
	}, nil
}

// parseGenericParams parses `<T, U: Constraint, …>` with the `<` already
// current.
func (p *Parser) parseGenericParams() ([]ast.GenericParam, error) {
	if _, err := p.expect(TokLt); err != nil {
		return nil, err
	}

	var params []ast.GenericParam
	for {
		name, err := p.expect(TokTypeName)
		if err != nil {
			return nil, err
		}

		param := ast.GenericParam{Name: identOf(name)}

		if p.at(TokColon) {
			p.advance()

			param.Constraint, err = p.parseTypeRef()
			if err != nil {
				return nil, err
			}
		}

		params = append(params, param)

		if p.at(TokComma) {
			p.advance()
			continue
		}

		break
	}

	if _, err := p.expect(TokGt); err != nil {
		return nil, err
	}

	return params, nil
}

// parseTypeDecl parses `type Name<T>: members…`.  A declaration without a
// member block declares an opaque (builtin) type.
func (p *Parser) parseTypeDecl(annots []ast.Annotation) (ast.Statement, error) {
	kw, err := p.expect(TokType)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokTypeName)
	if err != nil {
		return nil, err
	}

	decl := &ast.TypeDecl{
		StmtBase:    ast.NewStmtBase(report.Over(kw.Span(), name.Span())),
		Annotations: annots,
		Name:        identOf(name),
	}

	if p.at(TokLt) && p.adjacent(name) {
		decl.GenericParams, err = p.parseGenericParams()
		if err != nil {
			return nil, err
		}
	}

	if p.at(TokNewline) || p.at(TokEOF) {
		p.skipNewlines()
		return decl, nil
	}

	if _, err := p.expect(TokColon); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokNewline); err != nil {
		return nil, err
	}

	p.skipNewlines()
	if _, err := p.expect(TokIndent); err != nil {
		return nil, err
	}

	for {
		p.skipNewlines()
		if p.at(TokDedent) || p.at(TokEOF) {
			break
		}

		mname, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokColon); err != nil {
			return nil, err
		}

		mty, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		decl.Members = append(decl.Members, ast.Member{Name: identOf(mname), Ty: mty})

		if _, err := p.expect(TokNewline); err != nil {
			return nil, err
		}
	}

	if p.at(TokDedent) {
		p.advance()
	}

	return decl, nil
}

// parseTraitDecl parses `trait Name:` followed by a block of function
// declarations.
func (p *Parser) parseTraitDecl(annots []ast.Annotation) (ast.Statement, error) {
	kw, err := p.expect(TokTrait)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokTypeName)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	decl := &ast.TraitDecl{
		StmtBase:    ast.NewStmtBase(report.Over(kw.Span(), name.Span())),
		Annotations: annots,
		Name:        identOf(name),
	}

	for _, stmt := range body {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok {
			return nil, errorAt(p.tok(), "traits may only contain functions")
		}

		decl.Functions = append(decl.Functions, fn)
	}

	return decl, nil
}

// parseUse parses `use a.b` or `use a.*`.
func (p *Parser) parseUse() (ast.Statement, error) {
	kw, err := p.expect(TokUse)
	if err != nil {
		return nil, err
	}

	use := &ast.Use{StmtBase: ast.NewStmtBase(kw.Span())}

	for {
		if p.at(TokOperator) && p.tok().Value == "*" {
			tok := p.advance()
			use.Wildcard = true
			use.StmtBase = ast.NewStmtBase(report.Over(kw.Span(), tok.Span()))
			break
		}

		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}

		use.Path = append(use.Path, identOf(name))
		use.StmtBase = ast.NewStmtBase(report.Over(kw.Span(), name.Span()))

		if p.at(TokDot) {
			p.advance()
			continue
		}

		break
	}

	if _, err := p.expect(TokNewline); err != nil {
		return nil, err
	}

	return use, nil
}
