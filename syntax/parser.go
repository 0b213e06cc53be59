package syntax

import (
	"fmt"

	"pplc/ast"
	"pplc/report"
)

// Error is a lexical or syntax error at a byte range.
type Error struct {
	Message    string
	Start, End int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Span() *report.TextSpan {
	return report.NewSpan(e.Start, e.End)
}

// errorAt creates a syntax error positioned at the given token.
func errorAt(tok *Token, msg string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(msg, args...), Start: tok.Start, End: tok.End}
}

// -----------------------------------------------------------------------------

// Parser parses a token stream into an AST module.
type Parser struct {
	toks []Token
	pos  int
}

// Parse lexes and parses a source file into an AST module.
func Parse(name, src string) (*ast.Module, error) {
	toks, err := NewLexer(src).Lex()
	if err != nil {
		return nil, err
	}

	p := &Parser{toks: toks}

	var stmts []ast.Statement
	for {
		p.skipNewlines()
		if p.at(TokEOF) {
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return &ast.Module{Name: name, Statements: stmts}, nil
}

// -----------------------------------------------------------------------------

// tok returns the current token.
func (p *Parser) tok() *Token {
	return &p.toks[p.pos]
}

// peek returns the token n positions ahead of the current one.
func (p *Parser) peek(n int) *Token {
	if p.pos+n < len(p.toks) {
		return &p.toks[p.pos+n]
	}

	return &p.toks[len(p.toks)-1]
}

// at returns whether the current token has the given kind.
func (p *Parser) at(kind int) bool {
	return p.tok().Kind == kind
}

// advance consumes and returns the current token.
func (p *Parser) advance() *Token {
	tok := p.tok()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return tok
}

// expect consumes a token of the given kind or fails.
func (p *Parser) expect(kind int) (*Token, error) {
	if !p.at(kind) {
		return nil, errorAt(p.tok(), "unexpected token `%s`", p.tok().Value)
	}

	return p.advance(), nil
}

// skipNewlines consumes any run of newline tokens.
func (p *Parser) skipNewlines() {
	for p.at(TokNewline) {
		p.advance()
	}
}

// identOf converts a token into a positioned AST identifier.
func identOf(tok *Token) ast.Identifier {
	return ast.NewIdentifier(tok.Value, tok.Span())
}

// adjacent reports whether the current token starts exactly where the given
// token ends, with no whitespace between them.
func (p *Parser) adjacent(prev *Token) bool {
	return p.tok().Start == prev.End
}

// -----------------------------------------------------------------------------

// parseBlock parses a `:`-introduced indented statement block.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
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

	var stmts []ast.Statement
	for {
		p.skipNewlines()
		if p.at(TokDedent) || p.at(TokEOF) {
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if p.at(TokDedent) {
		p.advance()
	}

	return stmts, nil
}

// parseTypeRef parses a type reference: a named type with optional generic
// arguments, or the `&T` / `&mut T` reference sugar.
func (p *Parser) parseTypeRef() (*ast.TypeReference, error) {
	if p.at(TokAmp) {
		amp := p.advance()

		refName := "Reference"
		if p.at(TokMut) {
			p.advance()
			refName = "ReferenceMut"
		}

		inner, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		span := report.Over(amp.Span(), inner.Span())
		return &ast.TypeReference{
			ExprBase:    ast.NewExprBase(span),
			Name:        ast.NewIdentifier(refName, span),
			GenericArgs: []*ast.TypeReference{inner},
		}, nil
	}

	name, err := p.expect(TokTypeName)
	if err != nil {
		return nil, err
	}

	var args []*ast.TypeReference
	end := name.Span()

	if p.at(TokLt) && p.adjacent(name) {
		p.advance()

		for {
			arg, err := p.parseTypeRef()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.at(TokComma) {
				p.advance()
				continue
			}

			break
		}

		gt, err := p.expect(TokGt)
		if err != nil {
			return nil, err
		}

		end = gt.Span()
	}

	return &ast.TypeReference{
		ExprBase:    ast.NewExprBase(report.Over(name.Span(), end)),
		Name:        identOf(name),
		GenericArgs: args,
	}, nil
}
