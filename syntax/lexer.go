package syntax

import (
	"strings"
	"unicode"
)

// Lexer tokenizes a PPL source string.  Indentation is significant: `:`
// introduced bodies are tab-indented blocks, delimited by Indent and Dedent
// tokens.
type Lexer struct {
	src  string
	pos  int
	toks []Token

	// indents is the stack of active indentation levels.
	indents []int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, indents: []int{0}}
}

// Lex tokenizes the whole source, returning the token stream terminated by an
// EOF token.
func (l *Lexer) Lex() ([]Token, error) {
	atLineStart := true

	for l.pos < len(l.src) {
		if atLineStart {
			if err := l.lexLineStart(); err != nil {
				return nil, err
			}

			atLineStart = false
			continue
		}

		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.emit(TokNewline, "\n", l.pos, l.pos+1)
			l.pos++
			atLineStart = true
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.peekAt(1) == '/':
			l.skipLineComment()
		case isWordStart(rune(c)):
			l.lexWord()
		case c >= '0' && c <= '9':
			l.lexNumber()
		case c == '"':
			if err := l.lexString(); err != nil {
				return nil, err
			}
		default:
			if err := l.lexSymbol(); err != nil {
				return nil, err
			}
		}
	}

	// close any line and block still open at end of input
	if n := len(l.toks); n > 0 && l.toks[n-1].Kind != TokNewline {
		l.emit(TokNewline, "\n", l.pos, l.pos)
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(TokDedent, "", l.pos, l.pos)
	}

	l.emit(TokEOF, "", l.pos, l.pos)
	return l.toks, nil
}

// lexLineStart measures the indentation of the next non-blank line and emits
// the Indent and Dedent tokens implied by it.
func (l *Lexer) lexLineStart() error {
	for {
		lineStart := l.pos
		level := 0

		for l.pos < len(l.src) {
			if l.src[l.pos] == '\t' {
				level++
				l.pos++
			} else if strings.HasPrefix(l.src[l.pos:], "    ") {
				level++
				l.pos += 4
			} else {
				break
			}
		}

		// blank and comment-only lines do not affect indentation
		if l.pos >= len(l.src) {
			return nil
		} else if l.src[l.pos] == '\n' {
			l.pos++
			continue
		} else if l.src[l.pos] == '\r' || l.src[l.pos] == ' ' {
			l.pos++
			continue
		} else if l.src[l.pos] == '/' && l.peekAt(1) == '/' {
			l.skipLineComment()
			continue
		}

		top := l.indents[len(l.indents)-1]
		if level > top {
			l.indents = append(l.indents, level)
			l.emit(TokIndent, "", lineStart, l.pos)
		} else {
			for level < l.indents[len(l.indents)-1] {
				l.indents = l.indents[:len(l.indents)-1]
				l.emit(TokDedent, "", lineStart, l.pos)
			}

			if level != l.indents[len(l.indents)-1] {
				return &Error{Message: "inconsistent indentation", Start: lineStart, End: l.pos}
			}
		}

		return nil
	}
}

func (l *Lexer) lexWord() {
	start := l.pos

	for l.pos < len(l.src) && isWordPart(rune(l.src[l.pos])) {
		l.pos++
	}

	word := l.src[start:l.pos]
	if kind, ok := keywords[word]; ok {
		l.emit(kind, word, start, l.pos)
	} else if unicode.IsUpper(rune(word[0])) {
		l.emit(TokTypeName, word, start, l.pos)
	} else {
		l.emit(TokIdent, word, start, l.pos)
	}
}

func (l *Lexer) lexNumber() {
	start := l.pos

	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}

	kind := TokIntLit
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.peekAt(1) >= '0' && l.peekAt(1) <= '9' {
		kind = TokRatLit
		l.pos++

		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
	}

	l.emit(kind, l.src[start:l.pos], start, l.pos)
}

func (l *Lexer) lexString() error {
	start := l.pos
	l.pos++

	var sb strings.Builder
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			return &Error{Message: "unterminated string literal", Start: start, End: l.pos}
		}

		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}

		if c == '\\' {
			l.pos++
			switch l.peekAt(0) {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '0':
				sb.WriteByte(0)
			default:
				return &Error{Message: "unknown escape sequence", Start: l.pos - 1, End: l.pos + 1}
			}
			l.pos++
			continue
		}

		sb.WriteByte(c)
		l.pos++
	}

	l.emit(TokStringLit, sb.String(), start, l.pos)
	return nil
}

// lexSymbol lexes punctuation and operators.  `<` and `>` are always single
// tokens since they delimit parameters and generic argument lists.
func (l *Lexer) lexSymbol() error {
	start := l.pos
	c := l.src[l.pos]

	single := func(kind int) {
		l.pos++
		l.emit(kind, l.src[start:l.pos], start, l.pos)
	}

	switch c {
	case ':':
		single(TokColon)
	case ',':
		single(TokComma)
	case '.':
		single(TokDot)
	case '<':
		single(TokLt)
	case '>':
		single(TokGt)
	case '&':
		single(TokAmp)
	case '@':
		single(TokAt)
	case '(':
		single(TokLParen)
	case ')':
		single(TokRParen)
	case '{':
		single(TokLBrace)
	case '}':
		single(TokRBrace)
	case '-':
		if l.peekAt(1) == '>' {
			l.pos += 2
			l.emit(TokArrow, "->", start, l.pos)
		} else {
			l.lexOperator()
		}
	case '=':
		switch l.peekAt(1) {
		case '>':
			l.pos += 2
			l.emit(TokFatArrow, "=>", start, l.pos)
		case '=':
			l.lexOperator()
		default:
			single(TokAssign)
		}
	default:
		if isOperatorChar(c) {
			l.lexOperator()
		} else {
			return &Error{Message: "unexpected character", Start: start, End: start + 1}
		}
	}

	return nil
}

func (l *Lexer) lexOperator() {
	start := l.pos

	for l.pos < len(l.src) && isOperatorChar(l.src[l.pos]) {
		l.pos++
	}

	l.emit(TokOperator, l.src[start:l.pos], start, l.pos)
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) emit(kind int, value string, start, end int) {
	l.toks = append(l.toks, Token{Kind: kind, Value: value, Start: start, End: end})
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}

	return 0
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isWordPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func isOperatorChar(c byte) bool {
	return strings.IndexByte("+-*/%!=|^~?", c) >= 0
}
