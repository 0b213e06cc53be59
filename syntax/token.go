package syntax

import "pplc/report"

// The different kinds of token.
const (
	TokEOF = iota
	TokNewline
	TokIndent
	TokDedent

	TokIdent    // lowercase-initial name
	TokTypeName // capitalized name
	TokOperator // run of symbol characters, eg. `+`, `==`

	TokIntLit
	TokRatLit
	TokStringLit

	TokLet
	TokMut
	TokFn
	TokType
	TokTrait
	TokIf
	TokElse
	TokLoop
	TokWhile
	TokReturn
	TokUse
	TokTrue
	TokFalse
	TokNone

	TokColon
	TokComma
	TokDot
	TokLt
	TokGt
	TokArrow    // ->
	TokFatArrow // =>
	TokAssign   // =
	TokAmp      // &
	TokAt       // @
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
)

// keywords maps keyword spellings to their token kinds.
var keywords = map[string]int{
	"let":    TokLet,
	"mut":    TokMut,
	"fn":     TokFn,
	"type":   TokType,
	"trait":  TokTrait,
	"if":     TokIf,
	"else":   TokElse,
	"loop":   TokLoop,
	"while":  TokWhile,
	"return": TokReturn,
	"use":    TokUse,
	"true":   TokTrue,
	"false":  TokFalse,
	"none":   TokNone,
}

// Token is a single lexeme with its source location.
type Token struct {
	Kind  int
	Value string
	Start int
	End   int
}

// Span returns the byte range of the token.
func (t *Token) Span() *report.TextSpan {
	return report.NewSpan(t.Start, t.End)
}
