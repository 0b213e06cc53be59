package report

// TextSpan is a range of bytes in a source file.  Spans are attached to AST
// and HIR nodes so diagnostics can point back at source text.
type TextSpan struct {
	Start, End int
}

// NewSpan creates a new text span over [start, end).
func NewSpan(start, end int) *TextSpan {
	return &TextSpan{Start: start, End: end}
}

// Over creates a span covering both given spans.
func Over(start, end *TextSpan) *TextSpan {
	return &TextSpan{Start: start.Start, End: end.End}
}

// Spanned is implemented by anything that knows its source location.
type Spanned interface {
	Span() *TextSpan
}

// LineCol is a 1-based line and column position resolved against source text.
type LineCol struct {
	Line, Col int
}

// Resolve converts the span's start offset into a line and column within the
// given source text.
func (ts *TextSpan) Resolve(src string) LineCol {
	lc := LineCol{Line: 1, Col: 1}

	for i := 0; i < ts.Start && i < len(src); i++ {
		if src[i] == '\n' {
			lc.Line++
			lc.Col = 1
		} else {
			lc.Col++
		}
	}

	return lc
}
