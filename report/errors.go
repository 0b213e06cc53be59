package report

import "fmt"

// CompileContext identifies the file a diagnostic refers to.  It carries the
// source text so spans can be resolved into line and column numbers.
type CompileContext struct {
	ModName     string
	FileAbsPath string
	Source      string
}

// CompileError is a positioned error within a specific source file.
type CompileError struct {
	Ctx     *CompileContext
	Pos     *TextSpan
	Message string
}

func (ce *CompileError) Error() string {
	return ce.Message
}

func (ce *CompileError) Span() *TextSpan {
	return ce.Pos
}

// NewError creates a new compile error at the given span.
func NewError(ctx *CompileContext, pos *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Ctx: ctx, Pos: pos, Message: fmt.Sprintf(msg, args...)}
}
