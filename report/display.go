package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// initDisplay configures pterm for the current terminal.  Styling is turned
// off when stdout is not a TTY so piped output stays plain.
func initDisplay() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

// displayCompileMessage displays an error or warning with its source context.
func displayCompileMessage(ctx *CompileContext, err error, isWarning bool) {
	tag := pterm.Error
	if isWarning {
		tag = pterm.Warning
	}

	if ctx == nil {
		tag.Println(err.Error())
		return
	}

	sp, ok := err.(Spanned)
	if !ok || sp.Span() == nil {
		tag.Printfln("[%s] %s: %s", ctx.ModName, ctx.FileAbsPath, err.Error())
		return
	}

	lc := sp.Span().Resolve(ctx.Source)
	tag.Printfln("[%s] %s:%d:%d: %s", ctx.ModName, ctx.FileAbsPath, lc.Line, lc.Col, err.Error())

	if ctx.Source != "" {
		displaySourceExcerpt(ctx.Source, sp.Span(), lc)
	}
}

// displaySourceExcerpt prints the offending source line with a carat marker
// underneath the span.
func displaySourceExcerpt(src string, span *TextSpan, lc LineCol) {
	lines := strings.Split(src, "\n")
	if lc.Line > len(lines) {
		return
	}

	line := strings.ReplaceAll(lines[lc.Line-1], "\t", "    ")

	// tabs were widened above so the marker column has to be recounted
	col := 0
	for _, c := range lines[lc.Line-1][:lc.Col-1] {
		if c == '\t' {
			col += 4
		} else {
			col++
		}
	}

	markLen := span.End - span.Start
	if markLen < 1 || col+markLen > len(line) {
		markLen = 1
	}

	fmt.Printf("  %d | %s\n", lc.Line, line)
	fmt.Printf("  %s | %s%s\n", strings.Repeat(" ", numWidth(lc.Line)), strings.Repeat(" ", col), pterm.Red(strings.Repeat("^", markLen)))
}

func numWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}

	return w
}

func displayFatal(msg string, args ...interface{}) {
	pterm.Error.Prefix = pterm.Prefix{Text: "FATAL", Style: pterm.Error.Prefix.Style}
	pterm.Error.Printfln(msg, args...)
	os.Exit(1)
}

func displayICE(msg string, args ...interface{}) {
	pterm.Error.Prefix = pterm.Prefix{Text: "ICE", Style: pterm.Error.Prefix.Style}
	pterm.Error.Printfln("internal compiler error: "+msg, args...)
	pterm.Info.Println("this is a bug in the compiler, please report it")
	os.Exit(-1)
}

func displayVerbose(msg string, args ...interface{}) {
	pterm.Info.Printfln(msg, args...)
}
