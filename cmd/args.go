package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pplc/depm"
	"pplc/report"
)

const usage = `Usage: pplc build [flags|options] <path to module directory>

Flags:
------
-h,  --help      Displays usage information (ie. this text).
-v,  --version   Displays the current compiler version.
-e,  --emit-ir   Stops compilation after writing textual LLVM IR.
-w,  --watch     Keeps running, rebuilding whenever a source file changes.

Options:
--------
-o,  --out        Sets the path for compilation output.
-ll, --loglevel   Sets the compiler's log-level.  Valid values are:
                    - "verbose" for outputting all messages (default)
                    - "warn" for outputting errors and warnings
                    - "error" for outputting errors only
                    - "silent" for no output
`

// printUsage prints the usage message and exits with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// argParser is a command-line argument parser.
type argParser struct {
	args []string
	ndx  int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":         {},
	"ll":        {},
	"-out":      {},
	"-loglevel": {},
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument, empty for positionals.  The second is
// the argument's value, empty for flags.  The final value indicates whether
// there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if !strings.HasPrefix(arg, "-") {
		return "", arg, true
	}

	name := arg[1:]
	if _, ok := options[name]; !ok {
		return name, "", true
	}

	if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
		value := ap.args[ap.ndx]
		ap.ndx++
		return name, value, true
	}

	argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
	return "", "", false
}

// useArg applies a single command-line argument to the compiler.  Invalid
// arguments exit the program.
func useArg(c *Compiler, name, value string) {
	switch name {
	case "":
		if c.rootPath != "" {
			argumentError("multiple module paths given")
		}

		c.rootPath = value
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println("pplc v" + depm.Version)
		os.Exit(0)
	case "e", "-emit-ir":
		c.emitIR = true
	case "w", "-watch":
		c.watch = true
	case "ll", "-loglevel":
		var logLevel int
		switch value {
		case "silent":
			logLevel = report.LogLevelSilent
		case "error":
			logLevel = report.LogLevelError
		case "warn":
			logLevel = report.LogLevelWarning
		case "verbose":
			logLevel = report.LogLevelVerbose
		default:
			argumentError("invalid log level")
		}

		report.InitReporter(logLevel)
	case "o", "-out":
		c.outputPath = value
	default:
		argumentError("unknown flag `%s`", name)
	}
}

// NewCompilerFromArgs builds the compiler configuration from os.Args.
func NewCompilerFromArgs() *Compiler {
	args := os.Args[1:]
	if len(args) == 0 || args[0] != "build" {
		printUsage(1)
	}

	c := &Compiler{}

	ap := &argParser{args: args[1:]}
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		useArg(c, name, value)
	}

	if c.rootPath == "" {
		c.rootPath = "."
	}

	if abs, err := filepath.Abs(c.rootPath); err == nil {
		c.rootPath = abs
	}

	return c
}
