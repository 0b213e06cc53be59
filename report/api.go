package report

// ReportCompileError reports a compilation error.  If err carries a span and
// ctx carries source text, an excerpt of the offending source is shown.
func ReportCompileError(ctx *CompileContext, err error) {
	rep.m.Lock()
	rep.errorCount++
	logLevel := rep.logLevel
	rep.m.Unlock()

	if logLevel >= LogLevelError {
		displayCompileMessage(ctx, err, false)
	}
}

// ReportCompileErrors reports a batch of compilation errors, typically the
// accumulated diagnostics of a whole module.
func ReportCompileErrors(ctx *CompileContext, errs []error) {
	for _, err := range errs {
		ReportCompileError(ctx, err)
	}
}

// ReportCompileWarning reports a compilation warning.
func ReportCompileWarning(ctx *CompileContext, err error) {
	rep.m.Lock()
	rep.warnCount++
	logLevel := rep.logLevel
	rep.m.Unlock()

	if logLevel >= LogLevelWarning {
		displayCompileMessage(ctx, err, true)
	}
}

// ReportFatal reports a fatal configuration or environment error and exits.
func ReportFatal(msg string, args ...interface{}) {
	displayFatal(msg, args...)
}

// ReportICE reports an internal compiler error and exits.  It is reserved for
// broken compiler invariants such as a missing builtin declaration.
func ReportICE(msg string, args ...interface{}) {
	displayICE(msg, args...)
}

// ReportVerbose logs a progress message shown only at the verbose log level.
func ReportVerbose(msg string, args ...interface{}) {
	if rep.logLevel >= LogLevelVerbose {
		displayVerbose(msg, args...)
	}
}
