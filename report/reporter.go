package report

import "sync"

// The log levels supported by the reporter.
const (
	LogLevelSilent  = 0
	LogLevelError   = 1
	LogLevelWarning = 2
	LogLevelVerbose = 3
)

// reporter is the global diagnostic sink for a compilation.
type reporter struct {
	m sync.Mutex

	logLevel   int
	errorCount int
	warnCount  int
}

// rep is the global reporter.
var rep reporter

// InitReporter initializes the global reporter with a log level.
func InitReporter(logLevel int) {
	rep = reporter{logLevel: logLevel}
	initDisplay()
}

// LogLevel returns the configured log level.
func LogLevel() int {
	return rep.logLevel
}

// ShouldProceed returns whether compilation should continue to the next
// phase, ie. whether no errors have been reported so far.
func ShouldProceed() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount == 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}
