package logging

import "fmt"

// logger is a global reference to a shared Logger (created/initialized with the
// compiler, but separated for general usage)
var logger = newLogger("", LogLevelSilent)

// Initialize initializes the global logger with the provided log level.  Any
// previously collected messages are discarded.
func Initialize(buildPath string, loglevelname string) {
	logger = newLogger(buildPath, LevelFromName(loglevelname))
}

// LevelFromName converts a log level name into its enumerated value.
func LevelFromName(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// ShouldProceed indicates whether or not the log module has encountered any
// errors.
func ShouldProceed() bool {
	return logger.errorCount == 0
}

// ErrorCount returns the cumulative number of errors reported so far.
func ErrorCount() int {
	return logger.errorCount
}

// Diagnostics returns the diagnostic stream collected so far.
func Diagnostics() []Diagnostic {
	logger.m.Lock()
	defer logger.m.Unlock()

	diags := make([]Diagnostic, len(logger.messages))
	for i, cm := range logger.messages {
		diags[i] = cm.Diagnostic()
	}

	return diags
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogCompileError logs a compilation error (user-induced, bad code)
func LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	})
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to batch or compiler configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogBuildWarning logs a warning in the build process
func LogBuildWarning(kind, warning string) {
	logger.handleMsg(&BuildWarning{Kind: kind, Message: warning})
}

// LogFatal logs a fatal compilation error that was not expected: ie. the
// compiler did something it wasn't supposed to.  It never returns: the
// InternalError is raised as a panic and recovered by the CLI.
func LogFatal(message string, args ...interface{}) {
	ie := &InternalError{Message: fmt.Sprintf(message, args...)}

	if logger.LogLevel > LogLevelSilent {
		displayFatalError(ie.Message)
	}

	panic(ie)
}

// -----------------------------------------------------------------------------

// LogCompileHeader displays the compiler information before analysis starts.
func LogCompileHeader(batchName string) {
	if logger.LogLevel == LogLevelVerbose {
		displayCompileHeader(batchName)
	}
}

// LogBeginPhase starts the spinner for a compilation phase.
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase marks the current phase as finished.
func LogEndPhase() {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(logger.errorCount == 0)
	}
}

// LogCompilationFinished displays the buffered warnings and the closing
// message.
func LogCompilationFinished() {
	if logger.LogLevel >= LogLevelWarning {
		for _, warning := range logger.warnings {
			warning.display()
		}
	}

	if logger.LogLevel > LogLevelSilent {
		displayCompilationFinished(logger.errorCount == 0, logger.errorCount, len(logger.warnings))
	}
}
