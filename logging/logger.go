package logging

import (
	"sync"
)

// Logger is a type that is responsible for storing and logging output from the
// compiler as necessary
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be logged at the end of compilation
	warnings []LogMessage

	// messages is the diagnostic stream in the order it was reported.  It is
	// kept regardless of log level so that the driving tool can inspect it.
	messages []*CompileMessage

	// buildPath is used to shorten display paths in errors
	buildPath string

	// m is the mutex used to synchonize the printing of error messages
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and closing compilation notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, compiler version and progress summary, closing message (DEFAULT)
)

// newLogger creates a new logger struct
func newLogger(buildPath string, loglevel int) Logger {
	return Logger{
		buildPath: buildPath,
		LogLevel:  loglevel,
		m:         &sync.Mutex{},
	}
}

// handleMsg prompts to logger to process a message.  The resolver itself is
// single threaded but the display side is shared with the CLI so printing is
// still serialized.
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if cm, ok := lm.(*CompileMessage); ok {
		l.messages = append(l.messages, cm)
	}

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}
