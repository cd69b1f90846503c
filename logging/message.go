package logging

import "fmt"

// TextPosition represents a positional range in the source text.  Lines and
// columns are 1-indexed; the end column is one past the last character.
type TextPosition struct {
	StartLn, StartCol int
	EndLn, EndCol     int
}

// TextPositionFromRange takes two positions and computes the text position
// spanning them.
func TextPositionFromRange(start, end *TextPosition) *TextPosition {
	return &TextPosition{
		StartLn:  start.StartLn,
		StartCol: start.StartCol,
		EndLn:    end.EndLn,
		EndCol:   end.EndCol,
	}
}

func (tp *TextPosition) String() string {
	if tp == nil {
		return "?"
	}

	return fmt.Sprintf("%d:%d", tp.StartLn, tp.StartCol)
}

// LogContext identifies the source file a message belongs to.
type LogContext struct {
	// FilePath is the path of the source file as named by the unit.
	FilePath string
}

// LogMessage is the interface for all messages handled by the logger.
type LogMessage interface {
	isError() bool
	display()
}

// Enumeration of compile message kinds.  These double as the diagnostic
// taxonomy of the resolver.
const (
	LMKName      = iota // undefined variable, class or package
	LMKAccess           // inaccessible member
	LMKTyping           // type mismatch, invalid operands, invalid cast
	LMKOverload         // no applicable or ambiguous method/constructor
	LMKException        // uncaught checked exception, unreachable catch
	LMKReach            // unreachable code, missing return
	LMKDef              // duplicate declaration
	LMKUsage            // static context misuse, labels, forward references
	LMKInherit          // cyclic inheritance, final superclass
	LMKImport           // bad or ambiguous imports
)

// CompileMessage is a diagnostic produced while analyzing user code.
type CompileMessage struct {
	Context  *LogContext
	Position *TextPosition
	Kind     int
	Message  string
	IsError  bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// ConfigError is an error in the batch configuration or its input files.
type ConfigError struct {
	Kind, Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

// BuildWarning is a warning about the build configuration.
type BuildWarning struct {
	Kind, Message string
}

func (bw *BuildWarning) isError() bool {
	return false
}

// InternalError is raised when the compiler detects a violation of one of its
// own invariants.  It is never part of the diagnostic stream.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// Diagnostic is the flattened form of a compile message handed to the driving
// tool: (file, line, column, severity, message).
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Severity string
	Kind     int
	Message  string
}

// Diagnostic converts the message into its flattened form.
func (cm *CompileMessage) Diagnostic() Diagnostic {
	d := Diagnostic{Kind: cm.Kind, Message: cm.Message, Severity: "warning"}
	if cm.IsError {
		d.Severity = "error"
	}

	if cm.Context != nil {
		d.File = cm.Context.FilePath
	}

	if cm.Position != nil {
		d.Line = cm.Position.StartLn
		d.Column = cm.Position.StartCol
	}

	return d
}

// KindName returns the display name of a message kind.
func KindName(kind int) string {
	if name, ok := compileMsgStrings[kind]; ok {
		return name
	}

	return "Compile"
}
