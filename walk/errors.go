package walk

import (
	"fmt"
	"jfront/logging"
)

// logError logs a compile error in the current file
func (w *Walker) logError(msg string, kind int, pos *logging.TextPosition) {
	logging.LogCompileError(
		w.ctx.LogContext,
		msg,
		kind,
		pos,
	)
}

// errorf logs a formatted compile error in the current file
func (w *Walker) errorf(pos *logging.TextPosition, kind int, msg string, args ...interface{}) {
	w.logError(fmt.Sprintf(msg, args...), kind, pos)
}

// logWarning logs a compile warning in the current file
func (w *Walker) logWarning(msg string, kind int, pos *logging.TextPosition) {
	logging.LogCompileWarning(
		w.ctx.LogContext,
		msg,
		kind,
		pos,
	)
}
