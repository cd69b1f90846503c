package depm

import "fmt"

// sprintf formats a message only if there are arguments so that messages
// containing `%` are passed through unchanged.
func sprintf(msg string, args ...interface{}) string {
	if len(args) == 0 {
		return msg
	}

	return fmt.Sprintf(msg, args...)
}
