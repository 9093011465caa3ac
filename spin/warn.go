// File: spin/warn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spin

import "log"

// Warnf emits non-fatal configuration warnings. The embedding application
// owns the output channel and may replace this before calling Detect; the
// default goes to the standard logger.
var Warnf = func(format string, args ...any) {
	log.Printf(format, args...)
}
