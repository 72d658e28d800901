package logger

import (
	"github.com/fatih/color" // Colored console output for the different log levels
)

// Leveled printing functions backed by fatih/color. Each behaves like
// fmt.Printf but renders in the color associated with its level.

// Info logs informational messages in green color.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color when enabled, otherwise is a no-op.
// It is assigned during Init based on the --debug flag and starts as a no-op
// so packages can log before Init runs.
var Debug = func(format string, a ...any) {}

// Init configures debug logging.
// When enableDebug is true, Debug prints cyan-colored messages; otherwise it
// is a no-op function that silently discards its arguments.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
