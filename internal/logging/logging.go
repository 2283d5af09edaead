// Package logging provides the process logger for simplekit hosts.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Setup replaces its output and level.
var Log = logrus.New()

// DebugEnabled controls whether Debug() produces output.
// Set via --debug flag or SIMPLEKIT_DEBUG=1 environment variable.
var DebugEnabled bool

// Setup configures Log. With debug set the level drops to Debug. A nil out
// means stderr.
func Setup(debug bool, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	DebugEnabled = debug

	Log.SetOutput(out)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Log.SetLevel(logrus.InfoLevel)
	if debug {
		Log.SetLevel(logrus.DebugLevel)
	}
	return Log
}

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		Log.Debugf(format, args...)
	}
}

// For returns a logger tagged with the component name
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
