package logger

import (
	"os"
	"strings"

	corelogger "github.com/kilianp07/edgecover/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

// New returns a Logger for the given component. LOG_BACKEND selects the
// implementation (zerolog by default, logrus on request) and APP_ENV the
// output format.
func New(component string) Logger {
	switch strings.ToLower(os.Getenv("LOG_BACKEND")) {
	case "logrus":
		return NewLogrusLogger(component, os.Stdout)
	default:
		return NewZerologLogger(component)
	}
}

// levelFromEnv returns LOG_LEVEL lowercased, defaulting to info.
func levelFromEnv() string {
	lvl := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if lvl == "" {
		return "info"
	}
	return lvl
}
