// Package logger provides the leveled, translatable logging used by the
// server and the command line.
//
// Messages are format strings that double as translation keys: they pass
// through go-l10n before formatting, so a registered lexicon can localize
// them. All output goes to stderr because stdout carries the MCP protocol.
package logger

import (
	"fmt"
	"strings"
)

// Level is the severity of a log message.
type Level int

const (
	// LevelDebug is for request-level tracing.
	LevelDebug Level = iota
	// LevelInfo is for lifecycle messages such as startup and shutdown.
	LevelInfo
	// LevelWarn is for recoverable problems, for example a malformed request.
	LevelWarn
	// LevelError is for failures that end the server.
	LevelError
	// LevelQuiet suppresses all output.
	LevelQuiet
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. "warning" is accepted for warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "quiet", "none", "off":
		return LevelQuiet, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger abstracts leveled logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with component.
	WithComponent(component string) Logger
}
