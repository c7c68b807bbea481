package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Console writes log lines to a stream, colored when it is a terminal.
type Console struct {
	level     Level
	component string
	color     bool

	mu  *sync.Mutex
	out io.Writer
}

// NewConsole creates a Console logging to stderr at the given level.
func NewConsole(level Level) *Console {
	fd := os.Stderr.Fd()
	c := NewWriter(level, os.Stderr)
	c.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return c
}

// NewWriter creates an uncolored Console that writes to w.
func NewWriter(level Level, w io.Writer) *Console {
	return &Console{level: level, mu: &sync.Mutex{}, out: w}
}

// Level returns the minimum level that is written.
func (l *Console) Level() Level { return l.level }

func (l *Console) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *Console) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *Console) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *Console) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

// WithComponent returns a Console sharing this one's stream and level.
func (l *Console) WithComponent(component string) Logger {
	c := *l
	c.component = component
	return &c
}

func (l *Console) log(level Level, msg string, args ...interface{}) {
	if level < l.level || l.level == LevelQuiet {
		return
	}
	line := l10n.F(msg, args...)

	if l.component != "" {
		if l.color {
			line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, line)
		}
	}

	if l.color {
		switch level {
		case LevelDebug:
			line = colorGray + line + colorReset
		case LevelWarn:
			line = colorYellow + line + colorReset
		case LevelError:
			line = colorRed + line + colorReset
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

var _ Logger = (*Console)(nil)
