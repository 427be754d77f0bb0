package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log levels, lowest first.
const (
	levelDebug int = iota
	levelInfo
	levelWarn
	levelError
)

// consoleLogger writes timestamped diagnostics ("[HH:MM:SS] [LEVEL] msg").
// Program output meant for the user (prompts, preview) does not go through it.
type consoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// newConsoleLogger creates a logger writing to w. A nil writer discards
// everything. Unknown levels fall back to "info". Colors are used only for
// os.Stdout/os.Stderr when color is not disabled.
func newConsoleLogger(w io.Writer, level string) *consoleLogger {
	return &consoleLogger{
		writer:      w,
		level:       parseLogLevel(level),
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// color.NoColor honours NO_COLOR and non-TTY output
		return !color.NoColor
	}
	return false
}

func parseLogLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *consoleLogger) Debugf(format string, args ...any) {
	l.logf(levelDebug, "DEBUG", format, args...)
}

func (l *consoleLogger) Infof(format string, args ...any) {
	l.logf(levelInfo, "INFO", format, args...)
}

func (l *consoleLogger) Warnf(format string, args ...any) {
	l.logf(levelWarn, "WARN", format, args...)
}

func (l *consoleLogger) Errorf(format string, args ...any) {
	l.logf(levelError, "ERROR", format, args...)
}

func (l *consoleLogger) logf(level int, name, format string, args ...any) {
	if l == nil || l.writer == nil || level < l.level {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.colorOutput {
		name = levelColor(level).Sprint(name)
	}
	ts := l.now().Format("15:04:05")
	fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, name, fmt.Sprintf(format, args...))
}

func levelColor(level int) *color.Color {
	switch level {
	case levelDebug:
		return color.New(color.FgCyan)
	case levelWarn:
		return color.New(color.FgYellow)
	case levelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}
