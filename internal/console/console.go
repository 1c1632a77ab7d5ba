// Package console provides the leveled logger used for diagnostic output.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Levels accepted by DebugLevel. Messages are printed when their level is at or
// below the configured one.
const (
	LevelError = -1
	LevelInfo  = 0
	LevelDebug = 1
)

// ConsoleLogger writes timestamped, leveled lines.
type ConsoleLogger struct {
	// DebugLevel selects the most verbose level printed.
	DebugLevel int

	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// Logger is the process-wide console logger.
var Logger = New(os.Stderr)

// New creates a logger writing to w at info level.
func New(w io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		DebugLevel: LevelInfo,
		out:        w,
		now:        time.Now,
	}
}

// SetOutput redirects the logger.
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// Debug prints when debug output is enabled.
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	l.print(LevelDebug, "DEBUG", format, args...)
}

// Info prints informational messages.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.print(LevelInfo, "INFO", format, args...)
}

// Warn prints warnings.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.print(LevelInfo, "WARN", format, args...)
}

// Error always prints.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.print(LevelError, "ERROR", format, args...)
}

// Printf satisfies the Debugger interfaces of the pipeline services at info level.
func (l *ConsoleLogger) Printf(format string, args ...interface{}) {
	l.Info(format, args...)
}

func (l *ConsoleLogger) print(level int, label, format string, args ...interface{}) {
	if level > l.DebugLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return
	}
	fmt.Fprintf(l.out, "%s %-5s %s\n", l.now().Format("2006/01/02 15:04:05"), label, fmt.Sprintf(format, args...))
}
