// Package logging is a small leveled wrapper over the standard library
// log package. It exists because the quadball server's error taxonomy
// (spec §7) distinguishes debug-only transient failures from fatal
// ones, and the teacher's bare log.Printf calls don't carry a level.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

var (
	minLevel   = InfoLevel
	std        = log.New(os.Stdout, "", 0)
	levelMutex sync.RWMutex
)

func init() {
	if env := strings.ToLower(os.Getenv("QUADBALL_LOG_LEVEL")); env != "" {
		switch env {
		case "debug":
			minLevel = DebugLevel
		case "info":
			minLevel = InfoLevel
		case "warn", "warning":
			minLevel = WarnLevel
		case "error":
			minLevel = ErrorLevel
		}
	}
}

// SetLevel changes the minimum level that gets printed.
func SetLevel(l Level) {
	levelMutex.Lock()
	minLevel = l
	levelMutex.Unlock()
}

func logf(lvl Level, format string, args ...any) {
	levelMutex.RLock()
	threshold := minLevel
	levelMutex.RUnlock()
	if lvl < threshold {
		return
	}
	ts := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	std.Printf("[%s] %s %s", levelNames[lvl], ts, msg)
}

// Debug logs a debug-level message (spec §7: transient I/O failures).
func Debug(format string, args ...any) { logf(DebugLevel, format, args...) }

// Info logs an info-level message (room/player lifecycle events).
func Info(format string, args ...any) { logf(InfoLevel, format, args...) }

// Warn logs a warn-level message (recoverable protocol/authorization errors).
func Warn(format string, args ...any) { logf(WarnLevel, format, args...) }

// Error logs an error-level message (invariant violations, room teardown).
func Error(format string, args ...any) { logf(ErrorLevel, format, args...) }

// Fatal logs an error-level message and terminates the process with a
// non-zero exit code (spec §6 Exit codes, §7 Fatal errors).
func Fatal(format string, args ...any) {
	logf(ErrorLevel, format, args...)
	os.Exit(1)
}
