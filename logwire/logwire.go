// Package logwire is a small structured logger that marshals one JSON
// object per line to an io.Writer, grounded on host/logger/logger.go's
// Emit-one-line-per-entry shape, renamed and adapted to this module's
// component set.
package logwire

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the closed set of log severities this package emits.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one emitted log line.
type Entry struct {
	Time      time.Time `json:"time"`
	Level     Level     `json:"level"`
	Component string    `json:"component"`
	Message   string    `json:"message"`
}

// Logger writes one JSON object per line to an underlying writer. The
// zero value writes nowhere; use New.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
	// now is overridable in tests; defaults to time.Now.
	now func() time.Time
}

// New constructs a Logger writing to w. Passing nil defaults to os.Stdout.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{w: w, now: time.Now}
}

// Emit writes entry as one JSON line. Marshal failures are swallowed —
// logging must never be the reason a caller's operation fails.
func (l *Logger) Emit(entry Entry) {
	if l == nil || l.w == nil {
		return
	}
	if entry.Time.IsZero() {
		entry.Time = l.now()
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	b = append(b, '\n')
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(b)
}

func (l *Logger) logf(level Level, component, format string, args ...any) {
	l.Emit(Entry{Level: level, Component: component, Message: fmt.Sprintf(format, args...)})
}

// Debugf emits a debug-level line.
func (l *Logger) Debugf(component, format string, args ...any) { l.logf(LevelDebug, component, format, args...) }

// Infof emits an info-level line.
func (l *Logger) Infof(component, format string, args ...any) { l.logf(LevelInfo, component, format, args...) }

// Warnf emits a warn-level line.
func (l *Logger) Warnf(component, format string, args ...any) { l.logf(LevelWarn, component, format, args...) }

// Errorf emits an error-level line.
func (l *Logger) Errorf(component, format string, args ...any) { l.logf(LevelError, component, format, args...) }
