package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// Logger is the leveled, field-carrying logger used across findr.
// Log lines go to stderr so they never mix with search results.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type standardLogger struct {
	mu     *sync.Mutex // shared with loggers derived through WithFields
	level  Level
	out    io.Writer
	fields []Field
	now    func() time.Time
}

// NewLogger creates a logger writing lines at or above level to out.
// A nil out means stderr.
func NewLogger(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &standardLogger{
		mu:    &sync.Mutex{},
		level: level,
		out:   out,
		now:   time.Now,
	}
}

// NewVerboseLogger logs everything, debug lines included, to out. Used for --verbose.
func NewVerboseLogger(out io.Writer) Logger {
	return NewLogger(LevelDebug, out)
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return NewLogger(LevelSilent, io.Discard)
}

func (l *standardLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// WithFields returns a logger that appends fields to every line
func (l *standardLogger) WithFields(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &standardLogger{
		mu:     l.mu,
		level:  l.level,
		out:    l.out,
		fields: merged,
		now:    l.now,
	}
}

func (l *standardLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

func (l *standardLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

func (l *standardLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

func (l *standardLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

func (l *standardLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level || l.level == LevelSilent {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", l.now().Format("15:04:05.000"), level, msg)

	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, field := range l.fields {
			fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
		}
		for _, field := range fields {
			fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
		}
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.out, b.String())
}
