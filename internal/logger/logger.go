// Package logger is the leveled printf logger shared by the server and the
// learner CLI. Request and job scoped loggers travel in a context.Context.
package logger

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// ANSI colors, indexed by Level.
var levelColors = [...]string{"\033[36m", "\033[32m", "\033[33m", "\033[31m"}

const colorReset = "\033[0m"

func (l Level) String() string {
	if l < DEBUG || l > ERROR {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel reads LOG_LEVEL style names. Anything unrecognized is INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	}
	return INFO
}

// Logger writes one line per message:
//
//	2024-03-06 10:30:00.000 INFO  [prefix] [file.go:12] message k=v
//
// Derived loggers share the writer and its lock.
type Logger struct {
	mu       *sync.Mutex
	out      io.Writer
	level    Level
	prefix   string
	fields   map[string]any
	colorize bool
	now      func() time.Time
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option         { return func(l *Logger) { l.out = w } }
func WithLevel(level Level) Option          { return func(l *Logger) { l.level = level } }
func WithPrefix(prefix string) Option       { return func(l *Logger) { l.prefix = prefix } }
func WithColors(enabled bool) Option        { return func(l *Logger) { l.colorize = enabled } }
func WithClock(now func() time.Time) Option { return func(l *Logger) { l.now = now } }

func New(opts ...Option) *Logger {
	l := &Logger{
		mu:     &sync.Mutex{},
		out:    os.Stdout,
		level:  INFO,
		fields: map[string]any{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Discard drops every message.
func Discard() *Logger {
	return New(WithOutput(io.Discard), WithLevel(ERROR+1))
}

var defaultLogger = New()

func SetDefault(l *Logger) { defaultLogger = l }
func Default() *Logger     { return defaultLogger }

func (l *Logger) derive() *Logger {
	c := *l
	c.fields = maps.Clone(l.fields)
	if c.fields == nil {
		c.fields = map[string]any{}
	}
	return &c
}

func (l *Logger) WithField(key string, value any) *Logger {
	c := l.derive()
	c.fields[key] = value
	return c
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	c := l.derive()
	maps.Copy(c.fields, fields)
	return c
}

// WithPrefix replaces the prefix; fields are kept.
func (l *Logger) WithPrefix(prefix string) *Logger {
	c := l.derive()
	c.prefix = prefix
	return c
}

func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) Debug(msg string, args ...any) { l.write(DEBUG, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(INFO, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(WARN, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(ERROR, msg, args) }

func Debug(msg string, args ...any) { defaultLogger.write(DEBUG, msg, args) }
func Info(msg string, args ...any)  { defaultLogger.write(INFO, msg, args) }
func Warn(msg string, args ...any)  { defaultLogger.write(WARN, msg, args) }
func Error(msg string, args ...any) { defaultLogger.write(ERROR, msg, args) }

// write is only called by the level methods, so the reported frame is three up.
func (l *Logger) write(level Level, msg string, args []any) {
	if !l.Enabled(level) {
		return
	}
	line := l.format(level, caller(3), msg, args)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line)
}

func (l *Logger) format(level Level, where, msg string, args []any) string {
	var sb strings.Builder
	sb.WriteString(l.now().Format("2006-01-02 15:04:05.000"))
	sb.WriteByte(' ')
	if l.colorize {
		fmt.Fprintf(&sb, "%s%-5s%s ", levelColors[level], level, colorReset)
	} else {
		fmt.Fprintf(&sb, "%-5s ", level)
	}
	if l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	if where != "" {
		fmt.Fprintf(&sb, "[%s] ", where)
	}

	if len(args) > 0 {
		fmt.Fprintf(&sb, msg, args...)
	} else {
		sb.WriteString(msg)
	}
	for _, k := range slices.Sorted(maps.Keys(l.fields)) {
		fmt.Fprintf(&sb, " %s=%v", k, l.fields[k])
	}
	sb.WriteByte('\n')
	return sb.String()
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file[strings.LastIndex(file, "/")+1:], line)
}

type ctxKey struct{}

// FromContext returns the logger stored by NewContext, or the default.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}
