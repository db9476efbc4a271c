package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"slices"
	"sync"
	"time"
)

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// ParseLogLevel parses a level name. Unknown names map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	if i := slices.Index(levelNames[:], s); i >= 0 {
		return LogLevel(i)
	}
	return LevelInfo
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return levelNames[LevelInfo]
	}
	return levelNames[l]
}

// structuredLogger writes one JSON object per line. Loggers derived with
// WithCheck share the writer and its lock.
type structuredLogger struct {
	min   LogLevel
	out   io.Writer
	mu    *sync.Mutex
	check []Field
}

// NewLogger creates a new structured logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a new structured logger with a custom writer.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &structuredLogger{
		min: ParseLogLevel(level),
		out: w,
		mu:  &sync.Mutex{},
	}
}

// WithCheck returns a logger that stamps every entry with check.name and
// check.kind.
func (l *structuredLogger) WithCheck(meta CheckMeta) Logger {
	return &structuredLogger{
		min: l.min,
		out: l.out,
		mu:  l.mu,
		check: []Field{
			{Key: "check.name", Value: meta.DisplayName()},
			{Key: "check.kind", Value: string(meta.Kind)},
		},
	}
}

func (l *structuredLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelDebug, msg, fields)
}

func (l *structuredLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelInfo, msg, fields)
}

func (l *structuredLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelWarn, msg, fields)
}

func (l *structuredLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.write(LevelError, msg, fields)
}

func (l *structuredLogger) write(level LogLevel, msg string, fields []Field) {
	if level < l.min {
		return
	}

	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level.String(),
		"msg":       msg,
	}
	for _, f := range l.check {
		entry[f.Key] = f.Value
	}
	for _, f := range fields {
		entry[f.Key] = redact(f)
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(line, '\n'))
}

func redact(f Field) any {
	if slices.Contains(RedactedFields, f.Key) {
		return "[REDACTED]"
	}
	return f.Value
}

var _ Logger = (*structuredLogger)(nil)
