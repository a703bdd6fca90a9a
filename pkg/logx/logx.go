// Package logx is a small leveled logger used across the service. It writes
// structured records through log/slog so access logs and application logs
// share one format.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level is the minimum severity written by the logger.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Fields son pares clave/valor añadidos a cada registro.
type Fields map[string]any

var (
	level  atomic.Int32
	logger atomic.Pointer[slog.Logger]
)

func init() {
	level.Store(int32(LevelInfo))
	logger.Store(newLogger(os.Stdout))
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SetLevel changes the minimum level.
func SetLevel(l Level) {
	level.Store(int32(l))
}

// SetOutput redirects output, mostly for tests.
func SetOutput(w io.Writer) {
	logger.Store(newLogger(w))
}

// ParseLevel maps "debug", "warn" and "error" to their level; anything else is info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func enabled(l Level) bool {
	return int32(l) >= level.Load()
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func write(l Level, msg string, attrs []any) {
	if !enabled(l) {
		return
	}
	logger.Load().Log(context.Background(), toSlog(l), msg, attrs...)
}

func Debug(args ...any) { write(LevelDebug, fmt.Sprint(args...), nil) }
func Info(args ...any)  { write(LevelInfo, fmt.Sprint(args...), nil) }
func Warn(args ...any)  { write(LevelWarn, fmt.Sprint(args...), nil) }
func Error(args ...any) { write(LevelError, fmt.Sprint(args...), nil) }

func Debugf(format string, args ...any) { write(LevelDebug, fmt.Sprintf(format, args...), nil) }
func Infof(format string, args ...any)  { write(LevelInfo, fmt.Sprintf(format, args...), nil) }
func Warnf(format string, args ...any)  { write(LevelWarn, fmt.Sprintf(format, args...), nil) }
func Errorf(format string, args ...any) { write(LevelError, fmt.Sprintf(format, args...), nil) }

// Fatal logs at error level and exits.
func Fatal(args ...any) {
	logger.Load().Error(fmt.Sprint(args...))
	os.Exit(1)
}

// Fatalf logs at error level and exits.
func Fatalf(format string, args ...any) {
	logger.Load().Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Entry is a logger bound to a set of fields.
type Entry struct {
	attrs []any
}

// WithFields devuelve una entrada que adjunta los campos a cada registro.
func WithFields(fields Fields) *Entry {
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return &Entry{attrs: attrs}
}

// WithField is WithFields for a single pair.
func WithField(key string, value any) *Entry {
	return &Entry{attrs: []any{key, value}}
}

func (e *Entry) Debug(args ...any) { write(LevelDebug, fmt.Sprint(args...), e.attrs) }
func (e *Entry) Info(args ...any)  { write(LevelInfo, fmt.Sprint(args...), e.attrs) }
func (e *Entry) Warn(args ...any)  { write(LevelWarn, fmt.Sprint(args...), e.attrs) }
func (e *Entry) Error(args ...any) { write(LevelError, fmt.Sprint(args...), e.attrs) }

func (e *Entry) Debugf(format string, args ...any) {
	write(LevelDebug, fmt.Sprintf(format, args...), e.attrs)
}

func (e *Entry) Infof(format string, args ...any) {
	write(LevelInfo, fmt.Sprintf(format, args...), e.attrs)
}

func (e *Entry) Warnf(format string, args ...any) {
	write(LevelWarn, fmt.Sprintf(format, args...), e.attrs)
}

func (e *Entry) Errorf(format string, args ...any) {
	write(LevelError, fmt.Sprintf(format, args...), e.attrs)
}
