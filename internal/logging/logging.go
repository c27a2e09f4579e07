// Package logging provides the application's structured logger and the
// narrow Logger capability the service layer consumes.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sakif/userdir/internal/config"
)

// Level is the severity passed to Logger.Log.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "Info"
	case LevelWarn:
		return "Warn"
	case LevelError:
		return "Error"
	case LevelDebug:
		return "Debug"
	}
	return "Unknown"
}

// slogLevel maps a Level onto slog's ordering. Unknown levels log as info.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Logger is all the service layer knows about logging: it hands over a level
// and a message and never looks at what happens next.
type Logger interface {
	Log(ctx context.Context, level Level, msg string, args ...any)
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Log(ctx context.Context, level Level, msg string, args ...any) {
	l.logger.Log(ctx, level.slogLevel(), msg, args...)
}

// Info logs msg at LevelInfo.
func Info(ctx context.Context, l Logger, msg string, args ...any) {
	l.Log(ctx, LevelInfo, msg, args...)
}

// Error logs msg at LevelError.
func Error(ctx context.Context, l Logger, msg string, args ...any) {
	l.Log(ctx, LevelError, msg, args...)
}

// Nop discards everything. Handy in tests.
type Nop struct{}

func (Nop) Log(context.Context, Level, string, ...any) {}

// Setup builds the application's *slog.Logger from cfg and installs it as
// the slog default.
func Setup(cfg config.LogConfig) *slog.Logger {
	logger := New(cfg, outputFor(cfg.Output))
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w. Unlike Setup it leaves the slog default
// alone.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func outputFor(name string) io.Writer {
	if name == "stderr" {
		return os.Stderr
	}
	return os.Stdout
}

// ParseLevel maps a config level name onto slog. Case and surrounding
// whitespace are ignored; anything unrecognised is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
