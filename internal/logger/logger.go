// Package logger wraps a process-wide slog logger so every component logs
// through the same handler with a consistent component attribute.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// defaultComponent tags log lines when Init is given no component.
const defaultComponent = "mingle_server"

// Config selects the handler for the global logger.
type Config struct {
	Level      string
	JSON       bool
	Component  string
	WithSource bool
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// Init sets up the global logger. Safe to call multiple times.
func Init(c Config) {
	mu.Lock()
	defer mu.Unlock()
	logger = build(c)
}

func build(c Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(c.Level),
		AddSource: c.WithSource,
	}

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	component := c.Component
	if component == "" {
		component = defaultComponent
	}
	return slog.New(handler).With("component", component)
}

// L returns the global logger, initializing a default one on first use.
func L() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = build(Config{})
	}
	return logger
}

// With creates a child logger with additional attributes.
func With(args ...any) *slog.Logger { return L().With(args...) }

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
