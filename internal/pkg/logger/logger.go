package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Initialize creates and configures the default logger
func Initialize(env string) *slog.Logger {
	return InitializeWithLevel(env, "")
}

// InitializeWithLevel is Initialize with an explicit level name
// ("debug", "info", "warn", "error"). An empty level uses the environment default.
func InitializeWithLevel(env, level string) *slog.Logger {
	defaultLogger = slog.New(newHandler(os.Stderr, env, level))
	slog.SetDefault(defaultLogger)

	return defaultLogger
}

func newHandler(w io.Writer, env, level string) slog.Handler {
	if env == "production" {
		// JSON logging for production
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     ParseLevel(level, slog.LevelInfo),
			AddSource: false,
		})
	}

	// Pretty text logging for development
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(level, slog.LevelDebug),
		AddSource: true,
	})
}

// ParseLevel maps a level name to a slog.Level, returning fallback for unknown names
func ParseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return fallback
}

// Get returns the default logger instance
func Get() *slog.Logger {
	if defaultLogger == nil {
		return Initialize("development")
	}
	return defaultLogger
}

// WithFields returns a new logger with additional fields
func WithFields(fields map[string]interface{}) *slog.Logger {
	logger := Get()

	for key, value := range fields {
		logger = logger.With(slog.Any(key, value))
	}

	return logger
}

// NewServiceLogger creates a logger for a specific service
func NewServiceLogger(serviceName string) *slog.Logger {
	return Get().With(slog.String("service", serviceName))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
