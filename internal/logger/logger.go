// Package logger provides structured logging configuration using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by DefaultConfig.
const (
	EnvLevel  = "THEMETUNE_LOG_LEVEL"
	EnvFormat = "THEMETUNE_LOG_FORMAT"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
}

// NewLogger creates a configured slog.Logger.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		// Add a source location for debug level
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps DEBUG, INFO, WARN/WARNING and ERROR (any case) to a level.
// Unknown values yield fallback.
func ParseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return fallback
	}
}

// DefaultConfig returns the default logger configuration.
// THEMETUNE_LOG_LEVEL sets the level (default INFO) and
// THEMETUNE_LOG_FORMAT=json switches to JSON output.
func DefaultConfig() Config {
	format := "text"
	if strings.EqualFold(os.Getenv(EnvFormat), "json") {
		format = "json"
	}

	return Config{
		Level:  ParseLevel(os.Getenv(EnvLevel), slog.LevelInfo),
		Format: format,
	}
}
