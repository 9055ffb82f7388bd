// Package logger provides test helpers for structured logging.
package logger

import (
	"bytes"
	"log/slog"
	"os"
	"sync"
)

// NewTestLogger creates a logger for tests.
// By default, uses WARN level to keep test output quiet.
// Set TEST_DEBUG environment variable to enable debug logging in tests.
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn // Quiet by default

	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}

	return NewLogger(Config{Level: level, Output: os.Stdout})
}

// Capture is a concurrency-safe buffer that collects log output for assertions.
type Capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// String returns everything logged so far.
func (c *Capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// NewCaptureLogger returns a debug-level text logger writing into the returned Capture.
func NewCaptureLogger() (*slog.Logger, *Capture) {
	c := &Capture{}
	return NewLogger(Config{Level: slog.LevelDebug, Output: c}), c
}
