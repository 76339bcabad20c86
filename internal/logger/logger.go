// Package logger holds the process-wide structured logger used by the pool
// packages. Output is discarded until Init is called or BLOCKPOOL_LOG is set.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger instance. It's initialized to discard all output by default.
var L = slog.New(slog.DiscardHandler)

const (
	// EnvLevel selects a level (debug, info, warn, error) and enables stderr logging.
	EnvLevel = "BLOCKPOOL_LOG"
	// EnvFormat switches the env-enabled handler to JSON when set to "json".
	EnvFormat = "BLOCKPOOL_LOG_FORMAT"
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Output  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Emit JSON records instead of key=value text
}

func init() {
	if opts, ok := optionsFromEnv(os.Getenv(EnvLevel), os.Getenv(EnvFormat)); ok {
		Init(opts)
	}
}

// Init configures logging and returns the new logger.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) *slog.Logger {
	L = New(opts)
	return L
}

// New builds a logger from opts without touching the global.
func New(opts Options) *slog.Logger {
	if !opts.Enabled {
		return slog.New(slog.DiscardHandler)
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, hopts))
	}
	return slog.New(slog.NewTextHandler(out, hopts))
}

// optionsFromEnv maps the env toggles onto Options. ok is false when logging stays off.
func optionsFromEnv(level, format string) (Options, bool) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" || level == "off" || level == "0" {
		return Options{}, false
	}
	opts := Options{Enabled: true, JSON: strings.EqualFold(format, "json")}
	switch level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn", "warning":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}
	return opts, true
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
