// Package logger provides structured logging for policymcp.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with policymcp-specific helpers.
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Pretty     bool   // console output for development
	Output     io.Writer
	WithCaller bool
}

// NewLogger creates a new structured logger. Output defaults to stderr since
// stdout belongs to the stdio transport.
func NewLogger(cfg Config) *Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", "policymcp").
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Zerolog returns the underlying zerolog logger.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.zlog.Info().Msg(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.zlog.Debug().Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.zlog.Warn().Msg(msg)
}

// Error logs an error message with its cause.
func (l *Logger) Error(msg string, err error) {
	l.zlog.Error().Err(err).Msg(msg)
}

// With returns a logger with an additional string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zlog: l.zlog.With().Str(key, value).Logger()}
}

// ToolLogger returns a logger for one tool invocation.
func (l *Logger) ToolLogger(tool, requestID string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "tool").
			Str("tool", tool).
			Str("request_id", requestID).
			Logger(),
	}
}

// ResourceLogger returns a logger for one resource read.
func (l *Logger) ResourceLogger(uri, requestID string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "resource").
			Str("uri", uri).
			Str("request_id", requestID).
			Logger(),
	}
}

// StoreLogger returns a logger for user store operations.
func (l *Logger) StoreLogger(path string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "store").
			Str("path", path).
			Logger(),
	}
}

// LogToolCall logs a completed tool invocation.
func (l *Logger) LogToolCall(duration time.Duration, kind string, err error) {
	if err != nil {
		l.zlog.Error().
			Dur("duration_ms", duration).
			Str("kind", kind).
			Err(err).
			Msg("tool call failed")
		return
	}
	l.zlog.Info().
		Dur("duration_ms", duration).
		Msg("tool call completed")
}

// LogResourceRead logs a completed resource read.
func (l *Logger) LogResourceRead(duration time.Duration, size int, kind string, err error) {
	if err != nil {
		l.zlog.Error().
			Dur("duration_ms", duration).
			Str("kind", kind).
			Err(err).
			Msg("resource read failed")
		return
	}
	l.zlog.Info().
		Dur("duration_ms", duration).
		Int("text_bytes", size).
		Msg("resource read completed")
}

// LogStoreOperation logs a user store operation.
func (l *Logger) LogStoreOperation(operation string, duration time.Duration, recordCount int, err error) {
	if err != nil {
		l.zlog.Error().
			Str("operation", operation).
			Dur("duration_ms", duration).
			Err(err).
			Msg("store operation failed")
		return
	}
	l.zlog.Debug().
		Str("operation", operation).
		Dur("duration_ms", duration).
		Int("record_count", recordCount).
		Msg("store operation completed")
}

// LogServerStart logs server startup.
func (l *Logger) LogServerStart(transport, storePath, documentPath string) {
	l.zlog.Info().
		Str("event", "server_start").
		Str("transport", transport).
		Str("store", storePath).
		Str("document", documentPath).
		Msg("policymcp server starting")
}

// LogServerReady logs when the server accepts requests.
func (l *Logger) LogServerReady(transport, listen string) {
	event := l.zlog.Info().
		Str("event", "server_ready").
		Str("transport", transport)
	if listen != "" {
		event = event.Str("listen", listen)
	}
	event.Msg("policymcp server ready to accept requests")
}

// LogServerShutdown logs server shutdown.
func (l *Logger) LogServerShutdown() {
	l.zlog.Info().
		Str("event", "server_shutdown").
		Msg("policymcp server shutting down")
}
