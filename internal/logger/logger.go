// Package logger provides the structured logging interface used across title-triage.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level.
	Info(msg string, fields ...Field)
	// Warn logs a message at warning level.
	Warn(msg string, fields ...Field)
	// Error logs a message at error level.
	Error(msg string, fields ...Field)
	// With returns a new logger with the given fields attached.
	With(fields ...Field) Logger
	// Sync flushes any buffered log entries.
	Sync() error
}

// Field is a type alias for zap.Field.
type Field = zap.Field

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error).
	Level string
	// Development switches the console output to zap's development encoder.
	Development bool
	// Dir is the directory for the per-run log file. Empty disables file logging.
	Dir string
}

// zapLogger is a zap-based implementation of the Logger interface.
type zapLogger struct {
	logger *zap.Logger
}

// New creates a Logger writing human-readable lines to stdout and, when
// cfg.Dir is set, JSON lines to a timestamped file in that directory.
// It returns the log file path, or "" when file logging is disabled.
func New(cfg Config) (Logger, string, error) {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	consoleCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		consoleCfg = zap.NewDevelopmentEncoderConfig()
	}
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.DateTime)
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleCfg.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level),
	}

	var logPath string
	if cfg.Dir != "" {
		path, f, err := openLogFile(cfg.Dir, time.Now())
		if err != nil {
			return nil, "", err
		}
		logPath = path

		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCfg.EncodeCaller = zapcore.ShortCallerEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(f), level))
	}

	z := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(1), // Skip the wrapper function
	)

	return &zapLogger{logger: z}, logPath, nil
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("triage_%s.log", t.Format("20060102_150405"))
}

func openLogFile(dir string, t time.Time) (string, *os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, FileName(t))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", nil, fmt.Errorf("open log file: %w", err)
	}
	return path, f, nil
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debug logs a message at debug level.
func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, fields...)
}

// Info logs a message at info level.
func (l *zapLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, fields...)
}

// Warn logs a message at warning level.
func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, fields...)
}

// Error logs a message at error level.
func (l *zapLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, fields...)
}

// With returns a new logger with the given fields attached.
func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{
		logger: l.logger.With(fields...),
	}
}

// Sync flushes any buffered log entries.
func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

// String creates a string field.
func String(key, val string) Field {
	return zap.String(key, val)
}

// Int creates an int field.
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Float64 creates a float64 field.
func Float64(key string, val float64) Field {
	return zap.Float64(key, val)
}

// Duration creates a duration field.
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Error creates an error field with the key "error".
func Error(err error) Field {
	return zap.Error(err)
}

// Strings creates a string slice field.
func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}
