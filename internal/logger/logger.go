package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/dataquerylabs/DataQueryMcp/internal/config"
)

// ParseLogLevel maps a config string onto a slog level, defaulting to Info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "INFO", "info":
		return slog.LevelInfo
	case "WARN", "warn", "WARNING", "warning":
		return slog.LevelWarn
	case "ERROR", "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type Config struct {
	Level      slog.Level
	OutputFile string
	MaxSize    int64
	Console    bool
}

func ConfigFromLoggingConfig(logCfg config.LoggingConfig) Config {
	return Config{
		Level:      ParseLogLevel(logCfg.Level),
		OutputFile: logCfg.OutputFile,
		MaxSize:    logCfg.MaxSizeMB,
		Console:    logCfg.Console,
	}
}

type Logger struct {
	slogger *slog.Logger
	logFile *os.File
}

var globalLogger *Logger

func Initialize(cfg Config) error {
	l, err := NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	globalLogger = l
	slog.SetDefault(l.slogger)
	return nil
}

// NewLogger builds a logger with a colored console handler on stderr and an
// optional size-rotated text log file. Console output must never go to
// stdout: the stdio transport owns it.
func NewLogger(cfg Config) (*Logger, error) {
	logger := &Logger{}

	var handlers []slog.Handler

	if cfg.Console {
		handlers = append(handlers, tint.NewHandler(os.Stderr, &tint.Options{
			Level:      cfg.Level,
			TimeFormat: time.TimeOnly,
		}))
	}

	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		if err := rotateLogIfNeeded(cfg.OutputFile, cfg.MaxSize*1024*1024); err != nil {
			return nil, fmt.Errorf("failed to rotate log: %w", err)
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.logFile = file
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{Level: cfg.Level}))
	}

	switch len(handlers) {
	case 0:
		logger.slogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	case 1:
		logger.slogger = slog.New(handlers[0])
	default:
		logger.slogger = slog.New(fanoutHandler(handlers))
	}

	return logger, nil
}

func rotateLogIfNeeded(filename string, maxSize int64) error {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if info.Size() >= maxSize {
		timestamp := time.Now().Format("20060102-150405")
		backupName := fmt.Sprintf("%s.%s", filename, timestamp)
		if err := os.Rename(filename, backupName); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	return nil
}

// fanoutHandler dispatches each record to every underlying handler.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, hh := range h {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithGroup(name)
	}
	return out
}

func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.slogger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.slogger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.slogger.Warn(msg, args...)
	}
}

func Error(msg string, err error, args ...any) {
	if globalLogger != nil {
		if err != nil {
			args = append(args, "error", err.Error())
		}
		globalLogger.slogger.Error(msg, args...)
	}
}

func LogToolCall(toolName, queryID string, err error) {
	if err != nil {
		Error("tool call failed", err, "tool", toolName, "query_id", queryID)
	} else {
		Info("tool call completed", "tool", toolName, "query_id", queryID)
	}
}

func LogDatabaseOperation(operation, query string, rowCount int64, err error) {
	sanitized := query
	if len(sanitized) > 100 {
		sanitized = sanitized[:100] + "..."
	}

	if err != nil {
		Error("database operation failed", err, "operation", operation, "query", sanitized)
	} else {
		Info("database operation completed", "operation", operation, "query", sanitized, "rows", rowCount)
	}
}

func GetGlobalLogger() *Logger {
	return globalLogger
}

func Shutdown() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
