// Package utils provides logging utilities shared by the Lambda functions.
package utils

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance.
var Logger *zap.Logger

var loggerMu sync.Mutex

// timeLayout renders timestamps with millisecond precision.
const timeLayout = "2006-01-02 15:04:05.000"

// InitLogger initializes the global logger writing to stdout.
// Calls after the first one return the existing logger unchanged.
func InitLogger(level string) *zap.Logger {
	return initLogger(level, zapcore.Lock(os.Stdout))
}

func initLogger(level string, sink zapcore.WriteSyncer) *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if Logger != nil {
		return Logger
	}

	Logger = NewLogger(level, sink)
	return Logger
}

// NewLogger builds a console logger with the fixed line format:
// timestamp, padded severity, file:line, message, fields.
func NewLogger(level string, sink zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		sink,
		zap.NewAtomicLevelAt(ParseLevel(level)),
	)
	return zap.New(core, zap.AddCaller())
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      paddedLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func paddedLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("%-8s", l.CapitalString()))
}

// ParseLevel converts a LOG_LEVEL value to a zap level, case-insensitively.
// Unknown values fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "critical":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger, initializing it from LOG_LEVEL if necessary.
func GetLogger() *zap.Logger {
	loggerMu.Lock()
	l := Logger
	loggerMu.Unlock()

	if l == nil {
		return InitLogger(os.Getenv("LOG_LEVEL"))
	}
	return l
}

// Sync flushes any buffered log entries.
func Sync() {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Unleveled returns a logger writing to the same outputs as logger that ignores the level
// threshold. Access-log lines and secret diagnostics go through it so LOG_LEVEL cannot hide them.
func Unleveled(logger *zap.Logger) *zap.Logger {
	return logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return alwaysEnabledCore{c}
	}))
}

type alwaysEnabledCore struct {
	zapcore.Core
}

func (c alwaysEnabledCore) Enabled(zapcore.Level) bool {
	return true
}

func (c alwaysEnabledCore) With(fields []zapcore.Field) zapcore.Core {
	return alwaysEnabledCore{c.Core.With(fields)}
}

func (c alwaysEnabledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(ent, c)
}

// LogField creates a zap field for structured logging.
type LogField = zap.Field

// Common field constructors
var (
	String = zap.String
	Int    = zap.Int
	Error  = zap.Error
)
