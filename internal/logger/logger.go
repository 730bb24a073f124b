package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type implLogger struct {
	sugar *zap.SugaredLogger
	level zapcore.Level
}

// New creates a console Logger at the given level
func New(level string) Logger {
	return NewWithFormat(level, "text")
}

// NewWithFormat creates a Logger writing to stdout. format is "text" or "json".
func NewWithFormat(level, format string) Logger {
	lvl := parseLevel(level)

	var enc zapcore.Encoder
	if strings.ToLower(format) == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(lvl))
	return &implLogger{
		sugar: zap.New(core).Sugar(),
		level: lvl,
	}
}

// FromZap wraps an existing zap logger. Level filtering is left to its core.
func FromZap(z *zap.Logger) Logger {
	return &implLogger{
		sugar: z.Sugar(),
		level: zapcore.DebugLevel,
	}
}

// NewNop returns a Logger that discards everything
func NewNop() Logger {
	return FromZap(zap.NewNop())
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *implLogger) shouldLog(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return parseLevel(level) >= l.level
	}
	return true
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.sugar.Debugf(msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.sugar.Infof(msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.sugar.Warnf(msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.sugar.Errorf(msg, args...)
	}
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *implLogger) Sync() error {
	if err := l.sugar.Sync(); err != nil && !strings.Contains(err.Error(), "inappropriate ioctl") &&
		!strings.Contains(err.Error(), "invalid argument") {
		return err
	}
	return nil
}
