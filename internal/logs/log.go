// Package logs owns the process-wide zap logger: a colored console core on
// stderr, teed into a rotating JSON file when one is configured.
package logs

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"forest-ca/internal/config"
)

var (
	logger atomic.Pointer[zap.Logger]
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// stderr is the console destination; tests swap it.
	stderr io.Writer = os.Stderr
)

func init() { logger.Store(zap.NewNop()) }

// Init replaces the global logger. An unparsable level falls back to info.
func Init(appName string, cfg config.LogConfig) error {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	level.SetLevel(lvl)

	l := zap.New(newCore(cfg, zapcore.Lock(zapcore.AddSync(stderr))), options(cfg)...).Named(appName)
	if old := logger.Swap(l); old != nil {
		_ = old.Sync()
	}
	return nil
}

func newCore(cfg config.LogConfig, console zapcore.WriteSyncer) zapcore.Core {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), console, level)
	if cfg.File == "" {
		return consoleCore
	}

	// The file gets plain JSON so no ANSI color codes end up in it.
	fileCfg := encoderCfg
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    max(1, cfg.MaxSize),
		MaxBackups: max(0, cfg.MaxBackups),
		MaxAge:     max(0, cfg.MaxAge),
		Compress:   cfg.Compress,
	})
	return zapcore.NewTee(consoleCore, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), file, level))
}

func options(cfg config.LogConfig) []zap.Option {
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	return opts
}

// L returns the global logger without the helper caller skip, for handing
// to components that log on their own.
func L() *zap.Logger { return logger.Load().WithOptions(zap.AddCallerSkip(-1)) }

// Named returns a child of the global logger.
func Named(name string) *zap.Logger { return L().Named(name) }

// SetLevel changes the level of every core built by Init.
func SetLevel(l zapcore.Level) { level.SetLevel(l) }

// Sync flushes buffered entries.
func Sync() error { return logger.Load().Sync() }

func Debug(msg string, fields ...zap.Field) { logger.Load().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { logger.Load().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { logger.Load().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { logger.Load().Error(msg, fields...) }

// Fatal logs and exits with status 1.
func Fatal(msg string, fields ...zap.Field) { logger.Load().Fatal(msg, fields...) }
