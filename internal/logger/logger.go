package logger

import (
	"os"
	"sort"
	"strings"

	"github.com/samvad-hq/rahkaran-client/internal/config"
	"github.com/samvad-hq/rahkaran-client/pkg/rahkaran"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface the runner hands to the client and publishers.
type Logger = rahkaran.Logger

// NopLogger discards everything.
type NopLogger = rahkaran.NopLogger

// std is the process logger; helpers logs for the package-level functions.
// Both are nil until Init.
var std, helpers *zap.Logger

// Init builds the process logger: JSON to stderr, since stdout carries results.
func Init(cfg *config.Config) (Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	std = zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("app", cfg.AppName), zap.String("env", cfg.Env)),
	)
	helpers = std.WithOptions(zap.AddCallerSkip(2))
	return New(std), nil
}

// New adapts a zap logger; nil yields a NopLogger.
func New(l *zap.Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return &zapLogger{l: l.WithOptions(zap.AddCallerSkip(1))}
}

// Close flushes the process logger.
func Close() error {
	if std == nil {
		return nil
	}
	return std.Sync()
}

type zapLogger struct {
	l *zap.Logger
}

func (z *zapLogger) InfoObj(msg, key string, obj interface{})  { z.l.Info(msg, zap.Any(key, obj)) }
func (z *zapLogger) DebugObj(msg, key string, obj interface{}) { z.l.Debug(msg, zap.Any(key, obj)) }
func (z *zapLogger) WarnObj(msg, key string, obj interface{})  { z.l.Warn(msg, zap.Any(key, obj)) }
func (z *zapLogger) ErrorObj(msg, key string, obj interface{}) { z.l.Error(msg, zap.Any(key, obj)) }

// Package-level helpers; no-ops before Init.

func InfoObj(msg, key string, obj interface{})  { logAt(zapcore.InfoLevel, msg, key, obj) }
func DebugObj(msg, key string, obj interface{}) { logAt(zapcore.DebugLevel, msg, key, obj) }
func WarnObj(msg, key string, obj interface{})  { logAt(zapcore.WarnLevel, msg, key, obj) }
func ErrorObj(msg, key string, obj interface{}) { logAt(zapcore.ErrorLevel, msg, key, obj) }

func logAt(level zapcore.Level, msg, key string, obj interface{}) {
	if helpers == nil {
		return
	}
	helpers.Log(level, msg, zap.Any(key, obj))
}

// CookieNames lists session cookie names for logging; values are credentials
// and never logged.
func CookieNames(cookies map[string]string) []string {
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
