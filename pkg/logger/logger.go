// Package logger builds a zap-backed structured logger for the registry
// hub's services.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used throughout the hub.
type Logger interface {
	Info(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field)
	Debug(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Sync() error
	With(fields ...zapcore.Field) Logger
	GetZapLogger() *zap.Logger
}

// Config holds logger construction options.
type Config struct {
	Environment string // "production" or "development"
	LogLevel    string // "debug", "info", "warn", "error", "dpanic", "panic", "fatal"
	ServiceName string
	CallerSkip  int
}

// DefaultConfig returns sane development defaults.
func DefaultConfig() Config {
	return Config{
		Environment: "development",
		LogLevel:    "info",
		ServiceName: "registryhub",
	}
}

type logger struct {
	zapLogger *zap.Logger
}

// New builds a Logger from cfg.
func New(cfg Config) (Logger, error) {
	var zapCfg zap.Config
	if strings.EqualFold(cfg.Environment, "production") {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.Encoding = "console"
	}

	zapCfg.Level = zap.NewAtomicLevelAt(parseLogLevel(cfg.LogLevel))
	if cfg.ServiceName != "" {
		zapCfg.InitialFields = map[string]interface{}{"service": cfg.ServiceName}
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.CallerSkip > 0 {
		opts = append(opts, zap.AddCallerSkip(cfg.CallerSkip))
	}

	zapLogger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &logger{zapLogger: zapLogger}, nil
}

// NewDefault builds a Logger with DefaultConfig.
func NewDefault() (Logger, error) {
	return New(DefaultConfig())
}

func (l *logger) Info(msg string, fields ...zapcore.Field)  { l.zapLogger.Info(msg, fields...) }
func (l *logger) Error(msg string, fields ...zapcore.Field) { l.zapLogger.Error(msg, fields...) }
func (l *logger) Debug(msg string, fields ...zapcore.Field) { l.zapLogger.Debug(msg, fields...) }
func (l *logger) Warn(msg string, fields ...zapcore.Field)  { l.zapLogger.Warn(msg, fields...) }
func (l *logger) Sync() error                               { return l.zapLogger.Sync() }

func (l *logger) With(fields ...zapcore.Field) Logger {
	return &logger{zapLogger: l.zapLogger.With(fields...)}
}

func (l *logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}

func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
