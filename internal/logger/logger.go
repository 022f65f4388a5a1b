// Package logger holds the process-wide zap logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	mu    sync.RWMutex
)

// Init builds the global logger. "production" gets JSON output, "test" a
// no-op logger, anything else the development console encoder. level is a
// zap level name; an unknown or empty value keeps the environment default.
func Init(env, level string) {
	mu.Lock()
	defer mu.Unlock()

	if env == "test" {
		sugar = zap.NewNop().Sugar()
		return
	}

	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if lvl, err := zapcore.ParseLevel(level); err == nil && level != "" {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	sugar = base.Sugar()
}

// Get returns the global logger, initialising a development logger on first use.
func Get() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s != nil {
		return s
	}
	Init("development", "")
	return Get()
}

// Named returns a child logger tagged with a component name.
func Named(name string) *zap.SugaredLogger {
	return Get().Named(name)
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}
