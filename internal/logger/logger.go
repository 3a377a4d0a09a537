// Package logger holds the process-wide zap logger shared by the API
// server, the migration CLI and the revaluation batch.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the shared logger once for the given environment:
// JSON output for "production", console output for everything else
// (development, tests, one-shot batch runs).
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// zap construction failed; a nop logger keeps callers safe.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the shared sugared logger, lazily building a development
// one when Init was never called (the usual path in package tests).
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Deferred from every main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
