package logger

import (
	"log"

	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

// Init builds the process-wide logger. Release mode gets JSON output,
// everything else gets the human-readable development encoder.
func Init(ginMode string) {
	var (
		l   *zap.Logger
		err error
	)
	if ginMode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	sugar = l.Sugar()
}

// L returns the shared sugared logger. Falls back to a no-op logger so
// tests can use packages that log without calling Init.
func L() *zap.SugaredLogger {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}
	return sugar
}

// Sync flushes buffered log entries.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
