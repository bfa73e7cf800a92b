package lib

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// InitLogger sets up the global structured logger. Development output is
// human readable; anything else logs JSON.
func InitLogger() {
	var logger *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	Log = logger.Sugar()
}

// SyncLogger flushes buffered log entries. Safe to call on shutdown.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
