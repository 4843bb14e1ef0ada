package configslog

import (
	"os"

	"go.uber.org/zap"
)

// Log is the structured logger, SLog its sugared counterpart.
// Both are ready after InitLogger.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger builds the global loggers. APP_ENV=production selects the
// JSON production config, anything else the console development config.
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("logger could not be initialized: " + err.Error())
	}
	SLog = Log.Sugar()
}

// SyncLogger flushes buffered log entries. Call via defer in main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
