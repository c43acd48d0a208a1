package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

type logWriter struct {
	log zerolog.Logger
}

func (w logWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Msgf(format, args...)
}

// NewLogger returns a GORM logger writing to log. Statements are only
// traced when log is enabled at debug level.
func NewLogger(log zerolog.Logger) logger.Interface {
	level := logger.Silent
	if debugEnabled(log) {
		level = logger.Info
	}

	return logger.New(logWriter{log: log.With().Str("component", "gorm").Logger()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func debugEnabled(log zerolog.Logger) bool {
	return log.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel
}
