package dblog

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
)

// New returns a gorm logger that writes through zap.
func New(logger *zap.Logger, level string, slowThreshold time.Duration) gormLogger.Interface {
	if slowThreshold <= 0 {
		slowThreshold = time.Second
	}

	return gormLogger.New(&zapWriter{logger: logger},
		gormLogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  ParseLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})
}

func ParseLevel(level string) gormLogger.LogLevel {
	switch level {
	case "info":
		return gormLogger.Info
	case "warn":
		return gormLogger.Warn
	case "silent":
		return gormLogger.Silent
	default:
		return gormLogger.Error
	}
}

type zapWriter struct {
	logger *zap.Logger
}

func (z *zapWriter) Printf(format string, args ...interface{}) {
	z.logger.Info(fmt.Sprintf(format, args...))
}
