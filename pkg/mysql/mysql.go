package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/Behyna/credit-ledger/pkg/dblog"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

func NewConnection(ctx context.Context, cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: dblog.New(logger, cfg.LogLevel, time.Second),
	})
	if err != nil {
		logger.Error("Failed to connect to database",
			zap.Error(err),
			zap.String("host", cfg.Host),
			zap.String("database", cfg.Name),
		)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get underlying DB", zap.Error(err))
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 50))
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Database ping failed", zap.Error(err))
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Successfully connected to MySQL database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Duration("lockTimeout", cfg.LockTimeout),
	)

	return db, nil
}

// DSN builds a go-sql-driver DSN. innodb_lock_wait_timeout is passed as a
// session variable so a blocked FOR UPDATE gives up after cfg.LockTimeout.
func DSN(cfg Config) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	if seconds := lockWaitSeconds(cfg.LockTimeout); seconds > 0 {
		dsn += fmt.Sprintf("&innodb_lock_wait_timeout=%d", seconds)
	}

	return dsn
}

// innodb_lock_wait_timeout only accepts whole seconds, minimum 1.
func lockWaitSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}

	seconds := int(d / time.Second)
	if seconds < 1 {
		return 1
	}

	return seconds
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
