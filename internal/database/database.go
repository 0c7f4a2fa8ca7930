package database

import (
	"context"
	"fmt"

	"github.com/Behyna/credit-ledger/internal/config"
	"github.com/Behyna/credit-ledger/pkg/mysql"
	"github.com/Behyna/credit-ledger/pkg/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysql.NewConnection(ctx, cfg.Database.MySQL, logger)
	case config.DriverPostgres:
		return postgres.NewConnection(ctx, cfg.Database.Postgres, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// DSN returns the raw driver DSN, for tools that speak database/sql.
func DSN(cfg *config.Config) (string, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysql.DSN(cfg.Database.MySQL), nil
	case config.DriverPostgres:
		return postgres.DSN(cfg.Database.Postgres), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
