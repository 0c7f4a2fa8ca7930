package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/Behyna/credit-ledger/internal/model"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql
var mysqlMigrations embed.FS

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

// Models lists every table owned by the ledger, for gorm AutoMigrate.
func Models() []any {
	return []any{
		&model.Seller{},
		&model.Transaction{},
		&model.CreditRequest{},
		&model.PhoneNumber{},
	}
}

type migrationSource struct {
	sqlDriver string
	dialect   string
	fsys      fs.FS
	dir       string
}

func sourceFor(driver string) (migrationSource, error) {
	switch driver {
	case "mysql":
		return migrationSource{sqlDriver: "mysql", dialect: "mysql", fsys: mysqlMigrations, dir: "migrations/mysql"}, nil
	case "postgres":
		return migrationSource{sqlDriver: "pgx", dialect: "postgres", fsys: postgresMigrations, dir: "migrations/postgres"}, nil
	default:
		return migrationSource{}, fmt.Errorf("unsupported migration driver %q", driver)
	}
}

// RunMigrations executes a goose command (up, down, status, version, ...)
// against the embedded migrations of the given driver.
func RunMigrations(ctx context.Context, driver, dsn, command string, args ...string) error {
	src, err := sourceFor(driver)
	if err != nil {
		return err
	}

	db, err := sql.Open(src.sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", driver, err)
	}
	defer db.Close()

	goose.SetBaseFS(src.fsys)
	if err := goose.SetDialect(src.dialect); err != nil {
		return err
	}

	if err := goose.RunContext(ctx, command, db, src.dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
