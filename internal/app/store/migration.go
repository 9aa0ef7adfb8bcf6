// Package store содержит реализации хранилища коротких ссылок и их миграции.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/database"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

// MigrateDB подключается к PostgreSQL отдельным пулом database/sql
// и применяет встроенные миграции из каталога migrations/postgres.
func MigrateDB(ctx context.Context, dsn string, logger *zap.SugaredLogger) error {
	db, err := database.Open(ctx, "pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrateUp(db, dialectPostgres, logger)
}

// migrateUp применяет миграции dialect к уже открытому db.
// Соединение остаётся открытым: им владеет вызывающий код.
func migrateUp(db *sql.DB, dialect string, logger *zap.SugaredLogger) error {
	var (
		driver migratedb.Driver
		err    error
	)
	switch dialect {
	case dialectPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case dialectSQLite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Infow("Migration executed successfully", "dialect", dialect)
	return nil
}
