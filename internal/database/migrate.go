package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the users schema up to date. It uses its own connection
// because closing a migrate instance closes the database handle it was given.
func Migrate(dialect Dialect, dsn string) error {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return fmt.Errorf("database: open for migrate: %w", err)
	}
	defer db.Close()

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("database: migrations source: %w", err)
	}

	var drv migratedb.Driver
	switch dialect {
	case SQLite:
		drv, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case Postgres:
		drv, err = migratepg.WithInstance(db, &migratepg.Config{})
	case MySQL:
		drv, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	default:
		return fmt.Errorf("database: no migrations for dialect %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("database: migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), drv)
	if err != nil {
		return fmt.Errorf("database: migrate init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("database: migrate up: %w", err)
	}
	return nil
}
