package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"librarylens/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every pending schema migration for the configured driver
// on a dedicated connection.
func Migrate(cfg config.DBConfig) error {
	var (
		sqlDB  *sql.DB
		driver migratedb.Driver
		dir    string
		name   string
		err    error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		dir, name = "migrations/sqlite", "sqlite3"
		sqlDB, err = sql.Open("sqlite3", SQLiteDSN(cfg.Path))
		if err != nil {
			return fmt.Errorf("failed to open sqlite for migrations: %w", err)
		}
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	default:
		dir, name = "migrations/postgres", "pgx5"
		sqlDB, err = sql.Open("pgx", PostgresDSN(cfg))
		if err != nil {
			return fmt.Errorf("failed to open postgres for migrations: %w", err)
		}
		driver, err = migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	}
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, driver)
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logrus.Infof("Database schema at version %d (dirty=%t)", version, dirty)

	return nil
}
