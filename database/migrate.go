package database

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/kbukum/elevenlabs-stt/logger"
)

// MigrateUp applies the pending migrations found in dir of fsys. Files follow
// golang-migrate naming: 0001_name.up.sql and 0001_name.down.sql. table names
// the version table, so several packages can migrate one database.
func (d *DB) MigrateUp(fsys fs.FS, dir, table string) error {
	m, err := d.migrator(fsys, dir, table)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrate version: %w", err)
	}
	d.log.Info("migrations applied", logger.Fields("table", table, "version", version, "dirty", dirty))
	return nil
}

// MigrateDown rolls back every migration in dir.
func (d *DB) MigrateDown(fsys fs.FS, dir, table string) error {
	m, err := d.migrator(fsys, dir, table)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// migrator builds a Migrate on the shared pool. It must not be closed, as
// that would close the pool.
func (d *DB) migrator(fsys fs.FS, dir, table string) (*migrate.Migrate, error) {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{MigrationsTable: table})
	if err != nil {
		return nil, fmt.Errorf("create migrate driver: %w", err)
	}
	source, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
