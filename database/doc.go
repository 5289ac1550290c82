// Package database provides a SQLite connection pool built on GORM, with
// golang-migrate migrations and a lifecycle component.
//
//	db := database.NewComponent(cfg.Database, log).
//	    WithMigrations(migrations, "migrations", "transcript_migrations")
//	_ = app.Register(db)
package database
