package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/kbukum/elevenlabs-stt/component"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
)

type migrationSet struct {
	fsys  fs.FS
	dir   string
	table string
}

// Component opens the database on Start and applies registered migrations.
type Component struct {
	cfg        Config
	log        *logger.Logger
	db         *DB
	migrations []migrationSet
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a database component.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	if log == nil {
		log = logger.Get("database")
	}
	return &Component{cfg: cfg, log: log}
}

// WithMigrations registers migrations to apply on Start.
func (c *Component) WithMigrations(fsys fs.FS, dir, table string) *Component {
	c.migrations = append(c.migrations, migrationSet{fsys: fsys, dir: dir, table: table})
	return c
}

// DB returns the open database, or nil before Start.
func (c *Component) DB() *DB { return c.db }

func (c *Component) Name() string { return "database" }

func (c *Component) Start(ctx context.Context) error {
	db, err := Open(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	for _, m := range c.migrations {
		if err := db.MigrateUp(m.fsys, m.dir, m.table); err != nil {
			_ = db.Close()
			return fmt.Errorf("%s: %w", m.table, err)
		}
	}
	c.db = db
	return nil
}

func (c *Component) Stop(context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Component) Health(ctx context.Context) observability.Health {
	if c.db == nil {
		return observability.Health{Name: c.Name(), Status: observability.HealthStatusDown, Message: "not started"}
	}
	return c.db.CheckHealth(ctx)
}

func (c *Component) Describe() component.Description {
	return component.Description{Type: "sqlite", Details: c.cfg.DSN}
}
