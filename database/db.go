package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
)

// DB wraps a GORM connection pool.
type DB struct {
	gorm *gorm.DB
	log  *logger.Logger
	cfg  Config

	mu     sync.Mutex
	closed bool
}

// Open connects and pings, retrying with a linear backoff.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Get("database")
	}

	gormCfg := &gorm.Config{
		Logger: newGormLogger(log, cfg.SlowQueryThreshold, parseLogLevel(cfg.LogLevel)),
	}

	var err error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		var db *gorm.DB
		db, err = connect(ctx, cfg, gormCfg)
		if err == nil {
			log.Info("database connection established", logger.Fields("dsn", cfg.DSN, "attempt", attempt))
			return &DB{gorm: db, log: log, cfg: cfg}, nil
		}
		if attempt == cfg.MaxRetries {
			break
		}

		backoff := time.Duration(attempt) * time.Second
		log.Warn("database connection failed, retrying", logger.Fields(
			"attempt", attempt,
			logger.FieldError, err.Error(),
			"backoff", backoff.String(),
		))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("connect to database after %d attempts: %w", cfg.MaxRetries, err)
}

func connect(ctx context.Context, cfg Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// WithContext returns a GORM session bound to ctx.
func (d *DB) WithContext(ctx context.Context) *gorm.DB {
	return d.gorm.WithContext(ctx)
}

// Transaction runs fn in a transaction, rolling back on error or panic.
func (d *DB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

func (d *DB) PingContext(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CheckHealth reports down when the pool is closed or the ping fails.
func (d *DB) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: "database", Status: observability.HealthStatusUp}

	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()

	switch {
	case closed:
		h.Status, h.Message = observability.HealthStatusDown, "closed"
	default:
		if err := d.PingContext(ctx); err != nil {
			h.Status, h.Message = observability.HealthStatusDown, err.Error()
		}
	}
	return h
}

// Close closes the pool. Safe to call multiple times.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	d.log.Info("closing database connection")
	return sqlDB.Close()
}

// IsNotFound reports whether err is GORM's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
