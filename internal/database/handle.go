package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/rental-engine/internal/config"
)

var ErrNoOpener = errors.New("database handle has no opener")

// Opener creates a new connection pool
type Opener func(ctx context.Context) (*sqlx.DB, error)

// Handle lazily opens and shares one connection pool. A failed open is not
// remembered, the next Get tries again.
type Handle struct {
	mu   sync.Mutex
	db   *sqlx.DB
	open Opener
}

func NewHandle(open Opener) *Handle {
	return &Handle{open: open}
}

// FromDB wraps an already open pool.
func FromDB(db *sqlx.DB) *Handle {
	return &Handle{db: db}
}

// Get returns the shared pool, opening it on first use.
func (h *Handle) Get(ctx context.Context) (*sqlx.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}
	if h.open == nil {
		return nil, ErrNoOpener
	}

	db, err := h.open(ctx)
	if err != nil {
		return nil, err
	}
	h.db = db
	return db, nil
}

func (h *Handle) Ping(ctx context.Context) error {
	db, err := h.Get(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Reset closes the current pool so the next Get reopens it. A handle built
// with FromDB cannot reopen and keeps its pool.
func (h *Handle) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil || h.open == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// PostgresOpener connects with lib/pq and applies the pool settings.
func PostgresOpener(cfg config.DatabaseConfig) Opener {
	return func(ctx context.Context) (*sqlx.DB, error) {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		return db, nil
	}
}
