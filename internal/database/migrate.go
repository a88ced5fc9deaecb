package database

import (
	"context"
	"fmt"

	"github.com/segyhp/rental-engine/internal/domain"
	"go.uber.org/zap"
)

// BootstrapError is returned when both the schema apply and the
// recreate-from-scratch recovery failed.
type BootstrapError struct {
	Initial  error
	Recovery error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("database bootstrap failed: initial=%q recovery=%q", e.Initial, e.Recovery)
}

func (e *BootstrapError) Unwrap() []error {
	return []error{e.Initial, e.Recovery}
}

// Migrator creates and upgrades the schema
type Migrator struct {
	handle   *Handle
	settings domain.AppSettings
	logger   *zap.Logger
}

func NewMigrator(handle *Handle, defaultCurrency domain.Currency, logger *zap.Logger) *Migrator {
	return &Migrator{
		handle:   handle,
		settings: domain.DefaultSettings(defaultCurrency),
		logger:   logger,
	}
}

// Apply runs every schema statement in order and seeds missing settings.
// It is safe to run on an up-to-date store.
func (m *Migrator) Apply(ctx context.Context) error {
	db, err := m.handle.Get(ctx)
	if err != nil {
		return err
	}

	for _, statement := range schemaStatements() {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			if IsDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	for _, setting := range m.settings.Entries() {
		if _, err := db.ExecContext(ctx, seedSettingQuery, setting.Key, setting.Value); err != nil {
			return fmt.Errorf("seed setting %s: %w", setting.Key, err)
		}
	}

	return nil
}

// Bootstrap applies the schema. On failure it drops every table, reopens the
// pool and applies the schema again once.
func (m *Migrator) Bootstrap(ctx context.Context) error {
	initialErr := m.Apply(ctx)
	if initialErr == nil {
		return nil
	}
	m.logger.Error("initial schema apply failed", zap.Error(initialErr))

	if err := m.recreate(ctx); err != nil {
		m.logger.Error("database recovery failed", zap.Error(err))
		return &BootstrapError{Initial: initialErr, Recovery: err}
	}

	m.logger.Warn("database was recreated after migration failure")
	return nil
}

func (m *Migrator) recreate(ctx context.Context) error {
	if err := m.handle.Reset(); err != nil {
		m.logger.Warn("closing database pool failed", zap.Error(err))
	}

	db, err := m.handle.Get(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, dropTablesQuery); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}

	return m.Apply(ctx)
}
