package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/segyhp/rental-engine/internal/database"
	"github.com/segyhp/rental-engine/internal/domain"
)

type settingsRepository struct {
	handle *database.Handle
}

func NewSettingsRepository(handle *database.Handle) SettingsRepository {
	return &settingsRepository{handle: handle}
}

func (r *settingsRepository) GetValues(ctx context.Context, keys []string) (map[string]string, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	var rows []domain.Setting
	query := `SELECT key, value FROM app_settings WHERE key = ANY($1)`
	if err := db.SelectContext(ctx, &rows, query, pq.Array(keys)); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// Upsert writes every setting in one transaction.
func (r *settingsRepository) Upsert(ctx context.Context, settings []domain.Setting) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO app_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	return database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, setting := range settings {
			if _, err := tx.ExecContext(ctx, query, setting.Key, setting.Value); err != nil {
				return err
			}
		}
		return nil
	})
}
