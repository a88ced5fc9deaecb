package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/segyhp/rental-engine/internal/database"
	customError "github.com/segyhp/rental-engine/pkg/errors"
)

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// insertIDError maps an INSERT ... RETURNING id that produced no row.
func insertIDError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customError.ErrMissingInsertID
	}
	return err
}

func count(ctx context.Context, handle *database.Handle, query string) (int64, error) {
	db, err := handle.Get(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := db.GetContext(ctx, &total, query); err != nil {
		return 0, err
	}
	return total, nil
}
