package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlx.NewDb(sqlDB, "postgres"), mock
}

func expectApply(mock sqlmock.Sqlmock) {
	for _, statement := range tableStatements {
		mock.ExpectExec(regexp.QuoteMeta(statement)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, statement := range columnStatements {
		mock.ExpectExec(regexp.QuoteMeta(statement)).WillReturnError(&pq.Error{Code: "42701", Message: "column already exists"})
	}
	for _, statement := range indexStatements {
		mock.ExpectExec(regexp.QuoteMeta(statement)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	for _, setting := range domain.DefaultSettings(domain.CurrencyBRL).Entries() {
		mock.ExpectExec(regexp.QuoteMeta(seedSettingQuery)).
			WithArgs(setting.Key, setting.Value).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func TestHandle_FailedOpenIsNotMemoized(t *testing.T) {
	db, _ := newMockDB(t)
	ctx := context.Background()

	calls := 0
	handle := NewHandle(func(context.Context) (*sqlx.DB, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return db, nil
	})

	_, err := handle.Get(ctx)
	require.Error(t, err)

	got, err := handle.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, db, got)

	again, err := handle.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, db, again)
	assert.Equal(t, 2, calls)
}

func TestHandle_WithoutOpener(t *testing.T) {
	_, err := NewHandle(nil).Get(context.Background())
	assert.ErrorIs(t, err, ErrNoOpener)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM rental_items").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := WithTx(ctx, db, func(tx *sqlx.Tx) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM rental_items WHERE rental_id = $1", 1)
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns the original error", func(t *testing.T) {
		db, mock := newMockDB(t)
		failure := errors.New("item insert failed")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := WithTx(ctx, db, func(*sqlx.Tx) error { return failure })

		assert.Same(t, failure, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPqErrorCodes(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(errors.New("23503")))
	assert.True(t, IsDuplicateColumn(&pq.Error{Code: "42701"}))
	assert.False(t, IsDuplicateColumn(&pq.Error{Code: "42P07"}))
}

func TestMigrator_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("tolerates duplicate columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		expectApply(mock)

		err := NewMigrator(FromDB(db), domain.CurrencyBRL, zap.NewNop()).Apply(ctx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on other errors", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(tableStatements[0])).WillReturnError(errors.New("permission denied"))

		err := NewMigrator(FromDB(db), domain.CurrencyBRL, zap.NewNop()).Apply(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
	})
}

func TestMigrator_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("recreates after a failed apply", func(t *testing.T) {
		broken, brokenMock := newMockDB(t)
		fresh, freshMock := newMockDB(t)
		pools := []*sqlx.DB{broken, fresh}

		handle := NewHandle(func(context.Context) (*sqlx.DB, error) {
			db := pools[0]
			pools = pools[1:]
			return db, nil
		})

		brokenMock.ExpectExec(regexp.QuoteMeta(tableStatements[0])).WillReturnError(errors.New("database disk image is malformed"))
		brokenMock.ExpectClose()
		freshMock.ExpectExec(regexp.QuoteMeta(dropTablesQuery)).WillReturnResult(sqlmock.NewResult(0, 0))
		expectApply(freshMock)

		err := NewMigrator(handle, domain.CurrencyBRL, zap.NewNop()).Bootstrap(ctx)

		assert.NoError(t, err)
		assert.NoError(t, brokenMock.ExpectationsWereMet())
		assert.NoError(t, freshMock.ExpectationsWereMet())
	})

	t.Run("reports both failures", func(t *testing.T) {
		db, mock := newMockDB(t)
		initial := errors.New("relation is corrupted")
		recovery := errors.New("must be owner of table rentals")

		mock.ExpectExec(regexp.QuoteMeta(tableStatements[0])).WillReturnError(initial)
		mock.ExpectExec(regexp.QuoteMeta(dropTablesQuery)).WillReturnError(recovery)

		err := NewMigrator(FromDB(db), domain.CurrencyBRL, zap.NewNop()).Bootstrap(ctx)

		var bootstrapErr *BootstrapError
		require.ErrorAs(t, err, &bootstrapErr)
		assert.ErrorIs(t, err, initial)
		assert.ErrorIs(t, err, recovery)
		assert.Contains(t, err.Error(), "relation is corrupted")
		assert.Contains(t, err.Error(), "must be owner of table rentals")
	})
}
