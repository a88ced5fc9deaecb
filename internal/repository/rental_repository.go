package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/segyhp/rental-engine/internal/database"
	"github.com/segyhp/rental-engine/internal/domain"
	customError "github.com/segyhp/rental-engine/pkg/errors"
)

type rentalRepository struct {
	handle *database.Handle
}

func NewRentalRepository(handle *database.Handle) RentalRepository {
	return &rentalRepository{handle: handle}
}

const rentalColumns = `id, client_id, start_date, start_time, end_date, end_time, delivery_mode,
	delivery_address, freight_value, currency, subtotal, total, status, quote_valid_until, notes,
	created_at, updated_at`

const insertRentalItemQuery = `
	INSERT INTO rental_items (rental_id, equipment_id, equipment_name, quantity, unit_price, line_total)
	VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) (int64, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO rentals (client_id, start_date, start_time, end_date, end_time, delivery_mode,
			delivery_address, freight_value, currency, subtotal, total, status, quote_valid_until, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var id int64
	err = database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			rental.ClientID,
			rental.StartDate,
			rental.StartTime,
			rental.EndDate,
			rental.EndTime,
			rental.DeliveryMode,
			rental.DeliveryAddress,
			rental.FreightValue,
			rental.Currency,
			rental.Subtotal,
			rental.Total,
			rental.Status,
			rental.QuoteValidUntil,
			rental.Notes,
			rental.CreatedAt,
			rental.UpdatedAt,
		).Scan(&id)
		if err != nil {
			return insertIDError(err)
		}
		if id <= 0 {
			return customError.ErrMissingInsertID
		}

		return insertItems(ctx, tx, id, items)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *rentalRepository) Update(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE rentals
		SET client_id = $2, start_date = $3, start_time = $4, end_date = $5, end_time = $6,
			delivery_mode = $7, delivery_address = $8, freight_value = $9, currency = $10,
			subtotal = $11, total = $12, status = $13, quote_valid_until = $14, notes = $15,
			updated_at = $16
		WHERE id = $1
	`

	return database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			rental.ID,
			rental.ClientID,
			rental.StartDate,
			rental.StartTime,
			rental.EndDate,
			rental.EndTime,
			rental.DeliveryMode,
			rental.DeliveryAddress,
			rental.FreightValue,
			rental.Currency,
			rental.Subtotal,
			rental.Total,
			rental.Status,
			rental.QuoteValidUntil,
			rental.Notes,
			rental.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if err := requireAffected(result); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM rental_items WHERE rental_id = $1`, rental.ID); err != nil {
			return err
		}

		return insertItems(ctx, tx, rental.ID, items)
	})
}

func insertItems(ctx context.Context, tx *sqlx.Tx, rentalID int64, items []domain.RentalItem) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx, insertRentalItemQuery,
			rentalID,
			item.EquipmentID,
			item.EquipmentName,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`

	var rental domain.Rental
	if err := db.GetContext(ctx, &rental, query, id); err != nil {
		return nil, err
	}

	return &rental, nil
}

func (r *rentalRepository) GetItems(ctx context.Context, rentalID int64) ([]domain.RentalDetailItem, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ri.id, ri.equipment_id, e.name AS equipment_name, ri.equipment_name AS equipment_name_snapshot,
			ri.quantity, ri.unit_price, ri.line_total
		FROM rental_items ri
		INNER JOIN equipments e ON e.id = ri.equipment_id
		WHERE ri.rental_id = $1
		ORDER BY ri.id
	`

	items := []domain.RentalDetailItem{}
	if err := db.SelectContext(ctx, &items, query, rentalID); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.RentalListItem, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT r.id, r.client_id, r.start_date, r.start_time, r.end_date, r.end_time, r.delivery_mode,
			r.delivery_address, r.freight_value, r.currency, r.subtotal, r.total, r.status,
			r.quote_valid_until, r.notes, r.created_at, r.updated_at,
			c.name AS client_name,
			COUNT(ri.id) AS item_count,
			COALESCE(STRING_AGG(ri.equipment_name, ', ' ORDER BY ri.id), '') AS item_summary
		FROM rentals r
		INNER JOIN clients c ON c.id = r.client_id
		LEFT JOIN rental_items ri ON ri.rental_id = r.id
		GROUP BY r.id, c.name
		ORDER BY r.created_at DESC, r.id DESC
	`

	rentals := []domain.RentalListItem{}
	if err := db.SelectContext(ctx, &rentals, query); err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *rentalRepository) CancelQuotes(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE rentals
		SET status = $1, updated_at = $2
		WHERE id = ANY($3) AND status = $4
	`

	_, err = db.ExecContext(ctx, query, domain.RentalStatusCanceled, at, pq.Array(ids), domain.RentalStatusQuote)
	return err
}

func (r *rentalRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.handle, `SELECT COUNT(*) FROM rentals`)
}
