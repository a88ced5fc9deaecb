package repository

import (
	"context"

	"github.com/segyhp/rental-engine/internal/database"
	"github.com/segyhp/rental-engine/internal/domain"
)

type clientRepository struct {
	handle *database.Handle
}

func NewClientRepository(handle *database.Handle) ClientRepository {
	return &clientRepository{handle: handle}
}

const clientColumns = `id, name, phone, document, notes, created_at, updated_at`

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY LOWER(name), id`

	clients := []domain.Client{}
	if err := db.SelectContext(ctx, &clients, query); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var client domain.Client
	if err := db.GetContext(ctx, &client, query, id); err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (int64, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO clients (name, phone, document, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err = db.QueryRowxContext(ctx, query,
		client.Name,
		client.Phone,
		client.Document,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, insertIDError(err)
	}

	return id, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE clients
		SET name = $2, phone = $3, document = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.Phone,
		client.Document,
		client.Notes,
		client.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.handle, `SELECT COUNT(*) FROM clients`)
}
