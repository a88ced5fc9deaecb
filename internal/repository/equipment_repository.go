package repository

import (
	"context"

	"github.com/segyhp/rental-engine/internal/database"
	"github.com/segyhp/rental-engine/internal/domain"
)

type equipmentRepository struct {
	handle *database.Handle
}

func NewEquipmentRepository(handle *database.Handle) EquipmentRepository {
	return &equipmentRepository{handle: handle}
}

const equipmentColumns = `id, name, category, rental_mode, daily_rate, equipment_value, stock, notes, created_at, updated_at`

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipments ORDER BY LOWER(name), id`

	equipments := []domain.Equipment{}
	if err := db.SelectContext(ctx, &equipments, query); err != nil {
		return nil, err
	}

	return equipments, nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE id = $1`

	var equipment domain.Equipment
	if err := db.GetContext(ctx, &equipment, query, id); err != nil {
		return nil, err
	}

	return &equipment, nil
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) (int64, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO equipments (name, category, rental_mode, daily_rate, equipment_value, stock, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err = db.QueryRowxContext(ctx, query,
		equipment.Name,
		equipment.Category,
		equipment.RentalMode,
		equipment.DailyRate,
		equipment.EquipmentValue,
		equipment.Stock,
		equipment.Notes,
		equipment.CreatedAt,
		equipment.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, insertIDError(err)
	}

	return id, nil
}

func (r *equipmentRepository) Update(ctx context.Context, equipment *domain.Equipment) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE equipments
		SET name = $2, category = $3, rental_mode = $4, daily_rate = $5, equipment_value = $6,
			stock = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := db.ExecContext(ctx, query,
		equipment.ID,
		equipment.Name,
		equipment.Category,
		equipment.RentalMode,
		equipment.DailyRate,
		equipment.EquipmentValue,
		equipment.Stock,
		equipment.Notes,
		equipment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (r *equipmentRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.handle, `SELECT COUNT(*) FROM equipments`)
}
