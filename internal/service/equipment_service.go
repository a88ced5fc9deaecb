package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/segyhp/rental-engine/internal/database"
	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/repository"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/utils"
	"go.uber.org/zap"
)

type EquipmentService struct {
	repo   repository.EquipmentRepository
	now    Clock
	logger *zap.Logger
}

func NewEquipmentService(repo repository.EquipmentRepository, now Clock, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{repo: repo, now: now, logger: logger}
}

func (s *EquipmentService) List(ctx context.Context) ([]domain.Equipment, error) {
	equipments, err := s.repo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return equipments, nil
}

func (s *EquipmentService) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	equipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapEquipmentNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return equipment, nil
}

func (s *EquipmentService) Create(ctx context.Context, input *domain.EquipmentInput) (int64, error) {
	now := s.now()
	equipment := equipmentFromInput(input)
	equipment.CreatedAt = now
	equipment.UpdatedAt = now

	id, err := s.repo.Create(ctx, equipment)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	s.logger.Info("equipment created", zap.Int64("equipment_id", id))
	return id, nil
}

func (s *EquipmentService) Update(ctx context.Context, id int64, input *domain.EquipmentInput) error {
	equipment := equipmentFromInput(input)
	equipment.ID = id
	equipment.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, equipment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapEquipmentNotFound(id)
		}
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// Delete refuses to remove equipment referenced by a rental item.
func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return customError.WrapEquipmentNotFound(id)
		case database.IsForeignKeyViolation(err):
			return customError.WrapEquipmentInUse(id)
		default:
			return customError.WrapDatabaseError(err)
		}
	}

	s.logger.Info("equipment deleted", zap.Int64("equipment_id", id))
	return nil
}

func (s *EquipmentService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return total, nil
}

// SuggestedRate prices one unit of the equipment for mode, or for its own
// rental mode when mode is empty.
func (s *EquipmentService) SuggestedRate(ctx context.Context, id int64, mode domain.RentalMode, rules domain.PricingRules) (*domain.SuggestedRate, error) {
	equipment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if mode == "" {
		mode = equipment.RentalMode
	}
	mode = domain.NormalizeRentalMode(string(mode))

	return &domain.SuggestedRate{
		EquipmentID: equipment.ID,
		RentalMode:  mode,
		DailyRate:   equipment.DailyRate,
		Factor:      FactorForMode(mode, rules),
		UnitPrice:   RateByMode(equipment.DailyRate, mode, rules),
	}, nil
}

func equipmentFromInput(input *domain.EquipmentInput) *domain.Equipment {
	return &domain.Equipment{
		Name:           strings.TrimSpace(input.Name),
		Category:       utils.TrimToNil(input.Category),
		RentalMode:     domain.NormalizeRentalMode(string(input.RentalMode)),
		DailyRate:      input.DailyRate,
		EquipmentValue: input.EquipmentValue,
		Stock:          input.Stock,
		Notes:          utils.TrimToNil(input.Notes),
	}
}
