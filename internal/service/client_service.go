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

type ClientService struct {
	repo   repository.ClientRepository
	now    Clock
	logger *zap.Logger
}

func NewClientService(repo repository.ClientRepository, now Clock, logger *zap.Logger) *ClientService {
	return &ClientService{repo: repo, now: now, logger: logger}
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return clients, nil
}

func (s *ClientService) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapClientNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, input *domain.ClientInput) (int64, error) {
	now := s.now()
	client := clientFromInput(input)
	client.CreatedAt = now
	client.UpdatedAt = now

	id, err := s.repo.Create(ctx, client)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	s.logger.Info("client created", zap.Int64("client_id", id))
	return id, nil
}

func (s *ClientService) Update(ctx context.Context, id int64, input *domain.ClientInput) error {
	client := clientFromInput(input)
	client.ID = id
	client.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, client); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapClientNotFound(id)
		}
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// Delete refuses to remove a client that still has rentals.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return customError.WrapClientNotFound(id)
		case database.IsForeignKeyViolation(err):
			return customError.WrapClientInUse(id)
		default:
			return customError.WrapDatabaseError(err)
		}
	}

	s.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

func (s *ClientService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return total, nil
}

func clientFromInput(input *domain.ClientInput) *domain.Client {
	return &domain.Client{
		Name:     strings.TrimSpace(input.Name),
		Phone:    utils.TrimToNil(input.Phone),
		Document: utils.TrimToNil(input.Document),
		Notes:    utils.TrimToNil(input.Notes),
	}
}
