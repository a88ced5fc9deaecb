package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/metrics"
	"github.com/segyhp/rental-engine/internal/repository"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/utils"
	"go.uber.org/zap"
)

// Clock returns the current time in the business location
type Clock func() time.Time

type RentalService struct {
	repo    repository.RentalRepository
	now     Clock
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewRentalService(repo repository.RentalRepository, now Clock, logger *zap.Logger, m *metrics.Metrics) *RentalService {
	if now == nil {
		now = time.Now
	}
	return &RentalService{
		repo:    repo,
		now:     now,
		logger:  logger,
		metrics: m,
	}
}

// IsQuoteExpired reports whether a quote's validity date is strictly before
// the calendar day of today. Time of day is ignored and unparsable dates never
// expire.
func IsQuoteExpired(validUntil *string, status domain.RentalStatus, today time.Time) bool {
	if status != domain.RentalStatusQuote || validUntil == nil {
		return false
	}

	date, ok := utils.ParseBrDate(*validUntil, today.Location())
	if !ok {
		return false
	}

	return date.Before(utils.StartOfDay(today))
}

// Create computes totals, applies the delivery and quote rules and writes the
// rental with its items atomically.
func (s *RentalService) Create(ctx context.Context, input *domain.RentalInput) (int64, error) {
	now := s.now()
	rental, items := buildRental(input)
	rental.CreatedAt = now
	rental.UpdatedAt = now

	id, err := s.repo.Create(ctx, rental, items)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	s.metrics.RentalWritten("create")
	s.logger.Info("rental created",
		zap.Int64("rental_id", id),
		zap.String("status", string(rental.Status)),
		zap.Int("items", len(items)),
		zap.String("total", rental.Total.String()),
	)

	return id, nil
}

// Update recomputes the rental and replaces its items.
func (s *RentalService) Update(ctx context.Context, id int64, input *domain.RentalInput) error {
	rental, items := buildRental(input)
	rental.ID = id
	rental.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rental, items); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapRentalNotFound(id)
		}
		return customError.WrapDatabaseError(err)
	}

	s.metrics.RentalWritten("update")
	s.logger.Info("rental updated",
		zap.Int64("rental_id", id),
		zap.String("status", string(rental.Status)),
		zap.Int("items", len(items)),
	)

	return nil
}

// GetByID returns a rental with its items. An expired quote is canceled in
// the store before it is returned, so this read may mutate state.
func (s *RentalService) GetByID(ctx context.Context, id int64) (*domain.RentalDetails, error) {
	rental, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	if IsQuoteExpired(rental.QuoteValidUntil, rental.Status, now) {
		if err := s.repo.CancelQuotes(ctx, []int64{id}, now); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		rental.Status = domain.RentalStatusCanceled
		rental.UpdatedAt = now

		s.metrics.QuotesExpired(1)
		s.logger.Info("quote expired", zap.Int64("rental_id", id))
	}

	return &domain.RentalDetails{Rental: *rental, Items: items}, nil
}

// List returns every rental newest first. Expired quotes are flagged, canceled
// in the store in one batch and returned as canceled, so this read may mutate
// state.
func (s *RentalService) List(ctx context.Context) ([]domain.RentalListItem, error) {
	rentals, err := s.repo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	var expired []int64
	for i := range rentals {
		if IsQuoteExpired(rentals[i].QuoteValidUntil, rentals[i].Status, now) {
			rentals[i].QuoteExpired = true
			expired = append(expired, rentals[i].ID)
		}
	}

	if len(expired) == 0 {
		return rentals, nil
	}

	if err := s.repo.CancelQuotes(ctx, expired, now); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	for i := range rentals {
		if rentals[i].QuoteExpired {
			rentals[i].Status = domain.RentalStatusCanceled
			rentals[i].UpdatedAt = now
		}
	}

	s.metrics.QuotesExpired(len(expired))
	s.logger.Info("quotes expired", zap.Int("count", len(expired)), zap.Int64s("rental_ids", expired))

	return rentals, nil
}

// ExpireQuotes runs the same sweep as List and reports how many quotes it canceled.
func (s *RentalService) ExpireQuotes(ctx context.Context) (int, error) {
	rentals, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, rental := range rentals {
		if rental.QuoteExpired {
			expired++
		}
	}
	return expired, nil
}

func (s *RentalService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return total, nil
}

// buildRental turns validated input into the rows to persist. Totals are
// always recomputed, freight only counts for delivery, the address is kept
// only for delivery and the validity date only for quotes.
func buildRental(input *domain.RentalInput) (*domain.Rental, []domain.RentalItem) {
	totals := input.Totals()
	status := domain.NormalizeRentalStatus(string(input.Status))

	rental := &domain.Rental{
		ClientID:     input.ClientID,
		StartDate:    input.StartDate,
		StartTime:    input.StartTime,
		EndDate:      input.EndDate,
		EndTime:      input.EndTime,
		DeliveryMode: domain.NormalizeDeliveryMode(string(input.DeliveryMode)),
		FreightValue: totals.Freight,
		Currency:     domain.NormalizeCurrency(string(input.Currency)),
		Subtotal:     totals.Subtotal,
		Total:        totals.Total,
		Status:       status,
		Notes:        utils.TrimToNil(input.Notes),
	}

	if rental.DeliveryMode == domain.DeliveryModeDelivery {
		rental.DeliveryAddress = utils.TrimToNil(input.DeliveryAddress)
	}
	if status == domain.RentalStatusQuote {
		rental.QuoteValidUntil = utils.TrimToNil(input.QuoteValidUntil)
	}

	items := make([]domain.RentalItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.RentalItem{
			EquipmentID:   item.EquipmentID,
			EquipmentName: item.EquipmentName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			LineTotal:     domain.LineTotal(item.Quantity, item.UnitPrice),
		})
	}

	return rental, items
}
