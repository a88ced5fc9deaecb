package service

import (
	"context"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/metrics"
	"github.com/segyhp/rental-engine/internal/repository"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettingsCache keeps the resolved settings out of the store between reads.
// Get reports false on a miss.
type SettingsCache interface {
	Get(ctx context.Context) (*domain.AppSettings, bool, error)
	Set(ctx context.Context, settings *domain.AppSettings) error
	Delete(ctx context.Context) error
}

type SettingsService struct {
	repo     repository.SettingsRepository
	cache    SettingsCache
	defaults domain.AppSettings
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewSettingsService builds the service. cache may be nil.
func NewSettingsService(repo repository.SettingsRepository, cache SettingsCache, defaultCurrency domain.Currency, logger *zap.Logger, m *metrics.Metrics) *SettingsService {
	return &SettingsService{
		repo:     repo,
		cache:    cache,
		defaults: domain.DefaultSettings(defaultCurrency),
		logger:   logger,
		metrics:  m,
	}
}

// Get merges the persisted values over the defaults. Cache failures fall
// through to the store.
func (s *SettingsService) Get(ctx context.Context) (*domain.AppSettings, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.Warn("settings cache read failed", zap.Error(err))
		case ok:
			s.metrics.CacheLookup(true)
			return cached, nil
		default:
			s.metrics.CacheLookup(false)
		}
	}

	values, err := s.repo.GetValues(ctx, domain.SettingKeys)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	settings := resolveSettings(values, s.defaults)

	if s.cache != nil {
		if err := s.cache.Set(ctx, &settings); err != nil {
			s.logger.Warn("settings cache write failed", zap.Error(err))
		}
	}

	return &settings, nil
}

// Save upserts every key and drops the cached copy.
func (s *SettingsService) Save(ctx context.Context, input *domain.AppSettings) error {
	if err := s.repo.Upsert(ctx, input.Entries()); err != nil {
		return customError.WrapDatabaseError(err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx); err != nil {
			s.logger.Warn("settings cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("settings saved", zap.String("currency", string(input.Currency)))
	return nil
}

// DefaultCurrency is the currency applied to rentals that do not name one.
func (s *SettingsService) DefaultCurrency(ctx context.Context) (domain.Currency, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	return settings.Currency, nil
}

func resolveSettings(values map[string]string, defaults domain.AppSettings) domain.AppSettings {
	settings := defaults

	if value, ok := values[domain.SettingCurrency]; ok {
		settings.Currency = domain.NormalizeCurrency(value)
	}
	if value, ok := values[domain.SettingCompanyName]; ok {
		settings.CompanyName = value
	}
	if value, ok := values[domain.SettingCompanyDocument]; ok {
		settings.CompanyDocument = value
	}
	if value, ok := values[domain.SettingCompanyLogoURI]; ok {
		settings.CompanyLogoURI = value
	}
	if value, ok := values[domain.SettingRentalStartReminder]; ok {
		settings.RentalStartReminder = domain.NormalizeReminderOption(value)
	}
	if value, ok := values[domain.SettingRentalEndReminder]; ok {
		settings.RentalEndReminder = domain.NormalizeReminderOption(value)
	}

	settings.PricingRules = domain.PricingRules{
		WeeklyFactor:      factorOrDefault(values, domain.SettingWeeklyFactor, defaults.PricingRules.WeeklyFactor),
		FortnightlyFactor: factorOrDefault(values, domain.SettingFortnightlyFactor, defaults.PricingRules.FortnightlyFactor),
		MonthlyFactor:     factorOrDefault(values, domain.SettingMonthlyFactor, defaults.PricingRules.MonthlyFactor),
	}

	return settings
}

func factorOrDefault(values map[string]string, key string, fallback decimal.Decimal) decimal.Decimal {
	value, ok := values[key]
	if !ok {
		return fallback
	}
	factor := utils.ParseDecimalInput(value)
	if !factor.IsPositive() {
		return fallback
	}
	return factor
}
