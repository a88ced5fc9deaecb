package domain

import "github.com/shopspring/decimal"

// Keys of the app_settings table
const (
	SettingCurrency            = "currency"
	SettingCompanyName         = "company_name"
	SettingCompanyDocument     = "company_document"
	SettingCompanyLogoURI      = "company_logo_uri"
	SettingRentalStartReminder = "rental_start_reminder"
	SettingRentalEndReminder   = "rental_end_reminder"
	SettingWeeklyFactor        = "weekly_factor"
	SettingFortnightlyFactor   = "fortnightly_factor"
	SettingMonthlyFactor       = "monthly_factor"
)

// SettingKeys lists every persisted key in write order.
var SettingKeys = []string{
	SettingCurrency,
	SettingCompanyName,
	SettingCompanyDocument,
	SettingCompanyLogoURI,
	SettingRentalStartReminder,
	SettingRentalEndReminder,
	SettingWeeklyFactor,
	SettingFortnightlyFactor,
	SettingMonthlyFactor,
}

// PricingRules are the multipliers applied to a daily rate
type PricingRules struct {
	WeeklyFactor      decimal.Decimal `json:"weekly_factor" validate:"decimal_gt=0"`
	FortnightlyFactor decimal.Decimal `json:"fortnightly_factor" validate:"decimal_gt=0"`
	MonthlyFactor     decimal.Decimal `json:"monthly_factor" validate:"decimal_gt=0"`
}

func DefaultPricingRules() PricingRules {
	return PricingRules{
		WeeklyFactor:      decimal.NewFromInt(6),
		FortnightlyFactor: decimal.NewFromInt(12),
		MonthlyFactor:     decimal.NewFromInt(24),
	}
}

// AppSettings is the resolved, process-wide settings bag
type AppSettings struct {
	PricingRules        PricingRules   `json:"pricing_rules"`
	Currency            Currency       `json:"currency" validate:"required,oneof=BRL USD EUR"`
	CompanyName         string         `json:"company_name" validate:"max=160"`
	CompanyDocument     string         `json:"company_document" validate:"max=40"`
	CompanyLogoURI      string         `json:"company_logo_uri" validate:"omitempty,uri"`
	RentalStartReminder ReminderOption `json:"rental_start_reminder" validate:"required,oneof=none 1h 1d"`
	RentalEndReminder   ReminderOption `json:"rental_end_reminder" validate:"required,oneof=none 1h 1d"`
}

// DefaultSettings returns the values used for any key missing from the store.
func DefaultSettings(currency Currency) AppSettings {
	return AppSettings{
		PricingRules:        DefaultPricingRules(),
		Currency:            NormalizeCurrency(string(currency)),
		RentalStartReminder: ReminderOneDay,
		RentalEndReminder:   ReminderOneHour,
	}
}

// Values flattens settings into the key/value form persisted by the store.
func (s AppSettings) Values() map[string]string {
	return map[string]string{
		SettingCurrency:            string(NormalizeCurrency(string(s.Currency))),
		SettingCompanyName:         s.CompanyName,
		SettingCompanyDocument:     s.CompanyDocument,
		SettingCompanyLogoURI:      s.CompanyLogoURI,
		SettingRentalStartReminder: string(NormalizeReminderOption(string(s.RentalStartReminder))),
		SettingRentalEndReminder:   string(NormalizeReminderOption(string(s.RentalEndReminder))),
		SettingWeeklyFactor:        s.PricingRules.WeeklyFactor.String(),
		SettingFortnightlyFactor:   s.PricingRules.FortnightlyFactor.String(),
		SettingMonthlyFactor:       s.PricingRules.MonthlyFactor.String(),
	}
}

// Setting is one persisted key/value row
type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// Entries returns the persisted rows in SettingKeys order.
func (s AppSettings) Entries() []Setting {
	values := s.Values()
	entries := make([]Setting, 0, len(SettingKeys))
	for _, key := range SettingKeys {
		entries = append(entries, Setting{Key: key, Value: values[key]})
	}
	return entries
}
