package service

import (
	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// SuggestedRules returns the factors a new installation starts with.
func SuggestedRules() domain.PricingRules {
	return domain.DefaultPricingRules()
}

// FactorForMode returns the multiplier applied to a daily rate for mode.
// Daily and unknown modes use 1.
func FactorForMode(mode domain.RentalMode, rules domain.PricingRules) decimal.Decimal {
	switch mode {
	case domain.RentalModeWeekly:
		return rules.WeeklyFactor
	case domain.RentalModeFortnightly:
		return rules.FortnightlyFactor
	case domain.RentalModeMonthly:
		return rules.MonthlyFactor
	default:
		return decimal.NewFromInt(1)
	}
}

// RateByMode suggests a unit price. The rental engine stores whatever unit
// price the caller picks and never derives it again.
func RateByMode(dailyRate decimal.Decimal, mode domain.RentalMode, rules domain.PricingRules) decimal.Decimal {
	return dailyRate.Mul(FactorForMode(mode, rules))
}
