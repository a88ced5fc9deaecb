package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment represents a rentable item kept in stock
type Equipment struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Category       *string         `json:"category" db:"category"`
	RentalMode     RentalMode      `json:"rental_mode" db:"rental_mode"`
	DailyRate      decimal.Decimal `json:"daily_rate" db:"daily_rate"`
	EquipmentValue decimal.Decimal `json:"equipment_value" db:"equipment_value"`
	Stock          int             `json:"stock" db:"stock"`
	Notes          *string         `json:"notes" db:"notes"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

type EquipmentInput struct {
	Name           string          `json:"name" validate:"notblank,max=160"`
	Category       string          `json:"category" validate:"max=80"`
	RentalMode     RentalMode      `json:"rental_mode" validate:"required,oneof=daily weekly fortnightly monthly"`
	DailyRate      decimal.Decimal `json:"daily_rate" validate:"decimal_gt=0"`
	EquipmentValue decimal.Decimal `json:"equipment_value" validate:"decimal_gte=0"`
	Stock          int             `json:"stock" validate:"gte=0"`
	Notes          string          `json:"notes"`
}

// SuggestedRate is the unit price derived from an equipment's daily rate and mode
type SuggestedRate struct {
	EquipmentID int64           `json:"equipment_id"`
	RentalMode  RentalMode      `json:"rental_mode"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Factor      decimal.Decimal `json:"factor"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
