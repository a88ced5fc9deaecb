package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental is the header row of a rental or quote
type Rental struct {
	ID              int64           `json:"id" db:"id"`
	ClientID        int64           `json:"client_id" db:"client_id"`
	StartDate       string          `json:"start_date" db:"start_date"`
	StartTime       string          `json:"start_time" db:"start_time"`
	EndDate         string          `json:"end_date" db:"end_date"`
	EndTime         string          `json:"end_time" db:"end_time"`
	DeliveryMode    DeliveryMode    `json:"delivery_mode" db:"delivery_mode"`
	DeliveryAddress *string         `json:"delivery_address" db:"delivery_address"`
	FreightValue    decimal.Decimal `json:"freight_value" db:"freight_value"`
	Currency        Currency        `json:"currency" db:"currency"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Status          RentalStatus    `json:"status" db:"status"`
	QuoteValidUntil *string         `json:"quote_valid_until" db:"quote_valid_until"`
	Notes           *string         `json:"notes" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// RentalItem is one equipment line as written to the store.
// EquipmentName is frozen at write time.
type RentalItem struct {
	ID            int64           `json:"id" db:"id"`
	RentalID      int64           `json:"rental_id" db:"rental_id"`
	EquipmentID   int64           `json:"equipment_id" db:"equipment_id"`
	EquipmentName string          `json:"equipment_name" db:"equipment_name"`
	Quantity      int             `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total" db:"line_total"`
}

// RentalDetailItem is an item of the detail view. EquipmentName comes from the
// current equipment row, EquipmentNameSnapshot from the item itself.
type RentalDetailItem struct {
	ID                    int64           `json:"id" db:"id"`
	EquipmentID           int64           `json:"equipment_id" db:"equipment_id"`
	EquipmentName         string          `json:"equipment_name" db:"equipment_name"`
	EquipmentNameSnapshot string          `json:"equipment_name_snapshot" db:"equipment_name_snapshot"`
	Quantity              int             `json:"quantity" db:"quantity"`
	UnitPrice             decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal             decimal.Decimal `json:"line_total" db:"line_total"`
}

type RentalDetails struct {
	Rental
	Items []RentalDetailItem `json:"items"`
}

// RentalListItem is a row of the rentals listing
type RentalListItem struct {
	Rental
	ClientName   string `json:"client_name" db:"client_name"`
	ItemCount    int    `json:"item_count" db:"item_count"`
	ItemSummary  string `json:"item_summary" db:"item_summary"`
	QuoteExpired bool   `json:"quote_expired" db:"-"`
}

// DTOs for requests

type RentalInput struct {
	ClientID        int64             `json:"client_id" validate:"required,gt=0"`
	StartDate       string            `json:"start_date" validate:"required,br_date"`
	StartTime       string            `json:"start_time" validate:"required,hhmm"`
	EndDate         string            `json:"end_date" validate:"required,br_date"`
	EndTime         string            `json:"end_time" validate:"required,hhmm"`
	DeliveryMode    DeliveryMode      `json:"delivery_mode" validate:"required,oneof=pickup delivery"`
	DeliveryAddress string            `json:"delivery_address" validate:"max=255"`
	FreightValue    decimal.Decimal   `json:"freight_value" validate:"decimal_gte=0"`
	Currency        Currency          `json:"currency" validate:"omitempty,oneof=BRL USD EUR"`
	Status          RentalStatus      `json:"status" validate:"required,oneof=in_progress completed canceled quote"`
	QuoteValidUntil string            `json:"quote_valid_until"`
	Notes           string            `json:"notes"`
	Items           []RentalItemInput `json:"items" validate:"required,min=1,dive"`
}

type RentalItemInput struct {
	EquipmentID   int64           `json:"equipment_id" validate:"required,gt=0"`
	EquipmentName string          `json:"equipment_name" validate:"max=160"`
	Quantity      int             `json:"quantity" validate:"gt=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"decimal_gte=0"`
}

// Totals are the derived money values of a rental
type Totals struct {
	Subtotal decimal.Decimal
	Freight  decimal.Decimal
	Total    decimal.Decimal
}

func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// IsDelivery reports whether the input asks for delivery after normalization.
func (in RentalInput) IsDelivery() bool {
	return NormalizeDeliveryMode(string(in.DeliveryMode)) == DeliveryModeDelivery
}

// Totals recomputes subtotal, effective freight and total from the items.
// Freight only counts for delivery.
func (in RentalInput) Totals() Totals {
	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(LineTotal(item.Quantity, item.UnitPrice))
	}

	freight := decimal.Zero
	if in.IsDelivery() {
		freight = in.FreightValue
	}

	return Totals{
		Subtotal: subtotal,
		Freight:  freight,
		Total:    subtotal.Add(freight),
	}
}

// DashboardSummary holds the record counts shown on the home screen
type DashboardSummary struct {
	Clients    int64 `json:"clients"`
	Equipments int64 `json:"equipments"`
	Rentals    int64 `json:"rentals"`
}
