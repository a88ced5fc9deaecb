package domain

import (
	"database/sql/driver"
	"fmt"
)

// Every enum below normalizes itself when scanned from the store, so legacy or
// malformed rows degrade to a safe default instead of failing the read.

type RentalStatus string

const (
	RentalStatusInProgress RentalStatus = "in_progress"
	RentalStatusCompleted  RentalStatus = "completed"
	RentalStatusCanceled   RentalStatus = "canceled"
	RentalStatusQuote      RentalStatus = "quote"
)

// NormalizeRentalStatus maps legacy values (closed, draft) to their current
// equivalents and anything unknown to in_progress.
func NormalizeRentalStatus(value string) RentalStatus {
	switch value {
	case string(RentalStatusCompleted), string(RentalStatusCanceled), string(RentalStatusQuote), string(RentalStatusInProgress):
		return RentalStatus(value)
	case "closed":
		return RentalStatusCompleted
	case "draft":
		return RentalStatusQuote
	default:
		return RentalStatusInProgress
	}
}

func (s *RentalStatus) Scan(src any) error {
	value, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan rental status: %w", err)
	}
	*s = NormalizeRentalStatus(value)
	return nil
}

func (s RentalStatus) Value() (driver.Value, error) {
	return string(s), nil
}

type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// NormalizeCurrency defaults anything other than USD or EUR to BRL.
func NormalizeCurrency(value string) Currency {
	switch value {
	case string(CurrencyUSD), string(CurrencyEUR):
		return Currency(value)
	default:
		return CurrencyBRL
	}
}

func (c *Currency) Scan(src any) error {
	value, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan currency: %w", err)
	}
	*c = NormalizeCurrency(value)
	return nil
}

func (c Currency) Value() (driver.Value, error) {
	return string(c), nil
}

type DeliveryMode string

const (
	DeliveryModePickup   DeliveryMode = "pickup"
	DeliveryModeDelivery DeliveryMode = "delivery"
)

func NormalizeDeliveryMode(value string) DeliveryMode {
	if value == string(DeliveryModeDelivery) {
		return DeliveryModeDelivery
	}
	return DeliveryModePickup
}

func (m *DeliveryMode) Scan(src any) error {
	value, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan delivery mode: %w", err)
	}
	*m = NormalizeDeliveryMode(value)
	return nil
}

func (m DeliveryMode) Value() (driver.Value, error) {
	return string(m), nil
}

// RentalMode is the pricing cadence of an equipment
type RentalMode string

const (
	RentalModeDaily       RentalMode = "daily"
	RentalModeWeekly      RentalMode = "weekly"
	RentalModeFortnightly RentalMode = "fortnightly"
	RentalModeMonthly     RentalMode = "monthly"
)

func NormalizeRentalMode(value string) RentalMode {
	switch value {
	case string(RentalModeWeekly), string(RentalModeFortnightly), string(RentalModeMonthly):
		return RentalMode(value)
	default:
		return RentalModeDaily
	}
}

func (m *RentalMode) Scan(src any) error {
	value, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan rental mode: %w", err)
	}
	*m = NormalizeRentalMode(value)
	return nil
}

func (m RentalMode) Value() (driver.Value, error) {
	return string(m), nil
}

// ReminderOption is how long before a rental boundary a reminder fires
type ReminderOption string

const (
	ReminderNone    ReminderOption = "none"
	ReminderOneHour ReminderOption = "1h"
	ReminderOneDay  ReminderOption = "1d"
)

func NormalizeReminderOption(value string) ReminderOption {
	switch value {
	case string(ReminderNone), string(ReminderOneHour):
		return ReminderOption(value)
	default:
		return ReminderOneDay
	}
}

func scanText(src any) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", src)
	}
}
