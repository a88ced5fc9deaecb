package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalStatus_Scan(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		expected RentalStatus
	}{
		{name: "quote", src: "quote", expected: RentalStatusQuote},
		{name: "canceled bytes", src: []byte("canceled"), expected: RentalStatusCanceled},
		{name: "legacy closed", src: "closed", expected: RentalStatusCompleted},
		{name: "legacy draft", src: "draft", expected: RentalStatusQuote},
		{name: "unknown", src: "archived", expected: RentalStatusInProgress},
		{name: "null", src: nil, expected: RentalStatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var status RentalStatus
			require.NoError(t, status.Scan(tt.src))
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestEnumScan_Defaults(t *testing.T) {
	var currency Currency
	require.NoError(t, currency.Scan("GBP"))
	assert.Equal(t, CurrencyBRL, currency)
	require.NoError(t, currency.Scan("EUR"))
	assert.Equal(t, CurrencyEUR, currency)

	var delivery DeliveryMode
	require.NoError(t, delivery.Scan("drone"))
	assert.Equal(t, DeliveryModePickup, delivery)

	var mode RentalMode
	require.NoError(t, mode.Scan([]byte("monthly")))
	assert.Equal(t, RentalModeMonthly, mode)
	require.NoError(t, mode.Scan("yearly"))
	assert.Equal(t, RentalModeDaily, mode)

	assert.Equal(t, ReminderOneDay, NormalizeReminderOption("2d"))
	assert.Equal(t, ReminderNone, NormalizeReminderOption("none"))

	assert.Error(t, currency.Scan(42))
}

func TestRentalInput_Totals(t *testing.T) {
	items := []RentalItemInput{
		{EquipmentID: 5, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		{EquipmentID: 6, Quantity: 3, UnitPrice: decimal.RequireFromString("10.25")},
	}

	t.Run("pickup ignores freight", func(t *testing.T) {
		in := RentalInput{DeliveryMode: DeliveryModePickup, FreightValue: decimal.NewFromInt(999), Items: items[:1]}

		totals := in.Totals()

		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(100)))
		assert.True(t, totals.Freight.IsZero())
		assert.True(t, totals.Total.Equal(decimal.NewFromInt(100)))
	})

	t.Run("delivery adds freight", func(t *testing.T) {
		in := RentalInput{DeliveryMode: DeliveryModeDelivery, FreightValue: decimal.NewFromInt(30), Items: items}

		totals := in.Totals()

		assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("130.75")))
		assert.True(t, totals.Freight.Equal(decimal.NewFromInt(30)))
		assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Freight)))
	})

	t.Run("unknown mode treated as pickup", func(t *testing.T) {
		in := RentalInput{DeliveryMode: "teleport", FreightValue: decimal.NewFromInt(30), Items: items[:1]}

		assert.True(t, in.Totals().Freight.IsZero())
	})
}

func TestAppSettings_Values(t *testing.T) {
	settings := DefaultSettings("XYZ")
	settings.CompanyName = "Locadora Central"

	values := settings.Values()

	assert.Len(t, values, len(SettingKeys))
	assert.Equal(t, "BRL", values[SettingCurrency])
	assert.Equal(t, "6", values[SettingWeeklyFactor])
	assert.Equal(t, "24", values[SettingMonthlyFactor])
	assert.Equal(t, "1d", values[SettingRentalStartReminder])
	assert.Equal(t, "1h", values[SettingRentalEndReminder])
	assert.Equal(t, "Locadora Central", values[SettingCompanyName])
}
