package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRentals map[int64]*domain.RentalDetails

func (f fakeRentals) GetByID(_ context.Context, id int64) (*domain.RentalDetails, error) {
	if details, ok := f[id]; ok {
		return details, nil
	}
	return nil, customError.WrapRentalNotFound(id)
}

type fakeClients map[int64]*domain.Client

func (f fakeClients) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	if client, ok := f[id]; ok {
		return client, nil
	}
	return nil, customError.WrapClientNotFound(id)
}

type fakeEquipments map[int64]*domain.Equipment

func (f fakeEquipments) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	if equipment, ok := f[id]; ok {
		return equipment, nil
	}
	return nil, customError.WrapEquipmentNotFound(id)
}

type fakeSettings struct {
	settings domain.AppSettings
	err      error
}

func (f fakeSettings) Get(context.Context) (*domain.AppSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.settings, nil
}

func documentFixture(status domain.RentalStatus, mode domain.DeliveryMode) *DocumentService {
	rental := &domain.RentalDetails{
		Rental: domain.Rental{
			ID:              21,
			ClientID:        1,
			StartDate:       "16/03/2026",
			StartTime:       "08:00",
			EndDate:         "18/03/2026",
			EndTime:         "18:00",
			DeliveryMode:    mode,
			FreightValue:    decimal.NewFromInt(40),
			Currency:        domain.CurrencyBRL,
			Subtotal:        decimal.RequireFromString("1250.5"),
			Total:           decimal.RequireFromString("1290.5"),
			Status:          status,
			QuoteValidUntil: strPtr("20/03/2026"),
		},
		Items: []domain.RentalDetailItem{
			{ID: 1, EquipmentID: 5, EquipmentName: "Betoneira 400L", EquipmentNameSnapshot: "Betoneira", Quantity: 1, UnitPrice: decimal.RequireFromString("1200.5"), LineTotal: decimal.RequireFromString("1200.5")},
			{ID: 2, EquipmentID: 6, EquipmentName: "Andaime", Quantity: 2, UnitPrice: decimal.NewFromInt(25), LineTotal: decimal.NewFromInt(50)},
		},
	}
	if mode == domain.DeliveryModeDelivery {
		rental.DeliveryAddress = strPtr("Rua das Flores, 100")
	}

	settings := domain.DefaultSettings(domain.CurrencyBRL)
	settings.CompanyName = "Locadora Central"
	settings.CompanyDocument = "12.345.678/0001-90"

	return NewDocumentService(
		fakeRentals{21: rental},
		fakeClients{1: {ID: 1, Name: "João Silva", Phone: strPtr("11 99999-0000")}},
		fakeEquipments{
			5: {ID: 5, EquipmentValue: decimal.NewFromInt(3500)},
			6: {ID: 6, EquipmentValue: decimal.NewFromInt(800)},
		},
		fakeSettings{settings: settings},
		fixedNow,
	)
}

func TestDocumentService_BuildQuote(t *testing.T) {
	doc, err := documentFixture(domain.RentalStatusQuote, domain.DeliveryModeDelivery).Build(context.Background(), 21)

	require.NoError(t, err)
	assert.Equal(t, "orcamento_Joao_Silva_15-03-2026", doc.FileName)
	assert.Equal(t, domain.DocumentTypeQuote, doc.Type)
	assert.True(t, doc.IsQuote)
	assert.Equal(t, "20/03/2026", doc.QuoteValidUntil)
	assert.Equal(t, "Entrega: Rua das Flores, 100", doc.Delivery)
	assert.Equal(t, "16/03/2026 08:00 - 18/03/2026 18:00", doc.Period)
	assert.Equal(t, "Locadora Central", doc.Company.Name)
	assert.Equal(t, "João Silva", doc.Client.Name)
	assert.Equal(t, "11 99999-0000", doc.Client.Phone)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Betoneira 400L", doc.Items[0].EquipmentName)
	assert.True(t, doc.Items[0].EquipmentValue.Equal(decimal.NewFromInt(3500)))
	assert.True(t, doc.Items[1].EquipmentValue.Equal(decimal.NewFromInt(800)))
	assert.Contains(t, doc.TotalText, "R$")
	assert.Contains(t, doc.TotalText, "1.290,50")
}

func TestDocumentService_BuildRental(t *testing.T) {
	doc, err := documentFixture(domain.RentalStatusInProgress, domain.DeliveryModePickup).Build(context.Background(), 21)

	require.NoError(t, err)
	assert.Equal(t, "locacao_Joao_Silva_15-03-2026", doc.FileName)
	assert.Equal(t, domain.DocumentTypeRental, doc.Type)
	assert.False(t, doc.IsQuote)
	assert.Empty(t, doc.QuoteValidUntil)
	assert.Equal(t, "Retirada", doc.Delivery)
}

func TestDocumentService_BuildErrors(t *testing.T) {
	service := documentFixture(domain.RentalStatusQuote, domain.DeliveryModePickup)

	doc, err := service.Build(context.Background(), 99)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, customError.ErrRentalNotFound)

	service.equipments = fakeEquipments{5: {ID: 5}}
	doc, err = service.Build(context.Background(), 21)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, customError.ErrEquipmentNotFound)

	service.settings = fakeSettings{err: customError.WrapDatabaseError(sql.ErrConnDone)}
	_, err = service.Build(context.Background(), 21)
	assert.True(t, errors.Is(err, sql.ErrConnDone))
}

func TestDocumentFileName(t *testing.T) {
	today := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		client   string
		status   domain.RentalStatus
		expected string
	}{
		{name: "accents stripped", client: "João Silva", status: domain.RentalStatusQuote, expected: "orcamento_Joao_Silva_05-01-2026"},
		{name: "symbols collapsed", client: "  Construtora & Filhos / Ltda. ", status: domain.RentalStatusCompleted, expected: "locacao_Construtora_Filhos_Ltda_05-01-2026"},
		{name: "empty name", client: "???", status: domain.RentalStatusCanceled, expected: "locacao_cliente_05-01-2026"},
		{name: "hyphen kept", client: "Ana-Clara Ção", status: domain.RentalStatusInProgress, expected: "locacao_Ana-Clara_Cao_05-01-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DocumentFileName(tt.client, tt.status, today))
		})
	}
}

func TestMoneyFormatter(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")

	assert.Contains(t, moneyFormatter(domain.CurrencyBRL)(amount), "R$ 1.234,50")
	assert.Contains(t, moneyFormatter(domain.CurrencyUSD)(amount), "$1,234.50")
	assert.Contains(t, moneyFormatter(domain.CurrencyEUR)(amount), "€")
}
