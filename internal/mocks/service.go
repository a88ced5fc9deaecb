package mocks

import (
	"context"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) Create(ctx context.Context, input *domain.ClientInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, id int64, input *domain.ClientInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockClientService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) List(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentService) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentService) Create(ctx context.Context, input *domain.EquipmentInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEquipmentService) Update(ctx context.Context, id int64, input *domain.EquipmentInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockEquipmentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEquipmentService) SuggestedRate(ctx context.Context, id int64, mode domain.RentalMode, rules domain.PricingRules) (*domain.SuggestedRate, error) {
	args := m.Called(ctx, id, mode, rules)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SuggestedRate), args.Error(1)
}

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) List(ctx context.Context) ([]domain.RentalListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalListItem), args.Error(1)
}

func (m *MockRentalService) GetByID(ctx context.Context, id int64) (*domain.RentalDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalDetails), args.Error(1)
}

func (m *MockRentalService) Create(ctx context.Context, input *domain.RentalInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRentalService) Update(ctx context.Context, id int64, input *domain.RentalInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockRentalService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (*domain.AppSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(ctx context.Context, input *domain.AppSettings) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockSettingsService) DefaultCurrency(ctx context.Context) (domain.Currency, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Currency), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Build(ctx context.Context, rentalID int64) (*domain.RentalDocument, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalDocument), args.Error(1)
}
