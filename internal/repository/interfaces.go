package repository

import (
	"context"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
)

// Lookups of a missing row return sql.ErrNoRows. Services translate it.

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	// List returns every client ordered by name
	List(ctx context.Context) ([]domain.Client, error)

	GetByID(ctx context.Context, id int64) (*domain.Client, error)

	// Create inserts a client and returns its new id
	Create(ctx context.Context, client *domain.Client) (int64, error)

	Update(ctx context.Context, client *domain.Client) error

	// Delete fails with a foreign key violation while rentals reference the client
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
}

// EquipmentRepository defines the interface for equipment data operations
type EquipmentRepository interface {
	List(ctx context.Context) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Create(ctx context.Context, equipment *domain.Equipment) (int64, error)
	Update(ctx context.Context, equipment *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// RentalRepository defines the interface for rental data operations
type RentalRepository interface {
	// Create inserts the header and its items in one transaction
	Create(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) (int64, error)

	// Update overwrites the header and replaces the full item set in one transaction
	Update(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) error

	GetByID(ctx context.Context, id int64) (*domain.Rental, error)

	// GetItems returns the items of a rental in insertion order
	GetItems(ctx context.Context, rentalID int64) ([]domain.RentalDetailItem, error)

	// List returns every rental, newest first, with client name and item summary
	List(ctx context.Context) ([]domain.RentalListItem, error)

	// CancelQuotes moves the given rentals from quote to canceled
	CancelQuotes(ctx context.Context, ids []int64, at time.Time) error

	Count(ctx context.Context) (int64, error)
}

// SettingsRepository defines the interface for the app_settings key/value store
type SettingsRepository interface {
	GetValues(ctx context.Context, keys []string) (map[string]string, error)
	Upsert(ctx context.Context, settings []domain.Setting) error
}
