package domain

import "time"

// Client represents a rental customer
type Client struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     *string   `json:"phone" db:"phone"`
	Document  *string   `json:"document" db:"document"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ClientInput struct {
	Name     string `json:"name" validate:"notblank,max=160"`
	Phone    string `json:"phone" validate:"max=40"`
	Document string `json:"document" validate:"max=40"`
	Notes    string `json:"notes"`
}
