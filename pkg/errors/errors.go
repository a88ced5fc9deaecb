package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrRentalNotFound    = errors.New("rental not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrClientInUse       = errors.New("client is referenced by a rental")
	ErrEquipmentInUse    = errors.New("equipment is referenced by a rental item")
	ErrMissingInsertID   = errors.New("insert did not return an identifier")
	ErrValidation        = errors.New("validation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeRentalNotFound    = "RENTAL_NOT_FOUND"
	ErrCodeClientNotFound    = "CLIENT_NOT_FOUND"
	ErrCodeEquipmentNotFound = "EQUIPMENT_NOT_FOUND"
	ErrCodeClientInUse       = "CLIENT_IN_USE"
	ErrCodeEquipmentInUse    = "EQUIPMENT_IN_USE"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapRentalNotFound(rentalID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeRentalNotFound,
		fmt.Sprintf("Rental with ID %d not found", rentalID),
		ErrRentalNotFound,
	)
}

func WrapClientNotFound(clientID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %d not found", clientID),
		ErrClientNotFound,
	)
}

func WrapEquipmentNotFound(equipmentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeEquipmentNotFound,
		fmt.Sprintf("Equipment with ID %d not found", equipmentID),
		ErrEquipmentNotFound,
	)
}

func WrapClientInUse(clientID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeClientInUse,
		fmt.Sprintf("Client with ID %d has rentals and cannot be deleted", clientID),
		ErrClientInUse,
	)
}

func WrapEquipmentInUse(equipmentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeEquipmentInUse,
		fmt.Sprintf("Equipment with ID %d is used by rentals and cannot be deleted", equipmentID),
		ErrEquipmentInUse,
	)
}

// WrapValidation joins field messages into a single validation error.
func WrapValidation(messages ...string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		strings.Join(messages, "; "),
		ErrValidation,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// Code returns the business code carried by err, or an empty string.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
