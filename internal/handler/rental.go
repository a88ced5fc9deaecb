package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/validation"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/response"
)

type RentalHandler struct {
	rentals    RentalService
	equipments EquipmentService
	settings   SettingsService
	documents  DocumentService
	validator  *validation.Validator
}

func NewRentalHandler(rentals RentalService, equipments EquipmentService, settings SettingsService, documents DocumentService, validator *validation.Validator) *RentalHandler {
	return &RentalHandler{
		rentals:    rentals,
		equipments: equipments,
		settings:   settings,
		documents:  documents,
		validator:  validator,
	}
}

// List returns every rental. Quotes past their validity come back canceled
// with quote_expired set.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentals.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rentals == nil {
		rentals = []domain.RentalListItem{}
	}
	response.Success(w, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid rental id", err)
		return
	}

	details, err := h.rentals.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, details)
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.RentalInput
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.prepare(r.Context(), &input); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.rentals.Create(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Created(w, idResponse{ID: id})
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid rental id", err)
		return
	}

	var input domain.RentalInput
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.prepare(r.Context(), &input); err != nil {
		writeError(w, err)
		return
	}

	if err := h.rentals.Update(r.Context(), id, &input); err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, idResponse{ID: id})
}

// Document returns the data of the printable quote or rental contract.
func (h *RentalHandler) Document(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid rental id", err)
		return
	}

	doc, err := h.documents.Build(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, doc)
}

// prepare fills the defaults a form leaves out and validates the result:
// the configured currency when none is given, item names from the catalog
// and the stock of every referenced equipment.
func (h *RentalHandler) prepare(ctx context.Context, input *domain.RentalInput) error {
	if strings.TrimSpace(string(input.Currency)) == "" {
		currency, err := h.settings.DefaultCurrency(ctx)
		if err != nil {
			return err
		}
		input.Currency = currency
	}

	catalog := make(map[int64]*domain.Equipment)
	stock := make(map[int64]int)
	for i := range input.Items {
		item := &input.Items[i]
		if item.EquipmentID <= 0 {
			continue
		}

		equipment, ok := catalog[item.EquipmentID]
		if !ok {
			found, err := h.equipments.GetByID(ctx, item.EquipmentID)
			if errors.Is(err, customError.ErrEquipmentNotFound) {
				return customError.WrapValidation(fmt.Sprintf("items[%d].equipment_id: equipment %d does not exist", i, item.EquipmentID))
			}
			if err != nil {
				return err
			}
			equipment = found
			catalog[item.EquipmentID] = equipment
			stock[item.EquipmentID] = equipment.Stock
		}

		if strings.TrimSpace(item.EquipmentName) == "" {
			item.EquipmentName = equipment.Name
		}
	}

	return h.validator.Rental(input, stock)
}
