package handler

import (
	"net/http"
	"strings"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/validation"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/response"
)

type EquipmentHandler struct {
	equipments EquipmentService
	settings   SettingsService
	validator  *validation.Validator
}

func NewEquipmentHandler(equipments EquipmentService, settings SettingsService, validator *validation.Validator) *EquipmentHandler {
	return &EquipmentHandler{equipments: equipments, settings: settings, validator: validator}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	equipments, err := h.equipments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if equipments == nil {
		equipments = []domain.Equipment{}
	}
	response.Success(w, equipments)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid equipment id", err)
		return
	}

	equipment, err := h.equipments.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, equipment)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.EquipmentInput
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&input); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.equipments.Create(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Created(w, idResponse{ID: id})
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid equipment id", err)
		return
	}

	var input domain.EquipmentInput
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&input); err != nil {
		writeError(w, err)
		return
	}

	if err := h.equipments.Update(r.Context(), id, &input); err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, idResponse{ID: id})
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid equipment id", err)
		return
	}

	if err := h.equipments.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	response.NoContent(w)
}

// SuggestedRate prices the equipment with the configured factors.
// The optional mode query parameter overrides the equipment's own mode.
func (h *EquipmentHandler) SuggestedRate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid equipment id", err)
		return
	}

	mode := domain.RentalMode(strings.TrimSpace(r.URL.Query().Get("mode")))
	if mode != "" && domain.NormalizeRentalMode(string(mode)) != mode {
		writeError(w, customError.WrapValidation("mode: must be one of daily, weekly, fortnightly, monthly"))
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	rate, err := h.equipments.SuggestedRate(r.Context(), id, mode, settings.PricingRules)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, rate)
}
