package handler

import (
	"net/http"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/validation"
	"github.com/segyhp/rental-engine/pkg/response"
)

type SettingsHandler struct {
	settings  SettingsService
	validator *validation.Validator
}

func NewSettingsHandler(settings SettingsService, validator *validation.Validator) *SettingsHandler {
	return &SettingsHandler{settings: settings, validator: validator}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, settings)
}

// Save replaces every setting with the request body.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input domain.AppSettings
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&input); err != nil {
		writeError(w, err)
		return
	}

	if err := h.settings.Save(r.Context(), &input); err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, input)
}
