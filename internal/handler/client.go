package handler

import (
	"net/http"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/validation"
	"github.com/segyhp/rental-engine/pkg/response"
)

type ClientHandler struct {
	clients   ClientService
	validator *validation.Validator
}

func NewClientHandler(clients ClientService, validator *validation.Validator) *ClientHandler {
	return &ClientHandler{clients: clients, validator: validator}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	response.Success(w, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid client id", err)
		return
	}

	client, err := h.clients.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ClientInput
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&input); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.clients.Create(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Created(w, idResponse{ID: id})
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid client id", err)
		return
	}

	var input domain.ClientInput
	if err := decodeJSON(r, &input); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&input); err != nil {
		writeError(w, err)
		return
	}

	if err := h.clients.Update(r.Context(), id, &input); err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, idResponse{ID: id})
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid client id", err)
		return
	}

	if err := h.clients.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	response.NoContent(w)
}
