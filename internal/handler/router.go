package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/segyhp/rental-engine/internal/metrics"
	"github.com/segyhp/rental-engine/pkg/response"
	"go.uber.org/zap"
)

type Handlers struct {
	Health     *HealthHandler
	Clients    *ClientHandler
	Equipments *EquipmentHandler
	Rentals    *RentalHandler
	Settings   *SettingsHandler
	Dashboard  *DashboardHandler
}

// NewRouter wires every route. CORS wraps the router so preflight requests
// are answered before route matching.
func NewRouter(h Handlers, logger *zap.Logger, m *metrics.Metrics) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, ObserveMiddleware(logger, m))

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clients", h.Clients.List).Methods(http.MethodGet)
	api.HandleFunc("/clients", h.Clients.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id:[0-9]+}", h.Clients.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}", h.Clients.Update).Methods(http.MethodPut)
	api.HandleFunc("/clients/{id:[0-9]+}", h.Clients.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/equipments", h.Equipments.List).Methods(http.MethodGet)
	api.HandleFunc("/equipments", h.Equipments.Create).Methods(http.MethodPost)
	api.HandleFunc("/equipments/{id:[0-9]+}", h.Equipments.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipments/{id:[0-9]+}", h.Equipments.Update).Methods(http.MethodPut)
	api.HandleFunc("/equipments/{id:[0-9]+}", h.Equipments.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/equipments/{id:[0-9]+}/suggested-rate", h.Equipments.SuggestedRate).Methods(http.MethodGet)

	api.HandleFunc("/rentals", h.Rentals.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals", h.Rentals.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.Update).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{id:[0-9]+}/document", h.Rentals.Document).Methods(http.MethodGet)

	api.HandleFunc("/settings", h.Settings.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.Settings.Save).Methods(http.MethodPut)

	api.HandleFunc("/dashboard", h.Dashboard.Summary).Methods(http.MethodGet)

	return response.CORSMiddleware(router)
}
