package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/handler"
	"github.com/segyhp/rental-engine/internal/metrics"
	"github.com/segyhp/rental-engine/internal/mocks"
	"github.com/segyhp/rental-engine/internal/validation"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testServer struct {
	router     http.Handler
	metrics    *metrics.Metrics
	db         error
	clients    *mocks.MockClientService
	equipments *mocks.MockEquipmentService
	rentals    *mocks.MockRentalService
	settings   *mocks.MockSettingsService
	documents  *mocks.MockDocumentService
}

func newTestServer() *testServer {
	s := &testServer{
		metrics:    metrics.New(),
		clients:    &mocks.MockClientService{},
		equipments: &mocks.MockEquipmentService{},
		rentals:    &mocks.MockRentalService{},
		settings:   &mocks.MockSettingsService{},
		documents:  &mocks.MockDocumentService{},
	}

	today := func() time.Time { return time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC) }
	v := validation.New(today)

	s.router = handler.NewRouter(handler.Handlers{
		Health:     handler.NewHealthHandler(pingFunc(func(context.Context) error { return s.db }), nil, time.Second),
		Clients:    handler.NewClientHandler(s.clients, v),
		Equipments: handler.NewEquipmentHandler(s.equipments, s.settings, v),
		Rentals:    handler.NewRentalHandler(s.rentals, s.equipments, s.settings, s.documents, v),
		Settings:   handler.NewSettingsHandler(s.settings, v),
		Dashboard:  handler.NewDashboardHandler(s.clients, s.equipments, s.rentals),
	}, zap.NewNop(), s.metrics)

	return s
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		reader.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&reader).Encode(b))
	}

	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestClientHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		setupMock      func(s *testServer)
		expectedStatus int
		expectedCode   string
		checkResponse  func(t *testing.T, env envelope)
	}{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/api/v1/clients",
			body:   domain.ClientInput{Name: "Maria", Phone: "11 99999-0000"},
			setupMock: func(s *testServer) {
				s.clients.On("Create", mock.Anything, &domain.ClientInput{Name: "Maria", Phone: "11 99999-0000"}).Return(int64(4), nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, env envelope) {
				assert.JSONEq(t, `{"id":4}`, string(env.Data))
			},
		},
		{
			name:           "create with blank name",
			method:         http.MethodPost,
			path:           "/api/v1/clients",
			body:           domain.ClientInput{Name: "  "},
			setupMock:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   customError.ErrCodeValidation,
		},
		{
			name:           "create with malformed body",
			method:         http.MethodPost,
			path:           "/api/v1/clients",
			body:           `{"name":`,
			setupMock:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "list empty",
			method: http.MethodGet,
			path:   "/api/v1/clients",
			setupMock: func(s *testServer) {
				s.clients.On("List", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, env envelope) {
				assert.JSONEq(t, `[]`, string(env.Data))
			},
		},
		{
			name:   "get missing",
			method: http.MethodGet,
			path:   "/api/v1/clients/9",
			setupMock: func(s *testServer) {
				s.clients.On("GetByID", mock.Anything, int64(9)).Return(nil, customError.WrapClientNotFound(9))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   customError.ErrCodeClientNotFound,
		},
		{
			name:   "delete with rentals",
			method: http.MethodDelete,
			path:   "/api/v1/clients/3",
			setupMock: func(s *testServer) {
				s.clients.On("Delete", mock.Anything, int64(3)).Return(customError.WrapClientInUse(3))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   customError.ErrCodeClientInUse,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/api/v1/clients/3",
			setupMock: func(s *testServer) {
				s.clients.On("Delete", mock.Anything, int64(3)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "store failure",
			method: http.MethodPut,
			path:   "/api/v1/clients/3",
			body:   domain.ClientInput{Name: "Maria"},
			setupMock: func(s *testServer) {
				s.clients.On("Update", mock.Anything, int64(3), mock.Anything).Return(customError.WrapDatabaseError(errors.New("connection reset")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   customError.ErrCodeDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			tt.setupMock(s)

			w, env := s.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, env.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, env)
			}
			s.clients.AssertExpectations(t)
		})
	}
}

func rentalBody() map[string]any {
	return map[string]any{
		"client_id":     1,
		"start_date":    "16/03/2026",
		"start_time":    "08:00",
		"end_date":      "18/03/2026",
		"end_time":      "18:00",
		"delivery_mode": "pickup",
		"freight_value": "0",
		"status":        "in_progress",
		"items": []map[string]any{
			{"equipment_id": 5, "quantity": 2, "unit_price": "50"},
		},
	}
}

func betoneira(stock int) *domain.Equipment {
	return &domain.Equipment{ID: 5, Name: "Betoneira", RentalMode: domain.RentalModeDaily, DailyRate: decimal.NewFromInt(50), Stock: stock}
}

func TestRentalHandler_Create(t *testing.T) {
	t.Run("fills currency and item names", func(t *testing.T) {
		s := newTestServer()
		s.settings.On("DefaultCurrency", mock.Anything).Return(domain.CurrencyUSD, nil)
		s.equipments.On("GetByID", mock.Anything, int64(5)).Return(betoneira(3), nil).Once()
		s.rentals.On("Create", mock.Anything, mock.MatchedBy(func(in *domain.RentalInput) bool {
			return in.Currency == domain.CurrencyUSD && in.Items[0].EquipmentName == "Betoneira"
		})).Return(int64(10), nil)

		w, env := s.do(t, http.MethodPost, "/api/v1/rentals", rentalBody())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":10}`, string(env.Data))
		s.rentals.AssertExpectations(t)
		s.equipments.AssertExpectations(t)
	})

	t.Run("over stock", func(t *testing.T) {
		s := newTestServer()
		body := rentalBody()
		body["currency"] = "BRL"
		s.equipments.On("GetByID", mock.Anything, int64(5)).Return(betoneira(1), nil)

		w, env := s.do(t, http.MethodPost, "/api/v1/rentals", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, customError.ErrCodeValidation, env.Code)
		assert.Contains(t, env.Message, "in stock")
		s.rentals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		s.settings.AssertNotCalled(t, "DefaultCurrency", mock.Anything)
	})

	t.Run("unknown equipment", func(t *testing.T) {
		s := newTestServer()
		body := rentalBody()
		body["currency"] = "BRL"
		s.equipments.On("GetByID", mock.Anything, int64(5)).Return(nil, customError.WrapEquipmentNotFound(5))

		w, env := s.do(t, http.MethodPost, "/api/v1/rentals", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Message, "items[0].equipment_id")
	})

	t.Run("quote in the past", func(t *testing.T) {
		s := newTestServer()
		body := rentalBody()
		body["currency"] = "BRL"
		body["status"] = "quote"
		body["quote_valid_until"] = "01/03/2026"
		s.equipments.On("GetByID", mock.Anything, int64(5)).Return(betoneira(5), nil)

		w, env := s.do(t, http.MethodPost, "/api/v1/rentals", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Message, "quote_valid_until")
	})
}

func TestRentalHandler_Update(t *testing.T) {
	s := newTestServer()
	body := rentalBody()
	body["currency"] = "EUR"
	s.equipments.On("GetByID", mock.Anything, int64(5)).Return(betoneira(5), nil)
	s.rentals.On("Update", mock.Anything, int64(7), mock.Anything).Return(customError.WrapRentalNotFound(7))

	w, env := s.do(t, http.MethodPut, "/api/v1/rentals/7", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, customError.ErrCodeRentalNotFound, env.Code)
}

func TestRentalHandler_ListAndDocument(t *testing.T) {
	s := newTestServer()
	s.rentals.On("List", mock.Anything).Return([]domain.RentalListItem{
		{Rental: domain.Rental{ID: 2, Status: domain.RentalStatusCanceled}, ClientName: "Maria", QuoteExpired: true},
	}, nil)
	s.documents.On("Build", mock.Anything, int64(2)).Return(&domain.RentalDocument{FileName: "orcamento_Maria_15-03-2026", Type: domain.DocumentTypeQuote}, nil)

	w, env := s.do(t, http.MethodGet, "/api/v1/rentals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rentals []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &rentals))
	require.Len(t, rentals, 1)
	assert.Equal(t, "canceled", rentals[0]["status"])
	assert.Equal(t, true, rentals[0]["quote_expired"])

	w, env = s.do(t, http.MethodGet, "/api/v1/rentals/2/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var doc domain.RentalDocument
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "orcamento_Maria_15-03-2026", doc.FileName)
}

func TestEquipmentHandler_SuggestedRate(t *testing.T) {
	settings := domain.DefaultSettings(domain.CurrencyBRL)
	settings.PricingRules.WeeklyFactor = decimal.NewFromInt(5)

	s := newTestServer()
	s.settings.On("Get", mock.Anything).Return(&settings, nil)
	s.equipments.On("SuggestedRate", mock.Anything, int64(5), domain.RentalModeWeekly, settings.PricingRules).
		Return(&domain.SuggestedRate{EquipmentID: 5, RentalMode: domain.RentalModeWeekly, UnitPrice: decimal.NewFromInt(250)}, nil)

	w, _ := s.do(t, http.MethodGet, "/api/v1/equipments/5/suggested-rate?mode=weekly", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	s.equipments.AssertExpectations(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/equipments/5/suggested-rate?mode=yearly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, customError.ErrCodeValidation, env.Code)
}

func TestSettingsHandler_Save(t *testing.T) {
	valid := domain.DefaultSettings(domain.CurrencyEUR)
	valid.CompanyName = "Locadora Central"

	invalid := domain.DefaultSettings(domain.CurrencyBRL)
	invalid.PricingRules.WeeklyFactor = decimal.Zero

	s := newTestServer()
	s.settings.On("Save", mock.Anything, mock.MatchedBy(func(in *domain.AppSettings) bool {
		return in.CompanyName == "Locadora Central" && in.Currency == domain.CurrencyEUR
	})).Return(nil).Once()

	w, _ := s.do(t, http.MethodPut, "/api/v1/settings", valid)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodPut, "/api/v1/settings", invalid)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "pricing_rules.weekly_factor")

	s.settings.AssertExpectations(t)
}

func TestDashboardHandler(t *testing.T) {
	s := newTestServer()
	s.clients.On("Count", mock.Anything).Return(int64(3), nil)
	s.equipments.On("Count", mock.Anything).Return(int64(8), nil)
	s.rentals.On("Count", mock.Anything).Return(int64(21), nil)

	w, env := s.do(t, http.MethodGet, "/api/v1/dashboard", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clients":3,"equipments":8,"rentals":21}`, string(env.Data))
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer()

	w, env := s.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"redis":"disabled"`)

	s.db = errors.New("connection refused")
	w, env = s.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, string(env.Data), "connection refused")
}

func TestMiddleware(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(handler.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(handler.RequestIDHeader))

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get(handler.RequestIDHeader))

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rental_http_request_duration_seconds_count{method="GET",route="/health",status="200"} 2`)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/rentals", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
