package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/segyhp/rental-engine/internal/domain"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/response"
	"go.uber.org/zap"
)

type ClientService interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, input *domain.ClientInput) (int64, error)
	Update(ctx context.Context, id int64, input *domain.ClientInput) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type EquipmentService interface {
	List(ctx context.Context) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Create(ctx context.Context, input *domain.EquipmentInput) (int64, error)
	Update(ctx context.Context, id int64, input *domain.EquipmentInput) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	SuggestedRate(ctx context.Context, id int64, mode domain.RentalMode, rules domain.PricingRules) (*domain.SuggestedRate, error)
}

type RentalService interface {
	List(ctx context.Context) ([]domain.RentalListItem, error)
	GetByID(ctx context.Context, id int64) (*domain.RentalDetails, error)
	Create(ctx context.Context, input *domain.RentalInput) (int64, error)
	Update(ctx context.Context, id int64, input *domain.RentalInput) error
	Count(ctx context.Context) (int64, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	Save(ctx context.Context, input *domain.AppSettings) error
	DefaultCurrency(ctx context.Context) (domain.Currency, error)
}

type DocumentService interface {
	Build(ctx context.Context, rentalID int64) (*domain.RentalDocument, error)
}

type idResponse struct {
	ID int64 `json:"id"`
}

// writeError maps business error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		zap.L().Error("unhandled error", zap.Error(err))
		response.InternalServerError(w, "Internal server error", nil)
		return
	}

	status := statusFor(be.Code)
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("code", be.Code), zap.Error(be))
	}
	response.ErrorWithCode(w, status, be.Code, be.Message, nil)
}

func statusFor(code string) int {
	switch code {
	case customError.ErrCodeRentalNotFound, customError.ErrCodeClientNotFound, customError.ErrCodeEquipmentNotFound:
		return http.StatusNotFound
	case customError.ErrCodeClientInUse, customError.ErrCodeEquipmentInUse:
		return http.StatusConflict
	case customError.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
