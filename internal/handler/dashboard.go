package handler

import (
	"context"
	"net/http"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/pkg/response"
	"golang.org/x/sync/errgroup"
)

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type DashboardHandler struct {
	clients    counter
	equipments counter
	rentals    counter
}

func NewDashboardHandler(clients, equipments, rentals counter) *DashboardHandler {
	return &DashboardHandler{clients: clients, equipments: equipments, rentals: rentals}
}

// Summary counts clients, equipment and rentals concurrently.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var summary domain.DashboardSummary

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		summary.Clients, err = h.clients.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Equipments, err = h.equipments.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Rentals, err = h.rentals.Count(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, summary)
}
