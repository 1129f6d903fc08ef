package query

import (
	"context"

	"github.com/tiendita/ventas/internal/sales/domain"
)

// ListSalesQuery represents the query to list the full ledger
type ListSalesQuery struct{}

// ListSalesHandler handles list sales query
type ListSalesHandler struct {
	repo domain.SaleRepository
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.SaleRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle executes the list sales query. Insertion order is preserved, which
// is chronological order since the ledger is append-only.
func (h *ListSalesHandler) Handle(ctx context.Context, _ ListSalesQuery) ([]domain.Sale, error) {
	return h.repo.FindAll(ctx)
}
