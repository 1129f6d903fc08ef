package query

import (
	"context"

	"github.com/tiendita/ventas/internal/catalog/domain"
)

// ListProductsQuery represents the query to list active products
type ListProductsQuery struct{}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query. Soft-deleted products are
// excluded.
func (h *ListProductsHandler) Handle(ctx context.Context, _ ListProductsQuery) ([]domain.Product, error) {
	return h.repo.FindActive(ctx)
}
