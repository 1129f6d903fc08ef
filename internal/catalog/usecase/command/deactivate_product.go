package command

import (
	"context"

	"github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/pkg/apperrors"
)

// DeactivateProductCommand represents the command to soft-delete a product
type DeactivateProductCommand struct {
	ID int64
}

// DeactivateProductHandler handles product deactivation command
type DeactivateProductHandler struct {
	repo domain.ProductRepository
}

// NewDeactivateProductHandler creates a new deactivate product handler
func NewDeactivateProductHandler(repo domain.ProductRepository) *DeactivateProductHandler {
	return &DeactivateProductHandler{repo: repo}
}

// Handle executes the deactivate product command. The row is kept so past
// sales still resolve; deactivating twice is not an error.
func (h *DeactivateProductHandler) Handle(ctx context.Context, cmd DeactivateProductCommand) error {
	if cmd.ID == 0 {
		return apperrors.Validation("product id is required")
	}

	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	product.Active = false
	return h.repo.Update(ctx, product)
}
