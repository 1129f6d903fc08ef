package command

import (
	"context"
	"strings"

	"github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/money"
)

// UpdateProductCommand represents the command to update a product. Nil
// fields are left unchanged, so a client can set stock to exactly 0 without
// touching anything else.
type UpdateProductCommand struct {
	ID     int64
	Name   *string
	Price  *float64
	Stock  *int
	Active *bool
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperrors.Validation("product id is required")
	}

	// Lookup ignores the active flag: inactive products stay editable,
	// which also leaves reactivation through {active: true} open.
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, apperrors.Validation("product name cannot be empty")
		}
		product.Name = name
	}

	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, apperrors.Validation("price cannot be negative")
		}
		product.Price = money.Round(*cmd.Price)
	}

	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, apperrors.Validation("stock cannot be negative")
		}
		product.Stock = *cmd.Stock
	}

	if cmd.Active != nil {
		product.Active = *cmd.Active
	}

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
