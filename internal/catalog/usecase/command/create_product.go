package command

import (
	"context"
	"strings"

	"github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/money"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name  string
	Price float64
	Stock int
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperrors.Validation("product name is required")
	}
	if cmd.Price < 0 {
		return nil, apperrors.Validation("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, apperrors.Validation("stock cannot be negative")
	}

	product := &domain.Product{
		Name:   name,
		Price:  money.Round(cmd.Price),
		Stock:  cmd.Stock,
		Active: true,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
