package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/internal/sales/domain"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/money"
)

// SaleItemInput is one requested line of a sale.
type SaleItemInput struct {
	ProductID int64
	Quantity  int
}

// RecordSaleCommand represents the command to record a completed purchase
type RecordSaleCommand struct {
	UserID *string
	Items  []SaleItemInput
}

// RecordSaleHandler handles the compound record-sale command
type RecordSaleHandler struct {
	products catalogdomain.ProductRepository
	sales    domain.SaleRepository
}

// NewRecordSaleHandler creates a new record sale handler
func NewRecordSaleHandler(products catalogdomain.ProductRepository, sales domain.SaleRepository) *RecordSaleHandler {
	return &RecordSaleHandler{products: products, sales: sales}
}

// Handle executes the record sale command.
//
// Stock is validated for every item against one snapshot of the catalog
// before any stock is decremented, so a failure on any line leaves the
// catalog untouched. The snapshot is not re-read between items; two
// concurrent calls can both pass the check and oversell. If the catalog
// write succeeds and the ledger append then fails, the decrement stays
// committed (known residual risk, no rollback).
func (h *RecordSaleHandler) Handle(ctx context.Context, cmd RecordSaleCommand) (*domain.Sale, error) {
	if len(cmd.Items) == 0 {
		return nil, apperrors.Validation("items must be a non-empty list")
	}
	for _, item := range cmd.Items {
		if item.ProductID <= 0 {
			return nil, apperrors.Validation("every item must carry a productId")
		}
		if item.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be a positive integer for product %d", item.ProductID)
		}
	}

	products, err := h.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]int, len(products))
	for i := range products {
		byID[products[i].ID] = i
	}

	// Resolve and check every line before mutating anything. Quantities are
	// accumulated per product so duplicate lines cannot drive stock negative.
	resolved := make([]*catalogdomain.Product, 0, len(cmd.Items))
	requested := make(map[int64]int, len(cmd.Items))
	for _, item := range cmd.Items {
		idx, ok := byID[item.ProductID]
		if !ok || !products[idx].Active {
			return nil, apperrors.NotFound("product %d not found or inactive", item.ProductID)
		}

		p := &products[idx]
		requested[p.ID] += item.Quantity
		if p.Stock < requested[p.ID] {
			return nil, &apperrors.ConflictError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   requested[p.ID],
			}
		}
		resolved = append(resolved, p)
	}

	// Snapshot the lines, then apply every decrement.
	items := make([]domain.SaleItem, 0, len(cmd.Items))
	subtotals := make([]float64, 0, len(cmd.Items))
	for i, item := range cmd.Items {
		p := resolved[i]
		subtotal := money.Subtotal(p.Price, item.Quantity)
		items = append(items, domain.SaleItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
			Subtotal:    subtotal,
		})
		subtotals = append(subtotals, subtotal)
	}

	for i, item := range cmd.Items {
		resolved[i].Stock -= item.Quantity
	}

	if err := h.products.ReplaceAll(ctx, products); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ID:        uuid.New().String(),
		UserID:    cmd.UserID,
		Timestamp: time.Now().UTC(),
		Items:     items,
		Total:     money.Sum(subtotals...),
	}

	if err := h.sales.Append(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}
