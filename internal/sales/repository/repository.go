package repository

import (
	"context"

	"github.com/tiendita/ventas/internal/sales/domain"
	"github.com/tiendita/ventas/pkg/storage"
)

// Collection is the document name the sales ledger persists under.
const Collection = "sales"

// FileSaleRepository persists the sales ledger as a single JSON document.
type FileSaleRepository struct {
	store storage.Store
}

func NewFileSaleRepository(store storage.Store) *FileSaleRepository {
	return &FileSaleRepository{store: store}
}

func (r *FileSaleRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	if err := r.store.Load(ctx, Collection, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// Append adds a sale to the end of the ledger and rewrites the document.
func (r *FileSaleRepository) Append(ctx context.Context, sale *domain.Sale) error {
	sales, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	sales = append(sales, *sale)
	return r.store.Save(ctx, Collection, sales)
}
