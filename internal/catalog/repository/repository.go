package repository

import (
	"context"

	"github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/storage"
)

// Collection is the document name the product catalog persists under.
const Collection = "products"

// FileProductRepository persists products as a single JSON document.
type FileProductRepository struct {
	store storage.Store
}

func NewFileProductRepository(store storage.Store) *FileProductRepository {
	return &FileProductRepository{store: store}
}

func (r *FileProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.store.Load(ctx, Collection, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *FileProductRepository) FindActive(ctx context.Context) ([]domain.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *FileProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product %d not found", id)
}

// Create assigns max existing id + 1 (1 for an empty catalog) and appends.
// Ids are never reused, even after deactivation, because rows are never
// removed.
func (r *FileProductRepository) Create(ctx context.Context, product *domain.Product) error {
	products, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	var maxID int64
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	product.ID = maxID + 1

	products = append(products, *product)
	return r.store.Save(ctx, Collection, products)
}

func (r *FileProductRepository) Update(ctx context.Context, product *domain.Product) error {
	products, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			return r.store.Save(ctx, Collection, products)
		}
	}
	return apperrors.NotFound("product %d not found", product.ID)
}

func (r *FileProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	return r.store.Save(ctx, Collection, products)
}

func (r *FileProductRepository) Count(ctx context.Context) (int64, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(products)), nil
}
