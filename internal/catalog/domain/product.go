package domain

import "context"

// Product represents a catalog entry. Products are never physically removed;
// a soft delete flips Active to false so historical sales keep a valid
// reference.
type Product struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
	Active bool    `json:"active"`
}

// ProductRepository defines the contract for product persistence. Every call
// reads or rewrites the whole product collection.
type ProductRepository interface {
	// FindAll returns every product regardless of active state.
	FindAll(ctx context.Context) ([]Product, error)
	// FindActive returns products with Active == true.
	FindActive(ctx context.Context) ([]Product, error)
	// FindByID returns a product by id regardless of active state, or a
	// NotFoundError.
	FindByID(ctx context.Context, id int64) (*Product, error)
	// Create assigns the next sequential id and persists the product.
	Create(ctx context.Context, product *Product) error
	// Update rewrites an existing product in place, or returns a
	// NotFoundError.
	Update(ctx context.Context, product *Product) error
	// ReplaceAll overwrites the full collection in one write. Used by sale
	// recording to commit all stock decrements together.
	ReplaceAll(ctx context.Context, products []Product) error
	// Count returns the number of products, active or not.
	Count(ctx context.Context) (int64, error)
}
