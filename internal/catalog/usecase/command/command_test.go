package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/internal/catalog/repository"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/storage"
)

func newRepo(t *testing.T) domain.ProductRepository {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return repository.NewFileProductRepository(store)
}

func ptr[T any](v T) *T { return &v }

func TestCreateProductRoundsPriceAndDefaultsActive(t *testing.T) {
	handler := NewCreateProductHandler(newRepo(t))

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Name:  "  Widget  ",
		Price: 9.999,
		Stock: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, 10.0, product.Price)
	assert.Equal(t, 5, product.Stock)
	assert.True(t, product.Active)
}

func TestCreateProductValidation(t *testing.T) {
	handler := NewCreateProductHandler(newRepo(t))
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"empty name", CreateProductCommand{Name: "   ", Price: 1, Stock: 1}},
		{"negative price", CreateProductCommand{Name: "Widget", Price: -1, Stock: 1}},
		{"negative stock", CreateProductCommand{Name: "Widget", Price: 1, Stock: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tc.cmd)

			var validation *apperrors.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestUpdateProductPatchesOnlySuppliedFields(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := NewCreateProductHandler(repo).Handle(ctx, CreateProductCommand{
		Name:  "Widget",
		Price: 9.99,
		Stock: 5,
	})
	require.NoError(t, err)

	updated, err := NewUpdateProductHandler(repo).Handle(ctx, UpdateProductCommand{
		ID:    created.ID,
		Stock: ptr(0),
	})

	require.NoError(t, err)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, 0, updated.Stock)
	assert.True(t, updated.Active)
}

func TestUpdateProductReroundsPrice(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := NewCreateProductHandler(repo).Handle(ctx, CreateProductCommand{Name: "Widget", Price: 5, Stock: 1})
	require.NoError(t, err)

	updated, err := NewUpdateProductHandler(repo).Handle(ctx, UpdateProductCommand{
		ID:    created.ID,
		Price: ptr(2.675),
	})

	require.NoError(t, err)
	assert.Equal(t, 2.68, updated.Price)
}

func TestUpdateProductCanReactivate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := NewCreateProductHandler(repo).Handle(ctx, CreateProductCommand{Name: "Widget", Price: 1, Stock: 1})
	require.NoError(t, err)
	require.NoError(t, NewDeactivateProductHandler(repo).Handle(ctx, DeactivateProductCommand{ID: created.ID}))

	updated, err := NewUpdateProductHandler(repo).Handle(ctx, UpdateProductCommand{
		ID:     created.ID,
		Active: ptr(true),
	})

	require.NoError(t, err)
	assert.True(t, updated.Active)
}

func TestUpdateProductRequiresID(t *testing.T) {
	_, err := NewUpdateProductHandler(newRepo(t)).Handle(context.Background(), UpdateProductCommand{})

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUpdateProductMissingIsNotFound(t *testing.T) {
	_, err := NewUpdateProductHandler(newRepo(t)).Handle(context.Background(), UpdateProductCommand{ID: 42})

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeactivateProductIsIdempotent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := NewCreateProductHandler(repo).Handle(ctx, CreateProductCommand{Name: "Widget", Price: 1, Stock: 1})
	require.NoError(t, err)

	handler := NewDeactivateProductHandler(repo)
	require.NoError(t, handler.Handle(ctx, DeactivateProductCommand{ID: created.ID}))
	require.NoError(t, handler.Handle(ctx, DeactivateProductCommand{ID: created.ID}))

	product, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, product.Active)
}

func TestDeactivateProductMissingIsNotFound(t *testing.T) {
	err := NewDeactivateProductHandler(newRepo(t)).Handle(context.Background(), DeactivateProductCommand{ID: 42})

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
