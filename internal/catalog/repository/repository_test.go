package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/storage"
)

func newRepo(t *testing.T) *FileProductRepository {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewFileProductRepository(store)
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := &domain.Product{Name: "Milk", Price: 650, Stock: 10, Active: true}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	second := &domain.Product{Name: "Bread", Price: 300, Stock: 15, Active: true}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateNeverReusesIDsAfterDeactivation(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Milk", Active: true}
	require.NoError(t, repo.Create(ctx, p))

	p.Active = false
	require.NoError(t, repo.Update(ctx, p))

	next := &domain.Product{Name: "Bread", Active: true}
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, int64(2), next.ID)
}

func TestFindActiveExcludesDeactivated(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	active := &domain.Product{Name: "Milk", Active: true}
	inactive := &domain.Product{Name: "Bread", Active: true}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	inactive.Active = false
	require.NoError(t, repo.Update(ctx, inactive))

	products, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)

	// Deactivated products stay resolvable by id
	found, err := repo.FindByID(ctx, inactive.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)
}

func TestFindByIDMissingIsNotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByID(context.Background(), 42)

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	repo := newRepo(t)

	err := repo.Update(context.Background(), &domain.Product{ID: 42, Name: "Ghost"})

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestReplaceAllCommitsInOneWrite(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a := &domain.Product{Name: "Milk", Stock: 10, Active: true}
	b := &domain.Product{Name: "Bread", Stock: 15, Active: true}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	for i := range products {
		products[i].Stock = 0
	}
	require.NoError(t, repo.ReplaceAll(ctx, products))

	reloaded, err := repo.FindAll(ctx)
	require.NoError(t, err)
	for _, p := range reloaded {
		assert.Equal(t, 0, p.Stock)
	}
}

func TestCountIncludesInactive(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Milk", Active: true}
	require.NoError(t, repo.Create(ctx, p))
	p.Active = false
	require.NoError(t, repo.Update(ctx, p))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
