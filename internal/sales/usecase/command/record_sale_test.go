package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/tiendita/ventas/internal/catalog/domain"
	catalogrepo "github.com/tiendita/ventas/internal/catalog/repository"
	salesrepo "github.com/tiendita/ventas/internal/sales/repository"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/storage"
)

type fixture struct {
	products *catalogrepo.FileProductRepository
	sales    *salesrepo.FileSaleRepository
	handler  *RecordSaleHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	products := catalogrepo.NewFileProductRepository(store)
	sales := salesrepo.NewFileSaleRepository(store)
	return &fixture{
		products: products,
		sales:    sales,
		handler:  NewRecordSaleHandler(products, sales),
	}
}

func (f *fixture) seed(t *testing.T, p catalogdomain.Product) catalogdomain.Product {
	t.Helper()
	require.NoError(t, f.products.Create(context.Background(), &p))
	return p
}

func TestRecordSaleHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	widget := f.seed(t, catalogdomain.Product{Name: "Widget", Price: 10.0, Stock: 5, Active: true})

	sale, err := f.handler.Handle(ctx, RecordSaleCommand{
		Items: []SaleItemInput{{ProductID: widget.ID, Quantity: 3}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, sale.ID)
	assert.False(t, sale.Timestamp.IsZero())
	assert.Nil(t, sale.UserID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Widget", sale.Items[0].ProductName)
	assert.Equal(t, 10.0, sale.Items[0].UnitPrice)
	assert.Equal(t, 30.0, sale.Items[0].Subtotal)
	assert.Equal(t, 30.0, sale.Total)

	remaining, err := f.products.FindByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining.Stock)

	ledger, err := f.sales.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, sale.ID, ledger[0].ID)
}

func TestRecordSaleCarriesUserID(t *testing.T) {
	f := newFixture(t)
	widget := f.seed(t, catalogdomain.Product{Name: "Widget", Price: 1, Stock: 1, Active: true})

	userID := "user-7"
	sale, err := f.handler.Handle(context.Background(), RecordSaleCommand{
		UserID: &userID,
		Items:  []SaleItemInput{{ProductID: widget.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	require.NotNil(t, sale.UserID)
	assert.Equal(t, "user-7", *sale.UserID)
}

func TestRecordSaleTotalSumsLineSubtotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.seed(t, catalogdomain.Product{Name: "Milk", Price: 6.5, Stock: 10, Active: true})
	b := f.seed(t, catalogdomain.Product{Name: "Bread", Price: 3.0, Stock: 15, Active: true})

	sale, err := f.handler.Handle(ctx, RecordSaleCommand{
		Items: []SaleItemInput{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 3},
		},
	})

	require.NoError(t, err)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, 13.0, sale.Items[0].Subtotal)
	assert.Equal(t, 9.0, sale.Items[1].Subtotal)
	assert.Equal(t, 22.0, sale.Total)
}

func TestRecordSaleInsufficientStockIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	widget := f.seed(t, catalogdomain.Product{Name: "Widget", Price: 10, Stock: 2, Active: true})

	_, err := f.handler.Handle(ctx, RecordSaleCommand{
		Items: []SaleItemInput{{ProductID: widget.ID, Quantity: 3}},
	})

	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, widget.ID, conflict.ProductID)
	assert.Equal(t, "Widget", conflict.ProductName)
	assert.Equal(t, 2, conflict.Available)
	assert.Equal(t, 3, conflict.Requested)

	// Stock untouched, no sale persisted
	remaining, err := f.products.FindByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining.Stock)

	ledger, err := f.sales.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestRecordSaleIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok := f.seed(t, catalogdomain.Product{Name: "Milk", Price: 6.5, Stock: 10, Active: true})
	short := f.seed(t, catalogdomain.Product{Name: "Bread", Price: 3.0, Stock: 1, Active: true})

	_, err := f.handler.Handle(ctx, RecordSaleCommand{
		Items: []SaleItemInput{
			{ProductID: ok.ID, Quantity: 2},
			{ProductID: short.ID, Quantity: 5},
		},
	})

	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)

	// A failure on the second line leaves the first line's stock untouched
	first, err := f.products.FindByID(ctx, ok.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, first.Stock)

	ledger, err := f.sales.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestRecordSaleDuplicateLinesCannotOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	widget := f.seed(t, catalogdomain.Product{Name: "Widget", Price: 10, Stock: 3, Active: true})

	_, err := f.handler.Handle(ctx, RecordSaleCommand{
		Items: []SaleItemInput{
			{ProductID: widget.ID, Quantity: 2},
			{ProductID: widget.ID, Quantity: 2},
		},
	})

	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 4, conflict.Requested)

	remaining, err := f.products.FindByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining.Stock)
}

func TestRecordSaleUnknownProductIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Handle(context.Background(), RecordSaleCommand{
		Items: []SaleItemInput{{ProductID: 42, Quantity: 1}},
	})

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Message, "42")
}

func TestRecordSaleInactiveProductIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	widget := f.seed(t, catalogdomain.Product{Name: "Widget", Price: 10, Stock: 5, Active: true})
	widget.Active = false
	require.NoError(t, f.products.Update(ctx, &widget))

	_, err := f.handler.Handle(ctx, RecordSaleCommand{
		Items: []SaleItemInput{{ProductID: widget.ID, Quantity: 1}},
	})

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)

	remaining, err := f.products.FindByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, remaining.Stock)
}

func TestRecordSaleValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  RecordSaleCommand
	}{
		{"empty items", RecordSaleCommand{}},
		{"missing product id", RecordSaleCommand{Items: []SaleItemInput{{Quantity: 1}}}},
		{"zero quantity", RecordSaleCommand{Items: []SaleItemInput{{ProductID: 1, Quantity: 0}}}},
		{"negative quantity", RecordSaleCommand{Items: []SaleItemInput{{ProductID: 1, Quantity: -2}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.handler.Handle(ctx, tc.cmd)

			var validation *apperrors.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestRecordSaleSnapshotsNameAndPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	widget := f.seed(t, catalogdomain.Product{Name: "Widget", Price: 9.99, Stock: 5, Active: true})

	sale, err := f.handler.Handle(ctx, RecordSaleCommand{
		Items: []SaleItemInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Mutate the product after the sale; the line item must not change
	stored, err := f.products.FindByID(ctx, widget.ID)
	require.NoError(t, err)
	stored.Name = "Renamed"
	stored.Price = 99.99
	require.NoError(t, f.products.Update(ctx, stored))

	ledger, err := f.sales.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, sale.ID, ledger[0].ID)
	assert.Equal(t, "Widget", ledger[0].Items[0].ProductName)
	assert.Equal(t, 9.99, ledger[0].Items[0].UnitPrice)
}

func TestRecordSalesPreserveInsertionOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	widget := f.seed(t, catalogdomain.Product{Name: "Widget", Price: 1, Stock: 10, Active: true})

	first, err := f.handler.Handle(ctx, RecordSaleCommand{Items: []SaleItemInput{{ProductID: widget.ID, Quantity: 1}}})
	require.NoError(t, err)
	second, err := f.handler.Handle(ctx, RecordSaleCommand{Items: []SaleItemInput{{ProductID: widget.ID, Quantity: 1}}})
	require.NoError(t, err)

	ledger, err := f.sales.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, first.ID, ledger[0].ID)
	assert.Equal(t, second.ID, ledger[1].ID)
}
