package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tiendita/ventas/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingProductRepository wraps a ProductRepository with tracing spans.
type TracingProductRepository struct {
	inner domain.ProductRepository
}

func NewTracingProductRepository(inner domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{inner: inner}
}

func (r *TracingProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	products, err := r.inner.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

func (r *TracingProductRepository) FindActive(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindActive")
	defer span.End()

	products, err := r.inner.FindActive(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int64("product.id", id)),
	)
	defer span.End()

	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return product, nil
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.Float64("product.price", product.Price),
			attribute.Int("product.stock", product.Stock),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, product); err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int64("product.id", product.ID))
	return nil
}

func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(attribute.Int64("product.id", product.ID)),
	)
	defer span.End()

	if err := r.inner.Update(ctx, product); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.ReplaceAll",
		trace.WithAttributes(attribute.Int("products.count", len(products))),
	)
	defer span.End()

	if err := r.inner.ReplaceAll(ctx, products); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.inner.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	return count, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
