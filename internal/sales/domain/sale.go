package domain

import (
	"context"
	"time"
)

// SaleItem is one line of a sale. Name and unit price are snapshotted at
// sale time so later product edits do not rewrite history.
type SaleItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// Sale is an immutable, append-only record of a completed purchase.
type Sale struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"userId"`
	Timestamp time.Time  `json:"timestamp"`
	Items     []SaleItem `json:"items"`
	Total     float64    `json:"total"`
}

// SaleRepository defines the contract for the sales ledger. Sales are never
// mutated or deleted; append order is chronological order.
type SaleRepository interface {
	FindAll(ctx context.Context) ([]Sale, error)
	Append(ctx context.Context, sale *Sale) error
}
