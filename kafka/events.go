package kafka

import "time"

// SaleRecordedEvent is emitted after a sale has been durably appended to
// the ledger.
type SaleRecordedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SaleID    string    `json:"sale_id"`
	UserID    *string   `json:"user_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleRecorded = "sale.recorded"
)

// Kafka topics
const (
	TopicSaleRecorded = "sale-recorded"
)
