package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecordedEvent is emitted after a sale is committed
type SaleRecordedEvent struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	SaleID      string          `json:"sale_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Customer    string          `json:"customer"`
	UserID      string          `json:"user_id,omitempty"`
	StockAfter  int             `json:"stock_after"`
	SaleDate    time.Time       `json:"sale_date"`
	Timestamp   time.Time       `json:"timestamp"`
}

// StockAdjustedEvent is emitted after a manual stock correction
type StockAdjustedEvent struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	ProductID        string    `json:"product_id"`
	Operation        string    `json:"operation"`
	Amount           int       `json:"amount"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	UserID           string    `json:"user_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleRecorded  = "sale.recorded"
	EventTypeStockAdjusted = "stock.adjusted"
)

// DefaultTopic carries every inventory event; consumers switch on event_type.
const DefaultTopic = "pededrink-events"
