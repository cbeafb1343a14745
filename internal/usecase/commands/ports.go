package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockNotifier publishes availability changes at the boundary. It is
// best-effort only: ledger correctness never depends on a notification
// being delivered.
type StockNotifier interface {
	StockChanged(ctx context.Context, sku string, unitsAvailable int) error
}

// OrderEventPublisher announces committed orders to downstream consumers.
// Same best-effort rule as StockNotifier.
type OrderEventPublisher interface {
	OrdersCreated(ctx context.Context, events []OrderCreatedEvent) error
}

type OrderCreatedEvent struct {
	OrderID    uuid.UUID       `json:"order_id"`
	SessionID  uuid.UUID       `json:"session_id"`
	ProductSKU string          `json:"product_sku"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	VendorRef  string          `json:"vendor_ref"`
	BuyerEmail string          `json:"buyer_email"`
	CreatedAt  time.Time       `json:"created_at"`
}
