package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type CartLineSnapshot struct {
	SessionID  uuid.UUID
	ProductSKU string
	Quantity   int
	UnitPrice  decimal.Decimal
	VendorRef  string
	AddedAt    time.Time
}

type SessionSnapshot struct {
	ID        uuid.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
