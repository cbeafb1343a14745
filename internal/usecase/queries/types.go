package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AvailabilityView struct {
	ProductSKU     string
	Available      bool
	UnitsAvailable int
}

type CartLineView struct {
	SessionID  uuid.UUID
	ProductSKU string
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
	VendorRef  string
	AddedAt    time.Time
}

type OrderView struct {
	ID            uuid.UUID
	SessionID     uuid.UUID
	ProductSKU    string
	Quantity      int
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
	VendorRef     string
	BuyerEmail    string
	PhoneNumber   string
	PickupCountry string
	PickupRegion  string
	PickupStation string
	CreatedAt     time.Time
}
