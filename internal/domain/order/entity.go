package order

import (
	"time"

	"marketcart/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is derived 1:1 from a cart line at checkout time and never mutated
// after insertion. Price and vendor reference are the add-time snapshots.
type Order struct {
	id         uuid.UUID
	sessionID  uuid.UUID
	productSKU string
	quantity   int
	unitPrice  decimal.Decimal
	vendorRef  string
	buyer      BuyerContact
	pickup     PickupSelection
	createdAt  time.Time
}

func FromCartLine(line *cart.Line, buyer BuyerContact, pickup PickupSelection, now time.Time) *Order {
	return &Order{
		id:         uuid.New(),
		sessionID:  line.SessionID(),
		productSKU: line.SKU().String(),
		quantity:   line.Quantity().Value(),
		unitPrice:  line.UnitPrice().Amount(),
		vendorRef:  line.VendorRef().String(),
		buyer:      buyer,
		pickup:     pickup,
		createdAt:  now,
	}
}

func (o *Order) ID() uuid.UUID              { return o.id }
func (o *Order) SessionID() uuid.UUID       { return o.sessionID }
func (o *Order) ProductSKU() string         { return o.productSKU }
func (o *Order) Quantity() int              { return o.quantity }
func (o *Order) UnitPrice() decimal.Decimal { return o.unitPrice }
func (o *Order) VendorRef() string          { return o.vendorRef }
func (o *Order) Buyer() BuyerContact        { return o.buyer }
func (o *Order) Pickup() PickupSelection    { return o.pickup }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }

func (o *Order) Total() decimal.Decimal {
	return o.unitPrice.Mul(decimal.NewFromInt(int64(o.quantity)))
}
