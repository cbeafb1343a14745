package cart

import (
	"time"

	"marketcart/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one (session, sku) cart entry. The store keeps at most one Line
// per pair; re-adding the same SKU grows the existing line.
type Line struct {
	sessionID uuid.UUID
	sku       inventory.SKU
	quantity  Quantity
	unitPrice UnitPrice
	vendorRef VendorRef
	addedAt   time.Time
}

func NewLine(
	sessionID uuid.UUID,
	sku inventory.SKU,
	quantity Quantity,
	unitPrice UnitPrice,
	vendorRef VendorRef,
	addedAt time.Time,
) (*Line, error) {
	if sessionID == uuid.Nil {
		return nil, ErrNilSession
	}
	return &Line{
		sessionID: sessionID,
		sku:       sku,
		quantity:  quantity,
		unitPrice: unitPrice,
		vendorRef: vendorRef,
		addedAt:   addedAt,
	}, nil
}

func ReconstructLine(
	sessionID uuid.UUID,
	sku inventory.SKU,
	quantity Quantity,
	unitPrice UnitPrice,
	vendorRef VendorRef,
	addedAt time.Time,
) *Line {
	return &Line{
		sessionID: sessionID,
		sku:       sku,
		quantity:  quantity,
		unitPrice: unitPrice,
		vendorRef: vendorRef,
		addedAt:   addedAt,
	}
}

func (l *Line) SessionID() uuid.UUID { return l.sessionID }
func (l *Line) SKU() inventory.SKU   { return l.sku }
func (l *Line) Quantity() Quantity   { return l.quantity }
func (l *Line) UnitPrice() UnitPrice { return l.unitPrice }
func (l *Line) VendorRef() VendorRef { return l.vendorRef }
func (l *Line) AddedAt() time.Time   { return l.addedAt }

func (l *Line) Subtotal() decimal.Decimal {
	return l.unitPrice.Amount().Mul(decimal.NewFromInt(int64(l.quantity.Value())))
}
