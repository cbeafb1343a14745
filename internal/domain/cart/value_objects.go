package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNilSession          = errors.New("session id cannot be nil")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrNegativePrice       = errors.New("unit price cannot be negative")
	ErrEmptyVendorRef      = errors.New("vendor reference cannot be empty")
)

type Quantity struct {
	value int
}

func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, ErrNonPositiveQuantity
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int {
	return q.value
}

func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value + other.value}
}

// UnitPrice is snapshotted at add-time and never re-derived from the catalog.
type UnitPrice struct {
	amount decimal.Decimal
}

func NewUnitPrice(amount decimal.Decimal) (UnitPrice, error) {
	if amount.IsNegative() {
		return UnitPrice{}, ErrNegativePrice
	}
	return UnitPrice{amount: amount}, nil
}

func (p UnitPrice) Amount() decimal.Decimal {
	return p.amount
}

func (p UnitPrice) String() string {
	return p.amount.String()
}

// VendorRef is an opaque identifier of the selling vendor, carried through
// to the order untouched.
type VendorRef struct {
	value string
}

func NewVendorRef(value string) (VendorRef, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return VendorRef{}, ErrEmptyVendorRef
	}
	return VendorRef{value: trimmed}, nil
}

func (v VendorRef) String() string {
	return v.value
}
