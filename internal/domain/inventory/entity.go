package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySKU          = errors.New("sku cannot be empty")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// SKU identifies a product in the shared warehouse.
type SKU struct {
	value string
}

func NewSKU(value string) (SKU, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return SKU{}, ErrEmptySKU
	}
	return SKU{value: trimmed}, nil
}

func (s SKU) String() string {
	return s.value
}

// Availability is the read-side answer to "can qty units be reserved right now".
// It is a snapshot: only a reservation decides authoritatively.
type Availability struct {
	SKU            string
	UnitsAvailable int
	UnitsReserved  int
}

func (a Availability) CanFulfill(quantity int) bool {
	return quantity > 0 && a.UnitsAvailable >= quantity
}

// InsufficientStockError carries the remaining units so callers can tell the
// shopper how many are actually left.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, %d available", e.SKU, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidateAmount guards reserve/release/commit quantities before they reach
// the ledger.
func ValidateAmount(quantity int) error {
	if quantity <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}
