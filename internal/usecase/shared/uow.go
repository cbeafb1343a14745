package shared

import (
	"context"
	"time"

	"marketcart/internal/domain/cart"
	"marketcart/internal/domain/order"
	"marketcart/internal/domain/session"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Stock() StockRepository
	Carts() CartRepository
	Orders() OrderRepository
	Sessions() SessionRepository
}

// StockRepository is the write side of the inventory ledger. Reserve must be
// a single atomic check-and-decrement: two concurrent reservers of the last
// unit must never both succeed.
type StockRepository interface {
	// Reserve moves qty units from available to reserved. Returns the units
	// still available after the reservation.
	Reserve(ctx context.Context, sku string, qty int) (int, error)
	// Release returns qty previously reserved units to availability. Fails
	// when qty exceeds the reserved amount. Returns the resulting available
	// units.
	Release(ctx context.Context, sku string, qty int) (int, error)
	// CommitReserved consumes qty reserved units permanently; available
	// units are untouched.
	CommitReserved(ctx context.Context, sku string, qty int) error
}

type CartRepository interface {
	// UpsertLine inserts the line or, when the (session, sku) pair already
	// exists, adds the quantity to it. Returns the resulting line quantity.
	UpsertLine(ctx context.Context, line *cart.Line) (int, error)
	FindLine(ctx context.Context, sessionID uuid.UUID, sku string) (*CartLineSnapshot, error)
	DeleteLine(ctx context.Context, sessionID uuid.UUID, sku string) error
	// Clear removes all lines. It never touches the ledger; callers release
	// reservations explicitly first.
	Clear(ctx context.Context, sessionID uuid.UUID) error
	// ListForUpdate reads all lines in insertion order, locked for the
	// duration of the transaction.
	ListForUpdate(ctx context.Context, sessionID uuid.UUID) ([]CartLineSnapshot, error)
}

type OrderRepository interface {
	// InsertAll persists the order records as one batch; a failure on any
	// row fails the whole call.
	InsertAll(ctx context.Context, orders []*order.Order) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *session.Session) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status session.Status, now time.Time) error
}
