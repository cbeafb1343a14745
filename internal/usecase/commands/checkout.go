package commands

import (
	"context"
	"log/slog"

	"marketcart/internal/domain/cart"
	"marketcart/internal/domain/inventory"
	"marketcart/internal/domain/order"
	"marketcart/internal/domain/session"
	"marketcart/internal/pkg/clock"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutParams struct {
	SessionID     uuid.UUID
	BuyerEmail    string
	PhoneNumber   string
	PickupCountry string
	PickupRegion  string
	PickupStation string
}

type CheckoutResult struct {
	OrderIDs []uuid.UUID
	Total    decimal.Decimal
}

type CheckoutCommands interface {
	// Checkout converts every cart line into an immutable order record,
	// consumes the reservations and clears the cart, all or nothing.
	// Reserved units are never returned to availability on success.
	Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher OrderEventPublisher
	clock     clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, publisher OrderEventPublisher, clock clock.Clock) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:       uow,
		publisher: publisher,
		clock:     clock,
	}
}

func (c *checkoutCommandsImpl) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	if params.SessionID == uuid.Nil {
		return nil, errs.Mark(cart.ErrNilSession, errs.ErrDomainValidation)
	}
	buyer, err := order.NewBuyerContact(params.BuyerEmail, params.PhoneNumber)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	pickup, err := order.NewPickupSelection(params.PickupCountry, params.PickupRegion, params.PickupStation)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var (
		result CheckoutResult
		events []OrderCreatedEvent
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = CheckoutResult{}
		events = events[:0]

		snap, err := findSession(ctx, tx, params.SessionID)
		if err != nil {
			return err
		}
		sess := session.ReconstructSession(snap.ID, session.Status(snap.Status), snap.CreatedAt, snap.UpdatedAt)
		if err := sess.Commit(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrSessionClosed)
		}

		lines, err := tx.Carts().ListForUpdate(ctx, params.SessionID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(lines) == 0 {
			return errs.ErrEmptyCart
		}

		orders, err := c.ordersFromLines(lines, buyer, pickup)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		// One batch inside one transaction: a failure on any row rolls the
		// whole checkout back, so a partially committed order set cannot
		// exist.
		if err := tx.Orders().InsertAll(ctx, orders); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		total := decimal.Zero
		for _, o := range orders {
			if err := tx.Stock().CommitReserved(ctx, o.ProductSKU(), o.Quantity()); err != nil {
				return mapLedgerErr(err)
			}
			total = total.Add(o.Total())
			result.OrderIDs = append(result.OrderIDs, o.ID())
			events = append(events, OrderCreatedEvent{
				OrderID:    o.ID(),
				SessionID:  o.SessionID(),
				ProductSKU: o.ProductSKU(),
				Quantity:   o.Quantity(),
				UnitPrice:  o.UnitPrice(),
				VendorRef:  o.VendorRef(),
				BuyerEmail: o.Buyer().Email(),
				CreatedAt:  o.CreatedAt(),
			})
		}
		result.Total = total

		// Reservations are consumed, not released: clearing alone is
		// correct here.
		if err := tx.Carts().Clear(ctx, params.SessionID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return tx.Sessions().UpdateStatus(ctx, params.SessionID, sess.Status(), c.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	if pubErr := c.publisher.OrdersCreated(ctx, events); pubErr != nil {
		slog.Warn("order event publication failed", "session_id", params.SessionID.String(), "error", pubErr.Error())
	}
	return &result, nil
}

func (c *checkoutCommandsImpl) ordersFromLines(
	lines []shared.CartLineSnapshot,
	buyer order.BuyerContact,
	pickup order.PickupSelection,
) ([]*order.Order, error) {
	now := c.clock.Now()
	orders := make([]*order.Order, 0, len(lines))
	for _, snap := range lines {
		line, err := reconstructLine(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order.FromCartLine(line, buyer, pickup, now))
	}
	return orders, nil
}

func reconstructLine(snap shared.CartLineSnapshot) (*cart.Line, error) {
	sku, err := inventory.NewSKU(snap.ProductSKU)
	if err != nil {
		return nil, err
	}
	qty, err := cart.NewQuantity(snap.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := cart.NewUnitPrice(snap.UnitPrice)
	if err != nil {
		return nil, err
	}
	vendorRef, err := cart.NewVendorRef(snap.VendorRef)
	if err != nil {
		return nil, err
	}
	return cart.ReconstructLine(snap.SessionID, sku, qty, price, vendorRef, snap.AddedAt), nil
}
