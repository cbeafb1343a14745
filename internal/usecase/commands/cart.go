package commands

import (
	"context"
	"log/slog"

	"marketcart/internal/domain/cart"
	"marketcart/internal/domain/inventory"
	"marketcart/internal/domain/session"
	"marketcart/internal/infra"
	"marketcart/internal/pkg/clock"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddItemParams struct {
	SessionID  uuid.UUID
	ProductSKU string
	Quantity   int
	UnitPrice  decimal.Decimal
	VendorRef  string
}

type AddItemResult struct {
	SessionID  uuid.UUID
	ProductSKU string
	// LineQuantity is the resulting line quantity, which exceeds the added
	// quantity when the SKU was already in the cart.
	LineQuantity   int
	UnitPrice      decimal.Decimal
	VendorRef      string
	UnitsAvailable int
}

type CartCommands interface {
	// AddItem reserves stock first and appends/updates the cart line only
	// when the reservation succeeds, all in one transaction. Ledger errors
	// pass through untouched and leave no partial state.
	AddItem(ctx context.Context, params AddItemParams) (*AddItemResult, error)
	// RemoveItem releases the line's reserved quantity, then deletes the
	// line.
	RemoveItem(ctx context.Context, sessionID uuid.UUID, sku string) error
	// Abandon is the only sanctioned way to walk away from a cart: release
	// every reservation, then clear, in that order.
	Abandon(ctx context.Context, sessionID uuid.UUID) error
}

type cartCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier StockNotifier
	clock    clock.Clock
}

func NewCartCommands(uow shared.UnitOfWork, notifier StockNotifier, clock clock.Clock) CartCommands {
	return &cartCommandsImpl{
		uow:      uow,
		notifier: notifier,
		clock:    clock,
	}
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, params AddItemParams) (*AddItemResult, error) {
	line, err := c.newLine(params)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var result AddItemResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := c.requireOpenSession(ctx, tx, params.SessionID); err != nil {
			return err
		}

		// Atomic check-and-decrement; insufficient stock and unknown SKU
		// surface here before any cart mutation.
		unitsLeft, err := tx.Stock().Reserve(ctx, params.ProductSKU, params.Quantity)
		if err != nil {
			return mapLedgerErr(err)
		}

		lineQty, err := tx.Carts().UpsertLine(ctx, line)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = AddItemResult{
			SessionID:      params.SessionID,
			ProductSKU:     params.ProductSKU,
			LineQuantity:   lineQty,
			UnitPrice:      line.UnitPrice().Amount(),
			VendorRef:      line.VendorRef().String(),
			UnitsAvailable: unitsLeft,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifyStockChanged(ctx, params.ProductSKU, result.UnitsAvailable)
	return &result, nil
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, sessionID uuid.UUID, sku string) error {
	if sessionID == uuid.Nil {
		return errs.Mark(cart.ErrNilSession, errs.ErrDomainValidation)
	}
	if _, err := inventory.NewSKU(sku); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	var unitsLeft int
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := c.requireOpenSession(ctx, tx, sessionID); err != nil {
			return err
		}

		line, err := tx.Carts().FindLine(ctx, sessionID, sku)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrCartItemNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// Release before delete: if the release is rejected the line stays
		// intact and the ledger is untouched.
		unitsLeft, err = tx.Stock().Release(ctx, line.ProductSKU, line.Quantity)
		if err != nil {
			return mapLedgerErr(err)
		}

		if err := tx.Carts().DeleteLine(ctx, sessionID, sku); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.notifyStockChanged(ctx, sku, unitsLeft)
	return nil
}

func (c *cartCommandsImpl) Abandon(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return errs.Mark(cart.ErrNilSession, errs.ErrDomainValidation)
	}

	released := make(map[string]int)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		clear(released)

		snap, err := findSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		sess := session.ReconstructSession(snap.ID, session.Status(snap.Status), snap.CreatedAt, snap.UpdatedAt)
		if err := sess.Abandon(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrSessionClosed)
		}

		lines, err := tx.Carts().ListForUpdate(ctx, sessionID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// Release first, clear second. Clearing never restores stock by
		// itself, so a rejected release aborts with the cart intact.
		for _, line := range lines {
			unitsLeft, err := tx.Stock().Release(ctx, line.ProductSKU, line.Quantity)
			if err != nil {
				return mapLedgerErr(err)
			}
			released[line.ProductSKU] = unitsLeft
		}

		if err := tx.Carts().Clear(ctx, sessionID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return tx.Sessions().UpdateStatus(ctx, sessionID, sess.Status(), c.clock.Now())
	})
	if err != nil {
		return err
	}

	for sku, unitsLeft := range released {
		c.notifyStockChanged(ctx, sku, unitsLeft)
	}
	return nil
}

func (c *cartCommandsImpl) newLine(params AddItemParams) (*cart.Line, error) {
	sku, err := inventory.NewSKU(params.ProductSKU)
	if err != nil {
		return nil, err
	}
	qty, err := cart.NewQuantity(params.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := cart.NewUnitPrice(params.UnitPrice)
	if err != nil {
		return nil, err
	}
	vendorRef, err := cart.NewVendorRef(params.VendorRef)
	if err != nil {
		return nil, err
	}
	return cart.NewLine(params.SessionID, sku, qty, price, vendorRef, c.clock.Now())
}

func (c *cartCommandsImpl) requireOpenSession(ctx context.Context, tx shared.Tx, sessionID uuid.UUID) error {
	snap, err := findSession(ctx, tx, sessionID)
	if err != nil {
		return err
	}
	sess := session.ReconstructSession(snap.ID, session.Status(snap.Status), snap.CreatedAt, snap.UpdatedAt)
	if !sess.CanAddItems() {
		return errs.Mark(errs.New("session "+sessionID.String()+" is "+snap.Status), errs.ErrSessionClosed)
	}
	return nil
}

func (c *cartCommandsImpl) notifyStockChanged(ctx context.Context, sku string, unitsAvailable int) {
	if err := c.notifier.StockChanged(ctx, sku, unitsAvailable); err != nil {
		slog.Warn("stock change notification failed", "sku", sku, "error", err.Error())
	}
}

func findSession(ctx context.Context, tx shared.Tx, sessionID uuid.UUID) (*shared.SessionSnapshot, error) {
	snap, err := tx.Sessions().FindForUpdate(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSessionNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

// mapLedgerErr keeps typed ledger errors (insufficient stock, unknown sku,
// over-release) untouched and classifies the rest as persistence failures.
func mapLedgerErr(err error) error {
	switch {
	case errs.IsAny(err, inventory.ErrInsufficientStock, errs.ErrUnknownSKU, errs.ErrOverRelease):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrUnknownSKU)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
