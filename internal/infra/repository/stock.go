package repository

import (
	"context"
	"errors"

	"marketcart/internal/domain/inventory"
	"marketcart/internal/infra"
	"marketcart/internal/infra/db"
	"marketcart/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
)

// StockRepository owns all mutations of product_stock. Every operation is a
// single conditional UPDATE, so the check and the mutation cannot be split
// by a concurrent writer.
type StockRepository struct {
	db db.DBTX
}

func NewStockRepository(dbtx db.DBTX) *StockRepository {
	return &StockRepository{db: dbtx}
}

const reserveSQL = `
UPDATE product_stock
SET units_available = units_available - $2,
    units_reserved  = units_reserved + $2
WHERE product_sku = $1 AND units_available >= $2
RETURNING units_available`

func (r *StockRepository) Reserve(ctx context.Context, sku string, qty int) (int, error) {
	var unitsLeft int
	err := r.db.QueryRow(ctx, reserveSQL, sku, qty).Scan(&unitsLeft)
	if err == nil {
		return unitsLeft, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to reserve stock", err)
	}

	// The guard refused: either the SKU does not exist or fewer units than
	// requested remain. Same transaction, so this read is consistent.
	available, lookupErr := r.currentAvailable(ctx, sku)
	if lookupErr != nil {
		return 0, lookupErr
	}
	return 0, &inventory.InsufficientStockError{
		SKU:       sku,
		Requested: qty,
		Available: available,
	}
}

const releaseSQL = `
UPDATE product_stock
SET units_available = units_available + $2,
    units_reserved  = units_reserved - $2
WHERE product_sku = $1 AND units_reserved >= $2
RETURNING units_available`

func (r *StockRepository) Release(ctx context.Context, sku string, qty int) (int, error) {
	var unitsLeft int
	err := r.db.QueryRow(ctx, releaseSQL, sku, qty).Scan(&unitsLeft)
	if err == nil {
		return unitsLeft, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to release stock", err)
	}

	if _, lookupErr := r.currentAvailable(ctx, sku); lookupErr != nil {
		return 0, lookupErr
	}
	// Releasing more than was reserved is an operator error, never silently
	// absorbed: it would inflate availability above true capacity.
	return 0, errs.Mark(errs.New("release of "+sku+" exceeds reserved quantity"), errs.ErrOverRelease)
}

const commitReservedSQL = `
UPDATE product_stock
SET units_reserved = units_reserved - $2
WHERE product_sku = $1 AND units_reserved >= $2`

func (r *StockRepository) CommitReserved(ctx context.Context, sku string, qty int) error {
	tag, err := r.db.Exec(ctx, commitReservedSQL, sku, qty)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to commit reserved stock", err)
	}
	if tag.RowsAffected() == 0 {
		if _, lookupErr := r.currentAvailable(ctx, sku); lookupErr != nil {
			return lookupErr
		}
		return errs.Mark(errs.New("commit of "+sku+" exceeds reserved quantity"), errs.ErrOverRelease)
	}
	return nil
}

func (r *StockRepository) currentAvailable(ctx context.Context, sku string) (int, error) {
	var available int
	err := r.db.QueryRow(ctx, `SELECT units_available FROM product_stock WHERE product_sku = $1`, sku).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, infra.WrapRepoErr(infra.KindNotFound, "unknown sku "+sku, err)
	}
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to read stock", err)
	}
	return available, nil
}
