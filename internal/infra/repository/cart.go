package repository

import (
	"context"
	"errors"

	"marketcart/internal/domain/cart"
	"marketcart/internal/infra"
	"marketcart/internal/infra/db"
	"marketcart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type CartRepository struct {
	db db.DBTX
}

func NewCartRepository(dbtx db.DBTX) *CartRepository {
	return &CartRepository{db: dbtx}
}

// Re-adding a SKU grows the existing line; the first add's price snapshot
// and vendor reference are kept.
const upsertLineSQL = `
INSERT INTO cart_items (session_id, product_sku, quantity, unit_price, vendor_ref, added_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (session_id, product_sku)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING quantity`

func (r *CartRepository) UpsertLine(ctx context.Context, line *cart.Line) (int, error) {
	var quantity int
	err := r.db.QueryRow(ctx, upsertLineSQL,
		line.SessionID(),
		line.SKU().String(),
		line.Quantity().Value(),
		line.UnitPrice().String(),
		line.VendorRef().String(),
		line.AddedAt(),
	).Scan(&quantity)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to upsert cart line", err)
	}
	return quantity, nil
}

const findLineSQL = `
SELECT session_id, product_sku, quantity, unit_price::text, vendor_ref, added_at
FROM cart_items
WHERE session_id = $1 AND product_sku = $2
FOR UPDATE`

func (r *CartRepository) FindLine(ctx context.Context, sessionID uuid.UUID, sku string) (*shared.CartLineSnapshot, error) {
	snap, err := scanLine(r.db.QueryRow(ctx, findLineSQL, sessionID, sku))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "cart line not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find cart line", err)
	}
	return snap, nil
}

func (r *CartRepository) DeleteLine(ctx context.Context, sessionID uuid.UUID, sku string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1 AND product_sku = $2`, sessionID, sku)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete cart line", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "cart line not found", nil)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to clear cart", err)
	}
	return nil
}

const listForUpdateSQL = `
SELECT session_id, product_sku, quantity, unit_price::text, vendor_ref, added_at
FROM cart_items
WHERE session_id = $1
ORDER BY added_at, product_sku
FOR UPDATE`

func (r *CartRepository) ListForUpdate(ctx context.Context, sessionID uuid.UUID) ([]shared.CartLineSnapshot, error) {
	rows, err := r.db.Query(ctx, listForUpdateSQL, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list cart lines", err)
	}
	defer rows.Close()

	var lines []shared.CartLineSnapshot
	for rows.Next() {
		snap, err := scanLine(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan cart line", err)
		}
		lines = append(lines, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list cart lines", err)
	}
	return lines, nil
}

func scanLine(row pgx.Row) (*shared.CartLineSnapshot, error) {
	var (
		snap     shared.CartLineSnapshot
		rawPrice string
	)
	if err := row.Scan(&snap.SessionID, &snap.ProductSKU, &snap.Quantity, &rawPrice, &snap.VendorRef, &snap.AddedAt); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return nil, err
	}
	snap.UnitPrice = price
	return &snap, nil
}
