package readstore

import (
	"context"

	"marketcart/internal/infra"
	"marketcart/internal/infra/db"
	"marketcart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{db: dbtx}
}

const listCartSQL = `
SELECT session_id, product_sku, quantity, unit_price::text, vendor_ref, added_at
FROM cart_items
WHERE session_id = $1
ORDER BY added_at, product_sku`

func (s *CartReadStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]queries.CartLineView, error) {
	rows, err := s.db.Query(ctx, listCartSQL, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list cart items", err)
	}
	defer rows.Close()

	views := []queries.CartLineView{}
	for rows.Next() {
		var (
			view     queries.CartLineView
			rawPrice string
		)
		if err := rows.Scan(&view.SessionID, &view.ProductSKU, &view.Quantity, &rawPrice, &view.VendorRef, &view.AddedAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan cart item", err)
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid unit price in cart item", err)
		}
		view.UnitPrice = price
		view.Subtotal = price.Mul(decimal.NewFromInt(int64(view.Quantity)))
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list cart items", err)
	}
	return views, nil
}
