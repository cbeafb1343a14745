package readstore

import (
	"context"

	"marketcart/internal/infra"
	"marketcart/internal/infra/db"
	"marketcart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const listOrdersSQL = `
SELECT id, session_id, product_sku, quantity, unit_price::text, vendor_ref,
       buyer_email, phone_number, pickup_country, pickup_region, pickup_station, created_at
FROM orders
WHERE session_id = $1
ORDER BY created_at, product_sku`

func (s *OrderReadStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]queries.OrderView, error) {
	rows, err := s.db.Query(ctx, listOrdersSQL, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list orders", err)
	}
	defer rows.Close()

	views := []queries.OrderView{}
	for rows.Next() {
		var (
			view     queries.OrderView
			rawPrice string
		)
		if err := rows.Scan(
			&view.ID, &view.SessionID, &view.ProductSKU, &view.Quantity, &rawPrice, &view.VendorRef,
			&view.BuyerEmail, &view.PhoneNumber, &view.PickupCountry, &view.PickupRegion, &view.PickupStation, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan order", err)
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid unit price in order", err)
		}
		view.UnitPrice = price
		view.Total = price.Mul(decimal.NewFromInt(int64(view.Quantity)))
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list orders", err)
	}
	return views, nil
}
