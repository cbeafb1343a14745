package repository

import (
	"context"

	"marketcart/internal/domain/order"
	"marketcart/internal/infra"
	"marketcart/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

const insertOrderSQL = `
INSERT INTO orders (
	id, session_id, product_sku, quantity, unit_price, vendor_ref,
	buyer_email, phone_number, pickup_country, pickup_region, pickup_station, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// InsertAll writes every order record in a single batch on the caller's
// transaction: either all rows land or the transaction rolls back.
func (r *OrderRepository) InsertAll(ctx context.Context, orders []*order.Order) error {
	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(insertOrderSQL,
			o.ID(),
			o.SessionID(),
			o.ProductSKU(),
			o.Quantity(),
			o.UnitPrice().String(),
			o.VendorRef(),
			o.Buyer().Email(),
			o.Buyer().PhoneNumber(),
			o.Pickup().Country(),
			o.Pickup().Region(),
			o.Pickup().Station(),
			o.CreatedAt(),
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range orders {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert order records", err)
		}
	}
	return nil
}
