package readstore

import (
	"context"
	"errors"

	"marketcart/internal/domain/inventory"
	"marketcart/internal/infra"
	"marketcart/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type StockReadStore struct {
	db db.DBTX
}

func NewStockReadStore(dbtx db.DBTX) *StockReadStore {
	return &StockReadStore{db: dbtx}
}

func (s *StockReadStore) FindBySKU(ctx context.Context, sku string) (*inventory.Availability, error) {
	var availability inventory.Availability
	err := s.db.QueryRow(ctx,
		`SELECT product_sku, units_available, units_reserved FROM product_stock WHERE product_sku = $1`,
		sku,
	).Scan(&availability.SKU, &availability.UnitsAvailable, &availability.UnitsReserved)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "unknown sku "+sku, err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read stock availability", err)
	}
	return &availability, nil
}
