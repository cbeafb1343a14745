package queries

import (
	"context"

	"marketcart/internal/domain/inventory"
	"marketcart/internal/infra"
	"marketcart/internal/pkg/errs"
)

type StockReadStore interface {
	FindBySKU(ctx context.Context, sku string) (*inventory.Availability, error)
}

type StockQueries interface {
	// CheckAvailability is a pure read: it never reserves. A reservation
	// re-checks atomically on the write path.
	CheckAvailability(ctx context.Context, sku string, quantity int) (*AvailabilityView, error)
}

type stockQueriesImpl struct {
	readStore StockReadStore
}

func NewStockQueries(readStore StockReadStore) StockQueries {
	return &stockQueriesImpl{readStore: readStore}
}

func (q *stockQueriesImpl) CheckAvailability(ctx context.Context, sku string, quantity int) (*AvailabilityView, error) {
	if _, err := inventory.NewSKU(sku); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := inventory.ValidateAmount(quantity); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	availability, err := q.readStore.FindBySKU(ctx, sku)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUnknownSKU)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &AvailabilityView{
		ProductSKU:     availability.SKU,
		Available:      availability.CanFulfill(quantity),
		UnitsAvailable: availability.UnitsAvailable,
	}, nil
}
