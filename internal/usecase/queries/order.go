package queries

import (
	"context"

	"marketcart/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderReadStore interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]OrderView, error)
}

type OrderQueries interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]OrderView, error) {
	if sessionID == uuid.Nil {
		return nil, errs.Mark(errs.New("session id is required"), errs.ErrDomainValidation)
	}

	orders, err := q.readStore.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return orders, nil
}
