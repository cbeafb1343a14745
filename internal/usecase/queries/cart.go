package queries

import (
	"context"

	"marketcart/internal/pkg/errs"

	"github.com/google/uuid"
)

type CartReadStore interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]CartLineView, error)
}

type CartQueries interface {
	// ListItems returns the session's lines in insertion order, recomputed
	// fresh on each call.
	ListItems(ctx context.Context, sessionID uuid.UUID) ([]CartLineView, error)
}

type cartQueriesImpl struct {
	readStore CartReadStore
}

func NewCartQueries(readStore CartReadStore) CartQueries {
	return &cartQueriesImpl{readStore: readStore}
}

func (q *cartQueriesImpl) ListItems(ctx context.Context, sessionID uuid.UUID) ([]CartLineView, error) {
	if sessionID == uuid.Nil {
		return nil, errs.Mark(errs.New("session id is required"), errs.ErrDomainValidation)
	}

	lines, err := q.readStore.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return lines, nil
}
