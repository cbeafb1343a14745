package commands

import (
	"context"
	"log/slog"

	"marketcart/internal/domain/session"
	"marketcart/internal/infra"
	"marketcart/internal/pkg/clock"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/shared"

	"github.com/google/uuid"
)

type SessionCommands interface {
	// Start issues a fresh anonymous session token.
	Start(ctx context.Context) (uuid.UUID, error)
	// ResumeOrSupersede models "one storefront visit = one active cart":
	// when an existing token is presented, its reservations are fully
	// released, its cart cleared and the session marked superseded before a
	// new token is issued.
	ResumeOrSupersede(ctx context.Context, existing *uuid.UUID) (uuid.UUID, error)
}

type sessionCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier StockNotifier
	clock    clock.Clock
}

func NewSessionCommands(uow shared.UnitOfWork, notifier StockNotifier, clock clock.Clock) SessionCommands {
	return &sessionCommandsImpl{
		uow:      uow,
		notifier: notifier,
		clock:    clock,
	}
}

func (s *sessionCommandsImpl) Start(ctx context.Context) (uuid.UUID, error) {
	sess := session.NewSession(s.clock.Now())

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Sessions().Create(ctx, sess); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return sess.ID(), nil
}

func (s *sessionCommandsImpl) ResumeOrSupersede(ctx context.Context, existing *uuid.UUID) (uuid.UUID, error) {
	if existing == nil || *existing == uuid.Nil {
		return s.Start(ctx)
	}

	newSess := session.NewSession(s.clock.Now())
	released := make(map[string]int)

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		clear(released)

		snap, err := tx.Sessions().FindForUpdate(ctx, *existing)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Stale client-held token; nothing to release.
				slog.Warn("supersede requested for unknown session", "session_id", existing.String())
				return tx.Sessions().Create(ctx, newSess)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		old := session.ReconstructSession(snap.ID, session.Status(snap.Status), snap.CreatedAt, snap.UpdatedAt)
		if err := old.Supersede(s.clock.Now()); err == nil {
			lines, err := tx.Carts().ListForUpdate(ctx, old.ID())
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			for _, line := range lines {
				unitsLeft, err := tx.Stock().Release(ctx, line.ProductSKU, line.Quantity)
				if err != nil {
					return mapLedgerErr(err)
				}
				released[line.ProductSKU] = unitsLeft
			}
			if err := tx.Carts().Clear(ctx, old.ID()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if err := tx.Sessions().UpdateStatus(ctx, old.ID(), old.Status(), s.clock.Now()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		// A committed session has nothing left to release; just issue the
		// new token.

		if err := tx.Sessions().Create(ctx, newSess); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	for sku, unitsLeft := range released {
		if notifyErr := s.notifier.StockChanged(ctx, sku, unitsLeft); notifyErr != nil {
			slog.Warn("stock change notification failed", "sku", sku, "error", notifyErr.Error())
		}
	}
	return newSess.ID(), nil
}
