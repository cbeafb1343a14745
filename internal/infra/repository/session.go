package repository

import (
	"context"
	"errors"
	"time"

	"marketcart/internal/domain/session"
	"marketcart/internal/infra"
	"marketcart/internal/infra/db"
	"marketcart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SessionRepository struct {
	db db.DBTX
}

func NewSessionRepository(dbtx db.DBTX) *SessionRepository {
	return &SessionRepository{db: dbtx}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cart_sessions (id, status, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		s.ID(), s.Status().String(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create session", err)
	}
	return nil
}

// FindForUpdate locks the session row so concurrent cart mutations on the
// same token serialize.
func (r *SessionRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.SessionSnapshot, error) {
	var snap shared.SessionSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, status, created_at, updated_at FROM cart_sessions WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&snap.ID, &snap.Status, &snap.CreatedAt, &snap.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "session not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find session", err)
	}
	return &snap, nil
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status session.Status, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cart_sessions SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status.String(), now,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update session status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "session not found", nil)
	}
	return nil
}
