package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCommitted  = errors.New("session is already committed")
	ErrInvalidTransition = errors.New("invalid session state transition")
)

type Status string

// Committed is the only terminal status. An abandoned session may be used
// again: nothing ties the anonymous token to a single storefront visit
// until supersession or checkout closes it.
const (
	StatusActive     Status = "active"
	StatusSuperseded Status = "superseded"
	StatusCommitted  Status = "committed"
	StatusAbandoned  Status = "abandoned"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSuperseded, StatusCommitted, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Session is an anonymous shopping context identified by an opaque token.
type Session struct {
	id        uuid.UUID
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewSession(now time.Time) *Session {
	return &Session{
		id:        uuid.New(),
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructSession(id uuid.UUID, status Status, createdAt, updatedAt time.Time) *Session {
	return &Session{
		id:        id,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) Status() Status       { return s.status }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// CanAddItems reports whether the session can accept cart mutations.
func (s *Session) CanAddItems() bool {
	return s.status == StatusActive || s.status == StatusAbandoned
}

// Supersede closes the session because the shopper started a new storefront
// visit. The caller must release and clear its cart first.
func (s *Session) Supersede(now time.Time) error {
	if s.status == StatusCommitted {
		return ErrAlreadyCommitted
	}
	s.status = StatusSuperseded
	s.updatedAt = now
	return nil
}

// Commit marks the session's cart as converted into orders. Terminal.
func (s *Session) Commit(now time.Time) error {
	if !s.CanAddItems() {
		return ErrInvalidTransition
	}
	s.status = StatusCommitted
	s.updatedAt = now
	return nil
}

// Abandon records an explicit cart abandonment. The token stays usable.
func (s *Session) Abandon(now time.Time) error {
	if s.status == StatusCommitted || s.status == StatusSuperseded {
		return ErrInvalidTransition
	}
	s.status = StatusAbandoned
	s.updatedAt = now
	return nil
}
