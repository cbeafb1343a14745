package response

import (
	"github.com/google/uuid"
)

type SessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
}
