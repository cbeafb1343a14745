package request

import (
	"github.com/google/uuid"
)

type ResumeSessionRequest struct {
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}
