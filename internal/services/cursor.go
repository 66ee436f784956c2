package services

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/repositories"
)

type cursorPayload struct {
	CreatedAt time.Time `json:"t"`
	ID        string    `json:"id"`
}

// EncodeCursor returns the opaque form of c.
func EncodeCursor(c repositories.PostCursor) string {
	raw, _ := json.Marshal(cursorPayload{CreatedAt: c.CreatedAt, ID: c.ID})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque cursor. An empty string yields nil.
func DecodeCursor(s string) (*repositories.PostCursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, domain.NewValidation("invalid cursor")
	}
	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" || p.CreatedAt.IsZero() {
		return nil, domain.NewValidation("invalid cursor")
	}
	return &repositories.PostCursor{CreatedAt: p.CreatedAt, ID: p.ID}, nil
}
