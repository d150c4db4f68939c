package ports

import (
	"context"

	"github.com/NXFinity/beamify-application/internal/core/domain"
)

// SessionStore persists the durable session fields (token, username, userId)
// across page reloads, keyed by the browser's session ID.
//
// Storage being unavailable is treated as the session being absent: Get never
// fails the caller over a backend outage, it returns an empty record.
type SessionStore interface {
	// Set writes all three fields of the record in one operation.
	Set(ctx context.Context, sessionID string, rec domain.SessionRecord) error
	// Get returns the stored record. A missing or unreadable session yields
	// an empty record and a nil error.
	Get(ctx context.Context, sessionID string) (domain.SessionRecord, error)
	// Clear removes the record. Clearing an absent session is a no-op.
	Clear(ctx context.Context, sessionID string) error
}
