package ports

import (
	"context"

	"github.com/NXFinity/beamify-application/internal/core/domain"
)

// SessionService owns all session state transitions. Route-level code reads
// snapshots through Resolve and mutates only through the named operations.
type SessionService interface {
	// Resolve performs one session check for the given browser session and
	// returns the gate snapshot route logic acts on. Side effect: an
	// unauthenticated outcome clears the stored session.
	Resolve(ctx context.Context, sessionID string) domain.Gate

	// Login authenticates against the core API and, on success, creates a
	// fresh session holding exactly token, username and userId. Returns the
	// new session ID and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// Logout clears the stored session and best-effort invalidates the
	// token with the backend. Idempotent: logging out an absent session is
	// a no-op and never an error.
	Logout(ctx context.Context, sessionID string) error

	// Record returns the durable session fields without a backend check.
	Record(ctx context.Context, sessionID string) domain.SessionRecord
}
