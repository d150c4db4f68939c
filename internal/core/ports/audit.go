package ports

import (
	"context"

	"github.com/NXFinity/beamify-application/internal/core/domain"
)

// AuditRepository persists the session audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

// AuditSink accepts audit events for asynchronous recording. Implementations
// must never block the session flow on persistence.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
