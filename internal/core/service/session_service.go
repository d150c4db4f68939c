package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/api/metrics"
	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

// maxCachedGates bounds the in-memory snapshot cache. Entries only matter for
// carrying resolved state across a transient backend outage, so a full cache
// is simply flushed.
const maxCachedGates = 4096

// SessionService is the single owner of session state. All transitions go
// through the named operations; route logic only reads snapshots.
type SessionService struct {
	store ports.SessionStore
	core  ports.CoreClient
	audit ports.AuditSink
	log   zerolog.Logger

	// gen tags every check so a result superseded by a newer check for the
	// same session never overwrites the cached snapshot.
	gen  atomic.Uint64
	mu   sync.Mutex
	last map[string]gateEntry
}

type gateEntry struct {
	gen  uint64
	gate domain.Gate
}

// NewSessionService builds a SessionService. audit may be nil, in which case
// no trail is kept.
func NewSessionService(store ports.SessionStore, core ports.CoreClient, audit ports.AuditSink, log zerolog.Logger) *SessionService {
	return &SessionService{
		store: store,
		core:  core,
		audit: audit,
		log:   log,
		last:  make(map[string]gateEntry),
	}
}

// Resolve runs one session check for the given browser session and returns
// the gate snapshot. An unauthenticated outcome clears the stored session; an
// unreachable backend leaves it untouched and only raises Disconnected.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) domain.Gate {
	gen := s.gen.Add(1)

	rec, _ := s.store.Get(ctx, sessionID)

	start := time.Now()
	outcome := s.core.WhoAmI(ctx, rec.Token)
	metrics.SessionChecksTotal.WithLabelValues(outcome.Kind.String()).Inc()
	metrics.SessionCheckDuration.WithLabelValues(outcome.Kind.String()).Observe(time.Since(start).Seconds())

	gate := domain.Gate{Checked: true, HasToken: rec.Token != ""}

	switch outcome.Kind {
	case domain.OutcomeBootstrapping:
		gate.State = domain.GateBootstrapPending

	case domain.OutcomeUnauthenticated:
		// The stored token is stale: a normal logged-out state, not an error.
		if !rec.IsEmpty() {
			if err := s.store.Clear(ctx, sessionID); err != nil {
				s.log.Warn().Err(err).Msg("failed to clear stale session")
			}
			s.emit(sessionID, rec, domain.AuditForcedLogout)
		}
		gate.State = domain.GateUnauthenticated
		gate.HasToken = false

	case domain.OutcomeAuthenticated:
		// Token absent implies no user, even if the backend answered 200.
		if rec.Token == "" {
			gate.State = domain.GateUnauthenticated
			break
		}
		gate.State = domain.GateAuthenticated
		gate.User = outcome.User
		gate.IsAdmin = outcome.User.IsSystemAdmin()

	case domain.OutcomeUnreachable:
		// Transient outage, not a logout. Carry the last resolved state
		// forward so a flaky backend does not flip a signed-in page.
		gate.Disconnected = true
		if prev, ok := s.lastGate(sessionID); ok {
			gate.State = prev.State
			gate.User = prev.User
			gate.IsAdmin = prev.IsAdmin
		} else {
			gate.State = domain.GateUnresolved
		}
	}

	s.cacheGate(sessionID, gen, gate)
	return gate
}

// Login authenticates against the core API and creates a fresh session.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	result, err := s.core.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	sessionID := uuid.NewString()
	rec := domain.SessionRecord{
		Token:    result.Token,
		Username: result.User.Username,
		UserID:   result.User.ID,
	}
	// The store write completes before the caller can issue any read.
	if err := s.store.Set(ctx, sessionID, rec); err != nil {
		return "", nil, err
	}

	s.emit(sessionID, rec, domain.AuditLogin)

	user := result.User
	return sessionID, &user, nil
}

// Logout clears the session. Idempotent: an absent or already-cleared session
// logs out to a no-op. The backend call is best effort.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	rec, _ := s.store.Get(ctx, sessionID)
	if rec.Token != "" {
		if err := s.core.Logout(ctx, rec.Token); err != nil {
			s.log.Debug().Err(err).Msg("backend logout failed, clearing local session anyway")
		}
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.last, sessionID)
	s.mu.Unlock()

	if !rec.IsEmpty() {
		s.emit(sessionID, rec, domain.AuditLogout)
	}
	return nil
}

// Record returns the durable session fields without a backend round trip.
func (s *SessionService) Record(ctx context.Context, sessionID string) domain.SessionRecord {
	rec, _ := s.store.Get(ctx, sessionID)
	return rec
}

func (s *SessionService) lastGate(sessionID string) (domain.Gate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.last[sessionID]
	return e.gate, ok
}

// cacheGate stores the snapshot unless a newer check for the same session has
// already landed.
func (s *SessionService) cacheGate(sessionID string, gen uint64, gate domain.Gate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.last[sessionID]; ok && e.gen > gen {
		return
	}
	if len(s.last) >= maxCachedGates {
		s.last = make(map[string]gateEntry)
	}
	s.last[sessionID] = gateEntry{gen: gen, gate: gate}
}

func (s *SessionService) emit(sessionID string, rec domain.SessionRecord, action domain.AuditAction) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		SessionID: sessionID,
		UserID:    rec.UserID,
		Username:  rec.Username,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}

var _ ports.SessionService = (*SessionService)(nil)
