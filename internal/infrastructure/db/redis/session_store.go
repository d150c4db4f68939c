package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

const defaultSessionTTL = 30 * 24 * time.Hour

const (
	fieldToken    = "token"
	fieldUsername = "username"
	fieldUserID   = "userId"
)

// SessionStore keeps the durable session fields in a Redis hash per session.
// Key format: session:<session_id>
//
// Per the store's contract a Redis outage on read is reported as the session
// being absent, so a storage blip degrades to "logged out" rather than a
// failed page load. Writes do fail loudly: a login that cannot persist its
// session must not pretend it succeeded.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewSessionStore wraps the given Redis client. A non-positive ttl falls back
// to 30 days; staleness beyond that is detected by the next who-am-I check
// anyway.
func NewSessionStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl, log: log}
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}

// Set writes token, username and userId in a single HSET and refreshes the TTL.
func (s *SessionStore) Set(ctx context.Context, sessionID string, rec domain.SessionRecord) error {
	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		fieldToken, rec.Token,
		fieldUsername, rec.Username,
		fieldUserID, rec.UserID,
	)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Get returns the stored record. Missing sessions and Redis failures both
// read as an empty record.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.SessionRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("session store unavailable, treating session as absent")
		}
		return domain.SessionRecord{}, nil
	}
	return domain.SessionRecord{
		Token:    fields[fieldToken],
		Username: fields[fieldUsername],
		UserID:   fields[fieldUserID],
	}, nil
}

// Clear removes the session. Absent sessions clear to a no-op.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
