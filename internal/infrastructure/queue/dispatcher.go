// Package queue implements the asynchronous audit trail writer.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/api/metrics"
	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// AuditDispatcher routes session audit events to a fixed set of workers using
// consistent hashing on the session ID, guaranteeing per-session ordering in
// the trail. Persistence failures are logged, never surfaced to the session
// flow.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its session. When the
// worker's buffer is full the event is dropped rather than stalling a login
// or logout on the audit trail.
func (d *AuditDispatcher) Enqueue(event domain.AuditEvent) {
	select {
	case d.workers[d.shardIndex(event.SessionID)] <- event:
		metrics.AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()
	default:
		d.log.Warn().
			Str("session_id", event.SessionID).
			Str("action", string(event.Action)).
			Msg("audit queue full, event dropped")
		metrics.AuditEventsDroppedTotal.Inc()
	}
}

// shardIndex maps a session ID deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("session_id", event.SessionID).
					Int("worker_id", id).
					Msg("audit event persistence failed")
			}
		}
	}
}

var _ ports.AuditSink = (*AuditDispatcher)(nil)
