package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/api/metrics"
	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

const defaultPollInterval = time.Second

// BootstrapService drives the one-time administrator setup flow: creating the
// first SYSTEM_ADMINISTRATOR account and waiting for the backend to report it.
type BootstrapService struct {
	core     ports.CoreClient
	audit    ports.AuditSink
	interval time.Duration
	log      zerolog.Logger
}

// NewBootstrapService builds a BootstrapService. A non-positive interval
// falls back to one second. audit may be nil.
func NewBootstrapService(core ports.CoreClient, audit ports.AuditSink, interval time.Duration, log zerolog.Logger) *BootstrapService {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &BootstrapService{core: core, audit: audit, interval: interval, log: log}
}

// AdminExists reports whether the setup already happened.
func (s *BootstrapService) AdminExists(ctx context.Context) (bool, error) {
	return s.core.AdminExists(ctx)
}

// CreateAdmin registers the first administrator account.
func (s *BootstrapService) CreateAdmin(ctx context.Context, in ports.InitAdminInput) error {
	if err := s.core.InitAdmin(ctx, in); err != nil {
		return err
	}
	s.log.Info().Str("username", in.Username).Msg("system administrator created")
	if s.audit != nil {
		s.audit.Enqueue(domain.AuditEvent{
			SessionID: "bootstrap",
			Username:  in.Username,
			Action:    domain.AuditAdminCreated,
			Timestamp: time.Now().UTC(),
		})
	}
	return nil
}

// WaitForAdmin polls the admin-exists check on the configured interval until
// the backend confirms the account, returning nil. There is no attempt
// ceiling; the loop is bounded by ctx, which the caller cancels on teardown.
func (s *BootstrapService) WaitForAdmin(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		exists, err := s.core.AdminExists(ctx)
		switch {
		case err != nil:
			metrics.BootstrapPollsTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("admin-exists poll failed")
		case exists:
			metrics.BootstrapPollsTotal.WithLabelValues("exists").Inc()
			return nil
		default:
			metrics.BootstrapPollsTotal.WithLabelValues("pending").Inc()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
