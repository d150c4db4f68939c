package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

type stubBootstrapCore struct {
	ports.CoreClient
	adminExistsFn func(ctx context.Context) (bool, error)
	initAdminFn   func(ctx context.Context, in ports.InitAdminInput) error
}

func (s *stubBootstrapCore) AdminExists(ctx context.Context) (bool, error) {
	return s.adminExistsFn(ctx)
}

func (s *stubBootstrapCore) InitAdmin(ctx context.Context, in ports.InitAdminInput) error {
	return s.initAdminFn(ctx, in)
}

func TestWaitForAdmin_ReturnsOnceAdminExists(t *testing.T) {
	var polls atomic.Int32
	core := &stubBootstrapCore{
		adminExistsFn: func(ctx context.Context) (bool, error) {
			return polls.Add(1) >= 3, nil
		},
	}
	svc := NewBootstrapService(core, nil, time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := svc.WaitForAdmin(ctx); err != nil {
		t.Fatalf("wait errored: %v", err)
	}
	if got := polls.Load(); got != 3 {
		t.Fatalf("expected 3 polls, got %d", got)
	}
}

func TestWaitForAdmin_StopsOnContextCancel(t *testing.T) {
	core := &stubBootstrapCore{
		adminExistsFn: func(ctx context.Context) (bool, error) {
			return false, nil
		},
	}
	svc := NewBootstrapService(core, nil, time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.WaitForAdmin(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if err == nil {
			t.Fatalf("expected context error")
		}
	case <-time.After(time.Second):
		t.Fatalf("wait did not stop after cancel")
	}
}

func TestWaitForAdmin_SurvivesPollErrors(t *testing.T) {
	var polls atomic.Int32
	core := &stubBootstrapCore{
		adminExistsFn: func(ctx context.Context) (bool, error) {
			switch polls.Add(1) {
			case 1:
				return false, domain.ErrUnreachable
			default:
				return true, nil
			}
		},
	}
	svc := NewBootstrapService(core, nil, time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := svc.WaitForAdmin(ctx); err != nil {
		t.Fatalf("wait errored: %v", err)
	}
}

func TestCreateAdmin_EmitsAuditEvent(t *testing.T) {
	var created ports.InitAdminInput
	core := &stubBootstrapCore{
		initAdminFn: func(ctx context.Context, in ports.InitAdminInput) error {
			created = in
			return nil
		},
	}
	sink := &recordingSink{}
	svc := NewBootstrapService(core, sink, time.Second, zerolog.Nop())

	in := ports.InitAdminInput{Username: "root", Email: "root@example.com", Password: "strongpass"}
	if err := svc.CreateAdmin(context.Background(), in); err != nil {
		t.Fatalf("create errored: %v", err)
	}
	if created != in {
		t.Fatalf("unexpected input forwarded: %+v", created)
	}
	actions := sink.actions()
	if len(actions) != 1 || actions[0] != domain.AuditAdminCreated {
		t.Fatalf("expected admin_created audit, got %v", actions)
	}
}

func TestCreateAdmin_BackendFailurePropagates(t *testing.T) {
	core := &stubBootstrapCore{
		initAdminFn: func(ctx context.Context, in ports.InitAdminInput) error {
			return &domain.BackendError{Status: 409, Message: "Admin already exists"}
		},
	}
	sink := &recordingSink{}
	svc := NewBootstrapService(core, sink, time.Second, zerolog.Nop())

	err := svc.CreateAdmin(context.Background(), ports.InitAdminInput{Username: "root"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(sink.actions()) != 0 {
		t.Fatalf("failed create must not emit audit events")
	}
}
