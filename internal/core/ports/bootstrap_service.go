package ports

import "context"

// BootstrapService drives the one-time administrator setup flow.
type BootstrapService interface {
	AdminExists(ctx context.Context) (bool, error)
	CreateAdmin(ctx context.Context, in InitAdminInput) error
	// WaitForAdmin blocks until the backend reports an administrator
	// account, polling on a fixed interval. Bounded by ctx only.
	WaitForAdmin(ctx context.Context) error
}

// LoginThrottle guards the login endpoint against credential stuffing.
type LoginThrottle interface {
	// Allow records one attempt and reports whether it is within budget.
	Allow(ctx context.Context, email string) (bool, error)
	// Reset forgets the email's attempts after a successful login.
	Reset(ctx context.Context, email string) error
}
