package ports

import (
	"context"

	"github.com/NXFinity/beamify-application/internal/core/domain"
)

// LoginResult is the successful response of the core API's login endpoint.
type LoginResult struct {
	Token string
	User  domain.User
}

// InitAdminInput carries the fields of the one-time administrator setup form.
type InitAdminInput struct {
	Username string
	Email    string
	Password string
}

// CoreClient is the gateway's view of the Beamify core REST API. All methods
// take the visitor's bearer token where the endpoint requires one; an empty
// token omits the Authorization header.
//
// Business-rule failures surface as *domain.BackendError so the backend's own
// message can be shown next to the form that triggered the call. Transport
// failures surface as domain.ErrUnreachable (wrapped).
type CoreClient interface {
	// WhoAmI calls GET /users/me and classifies the response into exactly
	// one Outcome. It never returns an error: every failure mode is a
	// legal outcome of the session check.
	WhoAmI(ctx context.Context, token string) domain.Outcome

	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout tells the backend to invalidate the token. Best effort: the
	// caller clears local state regardless of the result.
	Logout(ctx context.Context, token string) error

	// AdminExists reports whether the one-time administrator setup has
	// happened. The endpoint answers 404 once an admin exists, and
	// 200 {adminExists} before that.
	AdminExists(ctx context.Context) (bool, error)
	InitAdmin(ctx context.Context, in InitAdminInput) error

	Register(ctx context.Context, username, email, password string) error
	Verify(ctx context.Context, email, token string) error
	Forgot(ctx context.Context, email string) error
	Reset(ctx context.Context, token, password string) error
	Resend(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
}
