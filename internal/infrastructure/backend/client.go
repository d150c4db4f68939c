// Package backend implements the HTTP client for the Beamify core API, the
// single collaborator all session and account operations go through.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client talks to the core REST API at <baseURL>/<version>/...
type Client struct {
	baseURL string
	version string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client. A nil httpc falls back to a client with the
// default timeout.
func NewClient(baseURL, version string, httpc *http.Client, log zerolog.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: strings.Trim(version, "/"),
		httpc:   httpc,
		log:     log,
	}
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s%s", c.baseURL, c.version, path)
}

// do performs one JSON request and returns status plus the (bounded) body.
// The returned error covers transport and encoding failures only; HTTP error
// statuses are the caller's business.
func (c *Client) do(ctx context.Context, method, path string, payload any, token string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s payload: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return res.StatusCode, raw, nil
}

// message pulls the backend's `message` field out of an arbitrary body.
// The core API mixes response shapes, so this never assumes a schema.
func message(body []byte) string {
	return gjson.GetBytes(body, "message").String()
}

// WhoAmI resolves the current session state with one GET /users/me call.
// Every failure mode maps to a legal outcome, so no error is returned.
func (c *Client) WhoAmI(ctx context.Context, token string) domain.Outcome {
	status, body, err := c.do(ctx, http.MethodGet, "/users/me", nil, token)
	if err != nil {
		c.log.Warn().Err(err).Msg("who-am-i check unreachable")
		return domain.Outcome{Kind: domain.OutcomeUnreachable}
	}
	return Classify(status, body)
}

// Classify maps one who-am-I response to its outcome. Priority order matters:
// the backend signals the uninitialized state either via 503 or via a
// message-flagged 200, and both forms occur in the wild.
func Classify(status int, body []byte) domain.Outcome {
	if status == http.StatusServiceUnavailable {
		return domain.Outcome{Kind: domain.OutcomeBootstrapping}
	}
	if strings.Contains(message(body), "Admin account not initialized") {
		return domain.Outcome{Kind: domain.OutcomeBootstrapping}
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return domain.Outcome{Kind: domain.OutcomeUnauthenticated}
	}
	if status == http.StatusOK {
		var u domain.User
		if err := json.Unmarshal(body, &u); err != nil || u.ID == "" {
			return domain.Outcome{Kind: domain.OutcomeUnreachable}
		}
		return domain.Outcome{Kind: domain.OutcomeAuthenticated, User: &u}
	}
	return domain.Outcome{Kind: domain.OutcomeUnreachable}
}

func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	status, body, err := c.do(ctx, http.MethodPost, "/auth/login", payload, "")
	if err != nil {
		return nil, fmt.Errorf("login: %w", domain.ErrUnreachable)
	}
	if status != http.StatusOK {
		return nil, domain.NewBackendError(status, message(body), "Login failed")
	}

	var result struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Token == "" {
		return nil, domain.NewBackendError(status, "", "Login failed")
	}
	return &ports.LoginResult{Token: result.Token, User: result.User}, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.post(ctx, "/auth/logout", nil, token, "Logout failed")
}

// AdminExists probes GET /auth/init-admin. The endpoint answers 404 once an
// administrator exists; before that it answers 200 with {adminExists}.
func (c *Client) AdminExists(ctx context.Context) (bool, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/auth/init-admin", nil, "")
	if err != nil {
		return false, fmt.Errorf("admin check: %w", domain.ErrUnreachable)
	}
	if status == http.StatusNotFound {
		return true, nil
	}
	if status != http.StatusOK {
		return false, nil
	}
	return gjson.GetBytes(body, "adminExists").Bool(), nil
}

func (c *Client) InitAdmin(ctx context.Context, in ports.InitAdminInput) error {
	payload := map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	}
	return c.post(ctx, "/auth/init-admin", payload, "", "Init admin failed")
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}
	return c.post(ctx, "/auth/register", payload, "", "Registration failed")
}

func (c *Client) Verify(ctx context.Context, email, token string) error {
	return c.post(ctx, "/auth/verify", map[string]string{"email": email, "token": token}, "", "Verification failed")
}

func (c *Client) Forgot(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot", map[string]string{"email": email}, "", "Forgot password failed")
}

func (c *Client) Reset(ctx context.Context, token, password string) error {
	return c.post(ctx, "/auth/reset", map[string]string{"token": token, "password": password}, "", "Reset password failed")
}

func (c *Client) Resend(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/resend", map[string]string{"email": email}, "", "Resend verification failed")
}

func (c *Client) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	payload := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.post(ctx, "/auth/change-password", payload, token, "Change password failed")
}

// post issues a fire-and-confirm call: any 2xx is success, any other status
// surfaces as a BackendError carrying the backend's message.
func (c *Client) post(ctx context.Context, path string, payload any, token, fallback string) error {
	status, body, err := c.do(ctx, http.MethodPost, path, payload, token)
	if err != nil {
		return fmt.Errorf("%s: %w", path, domain.ErrUnreachable)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return domain.NewBackendError(status, message(body), fallback)
	}
	return nil
}

var _ ports.CoreClient = (*Client)(nil)
