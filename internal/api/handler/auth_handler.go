package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NXFinity/beamify-application/internal/api/middleware"
	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

// AuthHandler terminates the browser-facing auth endpoints and brokers the
// account flows to the core API.
type AuthHandler struct {
	sessions     ports.SessionService
	core         ports.CoreClient
	throttle     ports.LoginThrottle
	cookieSecret string
	cookieTTL    time.Duration
}

// NewAuthHandler builds an AuthHandler. throttle may be nil to disable login
// rate limiting.
func NewAuthHandler(sessions ports.SessionService, core ports.CoreClient, throttle ports.LoginThrottle, cookieSecret string, cookieTTL time.Duration) *AuthHandler {
	if cookieTTL <= 0 {
		cookieTTL = 30 * 24 * time.Hour
	}
	return &AuthHandler{
		sessions:     sessions,
		core:         core,
		throttle:     throttle,
		cookieSecret: cookieSecret,
		cookieTTL:    cookieTTL,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User *domain.User `json:"user"`
}

// Login authenticates against the core API and establishes the browser
// session. On success the session cookie is set and the store holds exactly
// token, username and userId. The raw bearer token never reaches the browser.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	ctx := c.Request().Context()

	if h.throttle != nil {
		ok, err := h.throttle.Allow(ctx, req.Email)
		if err == nil && !ok {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"message": domain.ErrTooManyAttempts.Error()})
		}
		// A broken throttle must not lock everyone out; fall through.
	}

	sessionID, user, err := h.sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	if h.throttle != nil {
		_ = h.throttle.Reset(ctx, req.Email)
	}

	cookie, err := middleware.NewSessionCookie(sessionID, h.cookieSecret, h.cookieTTL)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, loginResponse{User: user})
}

// Logout clears the session. Idempotent: logging out an anonymous visitor
// still answers 200 and leaves the store empty.
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := middleware.SessionIDFromRequest(c.Request(), h.cookieSecret)
	if err := h.sessions.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}
	c.SetCookie(middleware.ClearSessionCookie())
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	if err := h.core.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Registration successful"})
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	if err := h.core.Verify(c.Request().Context(), req.Email, req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Account verified"})
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) Forgot(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	if err := h.core.Forgot(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset email sent"})
}

type resetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Reset(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	if err := h.core.Reset(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset"})
}

func (h *AuthHandler) Resend(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	if err := h.core.Resend(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Verification email resent"})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword requires a live session; the stored bearer token carries the
// call to the core API.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	ctx := c.Request().Context()
	rec := h.sessions.Record(ctx, middleware.SessionIDFromRequest(c.Request(), h.cookieSecret))
	if rec.Token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	if err := h.core.ChangePassword(ctx, rec.Token, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed"})
}
