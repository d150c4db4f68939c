// Package middleware implements the session gate: the per-request decision
// between rendering, redirecting to login, and redirecting to the one-time
// setup page.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NXFinity/beamify-application/internal/api/metrics"
	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

const (
	ctxGateKey      = "gate"
	ctxSessionIDKey = "session_id"

	// HeaderDisconnected tells the page to show the offline banner. Distinct
	// from logged-out: the stored session is intact.
	HeaderDisconnected = "X-Beamify-Disconnected"
)

// GateConfig wires the session gate middleware.
type GateConfig struct {
	Service      ports.SessionService
	CookieSecret string

	// BootstrapPath is always renderable and skips the session check
	// entirely; defaults to /init.
	BootstrapPath string
	// LoginPath receives visitors bounced off protected routes; defaults
	// to /login.
	LoginPath string
	// ProtectedPrefixes are the route prefixes that require a session.
	// Everything else is public.
	ProtectedPrefixes []string

	// Skipper exempts a request from gating altogether (health, metrics).
	Skipper func(c echo.Context) bool
}

// SessionGate resolves the session once per request and enforces the three
// route classes.
//
// Precedence: a bootstrap-pending backend redirects every route except the
// setup page itself (no redirect loop). A missing session redirects protected
// routes to login, but only after the check has resolved. A transport failure
// redirects nothing; it raises the disconnected flag and leaves the stored
// session alone.
func SessionGate(cfg GateConfig) echo.MiddlewareFunc {
	if cfg.BootstrapPath == "" {
		cfg.BootstrapPath = "/init"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			path := c.Request().URL.Path
			if routeMatches(path, cfg.BootstrapPath) {
				return next(c)
			}

			sessionID := SessionIDFromRequest(c.Request(), cfg.CookieSecret)
			c.Set(ctxSessionIDKey, sessionID)

			gate := cfg.Service.Resolve(c.Request().Context(), sessionID)
			c.Set(ctxGateKey, gate)

			if gate.Disconnected {
				c.Response().Header().Set(HeaderDisconnected, "true")
			}

			if gate.State == domain.GateBootstrapPending {
				metrics.GateRedirectsTotal.WithLabelValues("init").Inc()
				return c.Redirect(http.StatusSeeOther, cfg.BootstrapPath)
			}

			if isProtected(path, cfg.ProtectedPrefixes) && !(gate.Checked && gate.HasToken) {
				metrics.GateRedirectsTotal.WithLabelValues("login").Inc()
				return c.Redirect(http.StatusSeeOther, cfg.LoginPath)
			}

			return next(c)
		}
	}
}

// GateFromContext returns the gate snapshot stored by SessionGate.
func GateFromContext(c echo.Context) (domain.Gate, bool) {
	gate, ok := c.Get(ctxGateKey).(domain.Gate)
	return gate, ok
}

// SessionIDFromContext returns the verified session ID, possibly empty.
func SessionIDFromContext(c echo.Context) string {
	sid, _ := c.Get(ctxSessionIDKey).(string)
	return sid
}

func isProtected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if routeMatches(path, p) {
			return true
		}
	}
	return false
}

// routeMatches treats a prefix as a route subtree: /admin matches /admin and
// /admin/users but not /administrator.
func routeMatches(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
