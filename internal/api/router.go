// Package api assembles the gateway's HTTP surface: the session gate, the
// auth and bootstrap endpoints, the core API proxy and the operational probes.
package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NXFinity/beamify-application/internal/api/handler"
	"github.com/NXFinity/beamify-application/internal/api/middleware"
	"github.com/NXFinity/beamify-application/internal/core/domain"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

// RouterConfig carries everything the router needs wired in.
type RouterConfig struct {
	Sessions  ports.SessionService
	Bootstrap ports.BootstrapService
	Core      ports.CoreClient
	Audit     ports.AuditRepository
	Throttle  ports.LoginThrottle

	Mongo *mongo.Database
	Redis *redis.Client

	CookieSecret string
	CookieTTL    time.Duration
	CoreBaseURL  string
	CoreVersion  string

	Log zerolog.Logger
}

// ungatedPrefixes are exempt from the session gate: operational probes, the
// form-submission endpoints (the pages hosting them are gated on navigation)
// and the setup flow, which must stay reachable with no session at all.
var ungatedPrefixes = []string{"/health", "/metrics", "/auth", "/init", "/assets"}

// protectedPrefixes require a resolved session; everything else is public.
var protectedPrefixes = []string{"/profile", "/settings", "/admin", "/api"}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("beamify"))

	e.Use(middleware.SessionGate(middleware.GateConfig{
		Service:           cfg.Sessions,
		CookieSecret:      cfg.CookieSecret,
		BootstrapPath:     "/init",
		LoginPath:         "/login",
		ProtectedPrefixes: protectedPrefixes,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			for _, p := range ungatedPrefixes {
				if path == p || strings.HasPrefix(path, p+"/") {
					return true
				}
			}
			return false
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Sessions, cfg.Core, cfg.Throttle, cfg.CookieSecret, cfg.CookieTTL)
	sessionHandler := handler.NewSessionHandler()
	bootstrapHandler := handler.NewBootstrapHandler(cfg.Bootstrap)
	auditHandler := handler.NewAuditHandler(cfg.Audit)
	pageHandler := handler.NewPageHandler()

	proxy, err := handler.NewProxy(cfg.CoreBaseURL, cfg.CoreVersion, cfg.Sessions, cfg.Log)
	if err != nil {
		return nil, err
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/verify", authHandler.Verify)
	e.POST("/auth/forgot", authHandler.Forgot)
	e.POST("/auth/reset", authHandler.Reset)
	e.POST("/auth/resend", authHandler.Resend)
	e.POST("/auth/change-password", authHandler.ChangePassword)

	// --- Session snapshot (gated; public pages read it too) ---
	e.GET("/session", sessionHandler.Snapshot)

	// --- One-time setup flow ---
	e.POST("/init", bootstrapHandler.Create)
	e.GET("/init/status", bootstrapHandler.Status)
	e.GET("/init/wait", bootstrapHandler.Wait)

	// --- Core API proxy for page traffic ---
	e.Any("/api/*", proxy.Handle)

	// --- Admin console endpoints ---
	admin := e.Group("/admin/api", middleware.RequireRoles(domain.RoleSystemAdmin))
	admin.GET("/audit", auditHandler.Recent)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Pages: everything else renders the application shell ---
	e.GET("/*", pageHandler.Page)

	return e, nil
}
