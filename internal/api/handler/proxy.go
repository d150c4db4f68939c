package handler

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/api/middleware"
	"github.com/NXFinity/beamify-application/internal/core/ports"
)

// Proxy forwards page API traffic (/api/...) to the core API, swapping the
// browser's session cookie for the stored bearer token. Profile, shop, admin
// and payment pages all speak the core API's own contract through it.
type Proxy struct {
	target   *url.URL
	version  string
	sessions ports.SessionService
	rp       *httputil.ReverseProxy
}

// NewProxy builds a Proxy for the given core API base URL and version prefix.
func NewProxy(baseURL, version string, sessions ports.SessionService, log zerolog.Logger) (*Proxy, error) {
	target, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	p := &Proxy{target: target, version: strings.Trim(version, "/"), sessions: sessions}
	p.rp = &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.URL.Path = "/" + p.version + strings.TrimPrefix(r.In.URL.Path, "/api")
			r.Out.Host = target.Host
			// The session cookie is gateway-internal; the backend only
			// ever sees the bearer token.
			r.Out.Header.Del("Cookie")
			if token, ok := r.In.Context().Value(proxyTokenKey{}).(string); ok && token != "" {
				r.Out.Header.Set("Authorization", "Bearer "+token)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("core api proxy failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"core api unreachable"}`))
		},
	}
	return p, nil
}

type proxyTokenKey struct{}

func contextWithProxyToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, proxyTokenKey{}, token)
}

// Handle satisfies echo.HandlerFunc for the /api/* catch-all route.
func (p *Proxy) Handle(c echo.Context) error {
	req := c.Request()

	token := ""
	if sid := middleware.SessionIDFromContext(c); sid != "" {
		token = p.sessions.Record(req.Context(), sid).Token
	}

	ctx := contextWithProxyToken(req.Context(), token)
	p.rp.ServeHTTP(c.Response(), req.WithContext(ctx))
	return nil
}
