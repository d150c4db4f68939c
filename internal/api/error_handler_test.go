package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/core/domain"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_BackendErrorPassThrough(t *testing.T) {
	rec, body := handleError(t, &domain.BackendError{Status: 409, Message: "Email already registered"})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body["message"] != "Email already registered" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("backend failures must use the message envelope")
	}
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "unauthenticated", err: domain.ErrUnauthenticated, code: http.StatusUnauthorized},
		{name: "session not found", err: domain.ErrSessionNotFound, code: http.StatusUnauthorized},
		{name: "too many attempts", err: domain.ErrTooManyAttempts, code: http.StatusTooManyRequests},
		{name: "unreachable", err: domain.ErrUnreachable, code: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleError(t, tt.err)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if body["error"] == "" {
				t.Fatalf("expected error envelope, got %v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_EchoErrorPassThrough(t *testing.T) {
	rec, body := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["error"] != "Not Found" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec, body := handleError(t, errors.New("mongo: topology closed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal details must not leak: %v", body)
	}
}
