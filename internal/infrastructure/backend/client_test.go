package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/NXFinity/beamify-application/internal/core/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "v1", srv.Client(), zerolog.Nop()), srv
}

func TestClassify_Priority(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   domain.OutcomeKind
	}{
		{"service unavailable", http.StatusServiceUnavailable, "", domain.OutcomeBootstrapping},
		{"message flagged 200", http.StatusOK, `{"message":"Admin account not initialized yet"}`, domain.OutcomeBootstrapping},
		{"message flagged wins over 401", http.StatusUnauthorized, `{"message":"Admin account not initialized"}`, domain.OutcomeBootstrapping},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthorized"}`, domain.OutcomeUnauthenticated},
		{"forbidden", http.StatusForbidden, "", domain.OutcomeUnauthenticated},
		{"authenticated", http.StatusOK, `{"_id":"1","username":"bob","roles":["USER"]}`, domain.OutcomeAuthenticated},
		{"ok but not a user", http.StatusOK, `{"unexpected":true}`, domain.OutcomeUnreachable},
		{"ok with invalid json", http.StatusOK, `not-json`, domain.OutcomeUnreachable},
		{"server error", http.StatusInternalServerError, "", domain.OutcomeUnreachable},
		{"bad gateway", http.StatusBadGateway, "", domain.OutcomeUnreachable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.status, []byte(tc.body))
			if got.Kind != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got.Kind)
			}
		})
	}
}

func TestClassify_AuthenticatedUser(t *testing.T) {
	body := `{"_id":"42","username":"alice","email":"a@example.com","roles":["SYSTEM_ADMINISTRATOR"]}`
	got := Classify(http.StatusOK, []byte(body))

	if got.Kind != domain.OutcomeAuthenticated {
		t.Fatalf("expected authenticated, got %v", got.Kind)
	}
	if got.User == nil || got.User.ID != "42" || got.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got.User)
	}
	if !got.User.IsSystemAdmin() {
		t.Fatalf("expected system admin")
	}
}

func TestWhoAmI_SendsBearerHeader(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/me" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"1","username":"bob"}`))
	})

	out := client.WhoAmI(context.Background(), "tok123")
	if out.Kind != domain.OutcomeAuthenticated {
		t.Fatalf("expected authenticated, got %v", out.Kind)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestWhoAmI_OmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	})

	out := client.WhoAmI(context.Background(), "")
	if out.Kind != domain.OutcomeUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", out.Kind)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestWhoAmI_TransportFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, "v1", srv.Client(), zerolog.Nop())
	srv.Close() // connection refused from here on

	out := client.WhoAmI(context.Background(), "tok")
	if out.Kind != domain.OutcomeUnreachable {
		t.Fatalf("expected unreachable, got %v", out.Kind)
	}
}

func TestLogin_Success(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc","user":{"_id":"1","username":"bob"}}`))
	})

	result, err := client.Login(context.Background(), "bob@example.com", "secret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.Token != "abc" || result.User.ID != "1" || result.User.Username != "bob" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestLogin_BackendMessageSurfaces(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
	})

	_, err := client.Login(context.Background(), "bob@example.com", "wrong")
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Status != http.StatusUnauthorized || be.Message != "Invalid email or password" {
		t.Fatalf("unexpected error: %+v", be)
	}
}

func TestLogin_MissingTokenIsFailure(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"_id":"1","username":"bob"}}`))
	})

	_, err := client.Login(context.Background(), "bob@example.com", "secret")
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Message != "Login failed" {
		t.Fatalf("expected fallback message, got %q", be.Message)
	}
}

func TestAdminExists(t *testing.T) {
	t.Run("404 means admin exists", func(t *testing.T) {
		client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		exists, err := client.AdminExists(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !exists {
			t.Fatalf("expected admin to exist")
		}
	})

	t.Run("200 reads adminExists field", func(t *testing.T) {
		client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"adminExists":false}`))
		})
		exists, err := client.AdminExists(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exists {
			t.Fatalf("expected no admin yet")
		}
	})

	t.Run("transport failure is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewClient(srv.URL, "v1", srv.Client(), zerolog.Nop())
		srv.Close()

		_, err := client.AdminExists(context.Background())
		if !errors.Is(err, domain.ErrUnreachable) {
			t.Fatalf("expected ErrUnreachable, got %v", err)
		}
	})
}

func TestChangePassword_PassesToken(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	if err := client.ChangePassword(context.Background(), "tok", "old", "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}
