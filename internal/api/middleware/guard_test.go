package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
	"github.com/nesthome/nesthome-web/internal/core/service"
	websession "github.com/nesthome/nesthome-web/internal/session"
)

type fixedGateway struct {
	check ports.SessionCheck
}

func (g *fixedGateway) SessionCheck(context.Context) (*ports.SessionCheck, error) {
	return &g.check, nil
}

func (g *fixedGateway) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return &ports.AuthResult{}, nil
}

func (g *fixedGateway) Register(context.Context, ports.RegisterForm) (*ports.AuthResult, error) {
	return &ports.AuthResult{}, nil
}

func (g *fixedGateway) Logout(context.Context) error { return nil }

type memFlags struct{ set bool }

func (f *memFlags) SetLoggedInFlag()        { f.set = true }
func (f *memFlags) ClearLoggedInFlag()      { f.set = false }
func (f *memFlags) IsLoggedInFlagSet() bool { return f.set }

// authenticatedManager returns a manager bootstrapped into the
// authenticated state with the given role tokens.
func authenticatedManager(roles ...string) *service.AuthManager {
	m := service.NewAuthManager(&fixedGateway{
		check: ports.SessionCheck{Authenticated: true, Username: "alice", Roles: roles},
	}, zerolog.Nop())
	m.EnsureBootstrapped(context.Background(), &memFlags{set: true})
	return m
}

func anonymousManager() *service.AuthManager {
	m := service.NewAuthManager(&fixedGateway{}, zerolog.Nop())
	m.EnsureBootstrapped(context.Background(), &memFlags{})
	return m
}

func TestDecide(t *testing.T) {
	admin := &domain.Identity{Username: "alice", Roles: []string{"ROLE_ADMIN"}}

	cases := []struct {
		name     string
		state    service.SessionState
		identity *domain.Identity
		required []string
		want     Decision
	}{
		{"bootstrapping never redirects", service.StateBootstrapping, nil, []string{domain.RoleAdmin}, DecisionPending},
		{"bootstrapping with no requirement", service.StateBootstrapping, nil, nil, DecisionPending},
		{"anonymous goes to login", service.StateAnonymous, nil, []string{domain.RoleUser}, DecisionRedirectLogin},
		{"authenticated without identity", service.StateAuthenticated, nil, nil, DecisionRedirectLogin},
		{"any authenticated user", service.StateAuthenticated, admin, nil, DecisionAllow},
		{"exact token", service.StateAuthenticated, admin, []string{"ROLE_ADMIN"}, DecisionAllow},
		{"prefixed token satisfies", service.StateAuthenticated, admin, []string{domain.RoleAdmin}, DecisionAllow},
		{"role missing", service.StateAuthenticated, admin, []string{domain.RoleUser}, DecisionRedirectUnauthorized},
		{"any of several roles", service.StateAuthenticated, admin, []string{domain.RoleUser, domain.RoleAdmin}, DecisionAllow},
	}

	for _, tc := range cases {
		if got := Decide(tc.state, tc.identity, tc.required); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func newGuardContext(t *testing.T, target string, manager *service.AuthManager) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if manager != nil {
		WithBrowser(c, &websession.Browser{Manager: manager})
	}
	return c, rec
}

func TestGuard_AllowsMatchingRole(t *testing.T) {
	c, rec := newGuardContext(t, "/admin", authenticatedManager("ROLE_ADMIN"))

	called := false
	handler := Guard(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_AnonymousRedirectsToLoginWithReturnPath(t *testing.T) {
	c, rec := newGuardContext(t, "/user?tab=bookings", anonymousManager())

	handler := Guard(domain.RoleUser)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	want := "/login?redirect=" + "%2Fuser%3Ftab%3Dbookings"
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("expected redirect to %q, got %q", want, got)
	}
}

func TestGuard_WrongRoleRedirectsToUnauthorized(t *testing.T) {
	c, rec := newGuardContext(t, "/admin", authenticatedManager("ROLE_USER"))

	handler := Guard(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/unauthorized" {
		t.Fatalf("expected /unauthorized, got %q", got)
	}
}

func TestGuard_BootstrappingNeverRedirects(t *testing.T) {
	manager := service.NewAuthManager(&fixedGateway{}, zerolog.Nop())
	c, rec := newGuardContext(t, "/user", manager)

	handler := Guard(domain.RoleUser)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while bootstrapping, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Fatalf("bootstrapping must not redirect, got %q", loc)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestGuard_MissingSessionIsServerError(t *testing.T) {
	c, _ := newGuardContext(t, "/user", nil)

	handler := Guard(domain.RoleUser)(func(c echo.Context) error { return nil })

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
}
