package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/api/handler"
	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
	"github.com/nesthome/nesthome-web/internal/core/service"
	websession "github.com/nesthome/nesthome-web/internal/session"
)

// downGateway answers like an unreachable upstream: anonymous sessions and
// no catalog.
type downGateway struct{}

func (downGateway) SessionCheck(context.Context) (*ports.SessionCheck, error) {
	return &ports.SessionCheck{}, nil
}

func (downGateway) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return nil, domain.ErrUpstreamUnavailable
}

func (downGateway) Register(context.Context, ports.RegisterForm) (*ports.AuthResult, error) {
	return nil, domain.ErrUpstreamUnavailable
}

func (downGateway) Logout(context.Context) error { return nil }

func (downGateway) AllServices(context.Context) ([]domain.ServiceOffering, error) {
	return nil, domain.ErrUpstreamUnavailable
}

// The router registers Prometheus collectors against the default registry,
// so the test binary builds it exactly once.
var (
	routerOnce sync.Once
	testRouter *echo.Echo
	routerErr  error
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		gw := downGateway{}
		registry := websession.NewRegistry(func() (*websession.Browser, error) {
			return &websession.Browser{Manager: service.NewAuthManager(gw, zerolog.Nop())}, nil
		}, zerolog.Nop())

		testRouter, routerErr = NewRouter(Dependencies{
			Registry: registry,
			Catalog:  service.NewCatalogService(gw, nil, zerolog.Nop()),
			Contact:  service.NewContactService(service.NewContactLogSink(zerolog.Nop()), zerolog.Nop()),
			Store:    websession.NewStore("test-secret"),
			Log:      zerolog.Nop(),
		})
	})
	if routerErr != nil {
		t.Fatalf("NewRouter: %v", routerErr)
	}
	return testRouter
}

func TestRouter_UnknownPathRedirectsHome(t *testing.T) {
	e := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/definitely-not-a-route", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("expected redirect to /, got %q", got)
	}
}

func TestRouter_OperationalNotFoundIsJSON(t *testing.T) {
	e := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health/nonexistent", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("operational 404 must not redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Fatalf("expected no redirect, got %q", loc)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON envelope, got %q: %v", rec.Body.String(), err)
	}
	if resp.Error == "" {
		t.Fatalf("expected an error message in the envelope")
	}
}

func TestRouter_DegradedCatalogStillRenders(t *testing.T) {
	e := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from the fallback catalog, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Home Cleaning") {
		t.Fatalf("fallback offerings missing from the page")
	}
}

func newErrorHandlerContext(t *testing.T, target string) (echo.HTTPErrorHandler, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	renderer, err := handler.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	e.Renderer = renderer

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return NewHTTPErrorHandler(zerolog.Nop()), e.NewContext(req, rec), rec
}

func TestErrorHandler_UpstreamErrorRendersErrorPage(t *testing.T) {
	h, c, rec := newErrorHandlerContext(t, "/services")

	h(domain.ErrUpstreamUnavailable, c)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "temporarily unavailable") {
		t.Fatalf("error page missing the upstream message: %q", rec.Body.String())
	}
}

func TestErrorHandler_UnexpectedErrorHidesDetails(t *testing.T) {
	h, c, rec := newErrorHandlerContext(t, "/contact")

	h(errors.New("pq: connection reset"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal error details leaked to the page")
	}
}

func TestErrorHandler_HealthErrorsUseJSONEnvelope(t *testing.T) {
	h, c, rec := newErrorHandlerContext(t, "/health/ready")

	h(errors.New("redis gone"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON envelope, got %q: %v", rec.Body.String(), err)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("unexpected envelope message: %q", resp.Error)
	}
}
