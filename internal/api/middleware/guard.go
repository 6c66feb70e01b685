package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/nesthome/nesthome-web/internal/api/metrics"
	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/service"
)

// Decision is the route guard's verdict for one navigation.
type Decision int

const (
	// DecisionPending means the session is still bootstrapping; render
	// nothing conclusive and never redirect.
	DecisionPending Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectUnauthorized
)

// Decide is the pure access rule. An empty required set means "any
// authenticated user".
func Decide(state service.SessionState, identity *domain.Identity, required []string) Decision {
	switch state {
	case service.StateBootstrapping:
		return DecisionPending
	case service.StateAnonymous:
		return DecisionRedirectLogin
	}

	if identity == nil {
		return DecisionRedirectLogin
	}
	if len(required) == 0 {
		return DecisionAllow
	}
	for _, role := range required {
		if identity.HasRole(role) {
			return DecisionAllow
		}
	}
	return DecisionRedirectUnauthorized
}

// Guard protects a route behind the required roles. It consumes the
// AuthManager attached by AuthSession; a login redirect preserves the
// originally requested path for the post-login hop.
func Guard(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			manager := Manager(c)
			if manager == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "auth session not initialised")
			}

			switch Decide(manager.State(), manager.Identity(), required) {
			case DecisionAllow:
				metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			case DecisionRedirectLogin:
				metrics.GuardDecisionsTotal.WithLabelValues("login_redirect").Inc()
				target := "/login?redirect=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusSeeOther, target)
			case DecisionRedirectUnauthorized:
				metrics.GuardDecisionsTotal.WithLabelValues("unauthorized_redirect").Inc()
				return c.Redirect(http.StatusSeeOther, "/unauthorized")
			default:
				// Bootstrap runs before guards, so Pending only means a
				// concurrent bootstrap raced us. Ask the browser to retry
				// rather than flashing a login redirect.
				c.Response().Header().Set("Retry-After", "1")
				return c.String(http.StatusServiceUnavailable, "Loading…")
			}
		}
	}
}
