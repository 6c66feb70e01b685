package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nesthome/nesthome-web/internal/api/metrics"
	"github.com/nesthome/nesthome-web/internal/core/service"
	"github.com/nesthome/nesthome-web/internal/session"
)

const browserContextKey = "browser_session"

// AuthSession resolves the browser's session ID, attaches its per-browser
// state to the request context, and runs the one-time bootstrap before any
// handler or guard sees the request. That sequencing is what guarantees a
// guard never decides while the session check is outstanding.
func AuthSession(registry *session.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := session.SessionID(c)
			browser, err := registry.Browser(sid)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}

			flags := session.NewFlags(c)
			wasBootstrapping := browser.Manager.State() == service.StateBootstrapping
			flagWasSet := flags.IsLoggedInFlagSet()

			browser.Manager.EnsureBootstrapped(c.Request().Context(), flags)

			if wasBootstrapping {
				outcome := browser.Manager.State().String()
				if !flagWasSet {
					outcome = "skipped"
				}
				metrics.BootstrapsTotal.WithLabelValues(outcome).Inc()
			}

			WithBrowser(c, browser)
			return next(c)
		}
	}
}

// WithBrowser attaches per-browser state to the request context.
func WithBrowser(c echo.Context, b *session.Browser) {
	c.Set(browserContextKey, b)
}

// Browser extracts the per-browser state attached by AuthSession; nil when
// the middleware did not run for this route.
func Browser(c echo.Context) *session.Browser {
	b, _ := c.Get(browserContextKey).(*session.Browser)
	return b
}

// Manager is a shortcut for Browser(c).Manager, nil-safe.
func Manager(c echo.Context) *service.AuthManager {
	if b := Browser(c); b != nil {
		return b.Manager
	}
	return nil
}
