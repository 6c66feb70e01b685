package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/domain"
)

// errorResponse is the JSON envelope used on the operational routes.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders an HTML error page for browser-facing routes and the JSON
//     envelope for /health and /metrics.
//   - Redirects unknown page paths to the public home page.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		// c.Path() is the route pattern ("/*" for unmatched requests), so
		// the page/operational split keys off the requested URL instead.
		path := c.Request().URL.Path

		// Unknown paths go home rather than to a 404 page.
		if code == http.StatusNotFound && !isOperational(path) {
			_ = c.Redirect(http.StatusSeeOther, "/")
			return
		}

		if isOperational(path) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		data := map[string]any{
			"Title":   "Something went wrong",
			"Status":  code,
			"Message": msg,
		}
		if renderErr := c.Render(code, "error", data); renderErr != nil {
			_ = c.String(code, msg)
		}
	}
}

func isOperational(path string) bool {
	return strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/metrics")
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("upstream unavailable")
		return http.StatusBadGateway, "the service is temporarily unavailable"
	}
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return http.StatusUnauthorized, "please sign in"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
