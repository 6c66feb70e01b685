package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nesthome/nesthome-web/internal/api/metrics"
	"github.com/nesthome/nesthome-web/internal/api/middleware"
	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
	"github.com/nesthome/nesthome-web/internal/core/service"
	"github.com/nesthome/nesthome-web/internal/session"
)

// AuthHandler serves the login and register forms and the logout action.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerRequest struct {
	Username        string `form:"username"         validate:"required"`
	Email           string `form:"email"            validate:"required,email"`
	Password        string `form:"password"         validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `form:"role"             validate:"required,oneof=USER PROFESSIONAL"`
	Address         string `form:"address"`
	Pincode         int    `form:"pincode"`
	Services        string `form:"services"`
}

// LoginForm renders the login page, passing the post-login destination
// through. An already authenticated browser skips straight to it.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	manager := middleware.Manager(c)
	if manager.State() == service.StateAuthenticated {
		return c.Redirect(http.StatusSeeOther, safeRedirect(c.QueryParam("redirect"), roleDestination(manager.Identity())))
	}

	data := page(c, "Sign In")
	data["Redirect"] = c.QueryParam("redirect")
	return c.Render(http.StatusOK, "login", data)
}

// Login handles the form POST. A rejected attempt re-renders the form with
// the auth error inline; the session and flag are untouched on failure.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.loginError(c, http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return h.loginError(c, http.StatusBadRequest, err.Error())
	}

	manager := middleware.Manager(c)
	identity, err := manager.Login(c.Request().Context(), session.NewFlags(c), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return h.loginError(c, http.StatusUnauthorized, err.Error())
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusSeeOther, safeRedirect(c.FormValue("redirect"), roleDestination(identity)))
}

func (h *AuthHandler) loginError(c echo.Context, status int, msg string) error {
	data := page(c, "Sign In")
	data["Error"] = msg
	data["Redirect"] = c.FormValue("redirect")
	return c.Render(status, "login", data)
}

// RegisterForm renders the signup page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	manager := middleware.Manager(c)
	if manager.State() == service.StateAuthenticated {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "register", page(c, "Create Account"))
}

// Register handles the signup POST. Success logs the new account in and
// lands it on its dashboard, professionals on theirs.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return h.registerError(c, http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return h.registerError(c, http.StatusBadRequest, err.Error())
	}

	form := ports.RegisterForm{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		Address:    req.Address,
		Pincode:    req.Pincode,
		Role:       req.Role,
		ServiceIDs: parseServiceIDs(req.Services),
	}

	manager := middleware.Manager(c)
	if _, err := manager.Register(c.Request().Context(), session.NewFlags(c), form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return h.registerError(c, http.StatusBadRequest, err.Error())
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	if req.Role == domain.RoleProfessional {
		return c.Redirect(http.StatusSeeOther, "/professional")
	}
	return c.Redirect(http.StatusSeeOther, "/user")
}

func (h *AuthHandler) registerError(c echo.Context, status int, msg string) error {
	data := page(c, "Create Account")
	data["Error"] = msg
	return c.Render(status, "register", data)
}

// Logout always succeeds from the browser's perspective.
func (h *AuthHandler) Logout(c echo.Context) error {
	manager := middleware.Manager(c)
	manager.Logout(c.Request().Context(), session.NewFlags(c))
	return c.Redirect(http.StatusSeeOther, "/")
}

// safeRedirect keeps the post-login hop on-site: only rooted local paths
// pass, anything else falls back.
func safeRedirect(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		return target
	}
	return fallback
}

// roleDestination picks the landing page for an identity without an
// explicit redirect.
func roleDestination(id *domain.Identity) string {
	switch {
	case id.HasRole(domain.RoleAdmin):
		return "/admin"
	case id.HasRole(domain.RoleProfessional):
		return "/professional"
	case id.HasRole(domain.RoleUser):
		return "/user"
	default:
		return "/"
	}
}

// parseServiceIDs tolerates a comma-separated ID list from the signup
// form; malformed entries are skipped.
func parseServiceIDs(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
