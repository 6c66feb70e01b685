package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nesthome/nesthome-web/internal/api/metrics"
	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/service"
)

// PageHandler serves the public marketing pages.
type PageHandler struct {
	catalog *service.CatalogService
	contact *service.ContactService
}

func NewPageHandler(catalog *service.CatalogService, contact *service.ContactService) *PageHandler {
	return &PageHandler{catalog: catalog, contact: contact}
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", page(c, "Home Services, Handled"))
}

func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about", page(c, "About NestHome"))
}

func (h *PageHandler) Unauthorized(c echo.Context) error {
	return c.Render(http.StatusForbidden, "unauthorized", page(c, "Access Denied"))
}

// Services renders the catalog with optional search and category filters.
func (h *PageHandler) Services(c echo.Context) error {
	term := c.QueryParam("q")
	category := c.QueryParam("category")

	offerings, degraded := h.catalog.Search(c.Request().Context(), term, category)
	if degraded {
		metrics.CatalogFallbacksTotal.Inc()
	}

	data := page(c, "Our Services")
	data["Offerings"] = offerings
	data["Search"] = term
	data["Category"] = category
	return c.Render(http.StatusOK, "services", data)
}

type contactRequest struct {
	Name    string `form:"name"    validate:"required"`
	Email   string `form:"email"   validate:"required,email"`
	Subject string `form:"subject" validate:"required"`
	Message string `form:"message" validate:"required"`
}

// ContactForm renders the empty contact page.
func (h *PageHandler) ContactForm(c echo.Context) error {
	return c.Render(http.StatusOK, "contact", page(c, "Contact Us"))
}

// ContactSubmit validates and stores a lead, re-rendering the form with
// either a confirmation or the validation problem.
func (h *PageHandler) ContactSubmit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return h.contactError(c, http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return h.contactError(c, http.StatusBadRequest, err.Error())
	}

	msg := &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contact.Submit(c.Request().Context(), msg); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues("failed").Inc()
		return h.contactError(c, http.StatusInternalServerError, "Failed to send message. Please try again.")
	}

	metrics.ContactMessagesTotal.WithLabelValues("stored").Inc()
	data := page(c, "Contact Us")
	data["Success"] = true
	return c.Render(http.StatusOK, "contact", data)
}

func (h *PageHandler) contactError(c echo.Context, status int, msg string) error {
	data := page(c, "Contact Us")
	data["Error"] = msg
	return c.Render(status, "contact", data)
}
