package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nesthome/nesthome-web/internal/api/middleware"
	"github.com/nesthome/nesthome-web/internal/core/domain"
)

// DashboardHandler serves the three role-gated dashboards. Like the pages
// it replaces, it substitutes demo rows when the upstream returns nothing,
// so a half-down API still yields a usable screen.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

func (h *DashboardHandler) User(c echo.Context) error {
	browser := middleware.Browser(c)
	d, err := browser.Dashboard.UserDashboard(c.Request().Context())
	if err != nil || d == nil {
		d = &domain.UserDashboard{}
	}
	if len(d.Requests) == 0 {
		d.Requests = demoServiceRequests
	}

	data := page(c, "My Dashboard")
	data["Stats"] = d.Stats
	data["Requests"] = d.Requests
	return c.Render(http.StatusOK, "dashboard_user", data)
}

func (h *DashboardHandler) Professional(c echo.Context) error {
	browser := middleware.Browser(c)
	d, err := browser.Dashboard.ProfessionalDashboard(c.Request().Context())
	if err != nil || d == nil {
		d = &domain.ProfessionalDashboard{}
	}
	if len(d.Upcoming) == 0 {
		d.Upcoming = demoUpcomingRequests
	}
	if len(d.Services) == 0 {
		d.Services = demoProfessionalServices
	}

	data := page(c, "Professional Dashboard")
	data["Stats"] = d.Stats
	data["Upcoming"] = d.Upcoming
	data["Services"] = d.Services
	return c.Render(http.StatusOK, "dashboard_professional", data)
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	browser := middleware.Browser(c)
	d, err := browser.Dashboard.AdminDashboard(c.Request().Context())
	if err != nil || d == nil {
		d = &domain.AdminDashboard{}
	}
	if len(d.Users) == 0 {
		d.Users = demoAccounts
	}
	if len(d.Categories) == 0 {
		d.Categories = demoCategories
	}

	data := page(c, "Admin Dashboard")
	data["Stats"] = d.Stats
	data["Users"] = d.Users
	data["Categories"] = d.Categories
	return c.Render(http.StatusOK, "dashboard_admin", data)
}

var demoServiceRequests = []domain.ServiceRequest{
	{ID: 1, Service: "Plumbing Repair", Professional: "Mike Johnson", Date: "May 15, 2023", Status: "COMPLETED"},
	{ID: 2, Service: "Home Cleaning", Professional: "Sarah Williams", Date: "May 20, 2023", Status: "IN_PROGRESS"},
	{ID: 3, Service: "Electrical Wiring", Professional: "Robert Garcia", Date: "May 25, 2023", Status: "SCHEDULED"},
}

var demoUpcomingRequests = []domain.UpcomingRequest{
	{ID: 1, Service: "Plumbing Repair", Client: "John Doe", DateTime: "May 26, 2023, 10:00 AM", Status: "PENDING"},
	{ID: 2, Service: "Water Heater Installation", Client: "Maria Garcia", DateTime: "May 27, 2023, 2:00 PM", Status: "ACCEPTED"},
	{ID: 3, Service: "Sink Installation", Client: "Robert Johnson", DateTime: "May 29, 2023, 11:30 AM", Status: "PENDING"},
}

var demoProfessionalServices = []domain.ProfessionalService{
	{ID: 1, Name: "Plumbing Services", Description: "Professional plumbing services including repairs, installations, and maintenance.", Rate: 75, Jobs: 16, Status: "ACTIVE"},
	{ID: 2, Name: "Water Heater Specialist", Description: "Installation and repair of water heaters, including tankless systems.", Rate: 85, Jobs: 9, Status: "ACTIVE"},
	{ID: 3, Name: "Bathroom Remodeling", Description: "Full bathroom remodeling services, from fixtures to tiling.", Rate: 95, Jobs: 3, Status: "ACTIVE"},
}

var demoAccounts = []domain.AccountSummary{
	{ID: 1, Username: "Sarah Wilson", Email: "sarahw@example.com", Role: "USER", Status: "ACTIVE", Joined: "2023-05-20"},
	{ID: 2, Username: "James Brown", Email: "jamesb@example.com", Role: "PROFESSIONAL", Status: "PENDING", Joined: "2023-05-21"},
	{ID: 3, Username: "Jennifer Lopez", Email: "jenniferl@example.com", Role: "USER", Status: "ACTIVE", Joined: "2023-05-22"},
	{ID: 4, Username: "Michael Chen", Email: "michaelc@example.com", Role: "PROFESSIONAL", Status: "ACTIVE", Joined: "2023-05-23"},
}

var demoCategories = []domain.CategorySummary{
	{ID: 1, Name: "Plumbing", Services: 15, Percentage: 70},
	{ID: 2, Name: "Cleaning", Services: 22, Percentage: 85},
	{ID: 3, Name: "Electrical", Services: 12, Percentage: 60},
	{ID: 4, Name: "Home Repair", Services: 18, Percentage: 75},
}
