package ports

import (
	"context"
	"fmt"

	"github.com/nesthome/nesthome-web/internal/core/domain"
)

// AuthRejection is a non-2xx answer from the upstream's login or register
// endpoints. Body carries the response text verbatim; it is shown to the
// user as-is when present.
type AuthRejection struct {
	Status int
	Body   string
}

func (r *AuthRejection) Error() string {
	if r.Body != "" {
		return r.Body
	}
	return fmt.Sprintf("upstream rejected request (status %d)", r.Status)
}

// SessionCheck is the decoded /home/session-check payload. Roles are
// already normalized; the array-or-string ambiguity stops at the gateway.
type SessionCheck struct {
	Authenticated bool
	Username      string
	Roles         []string
}

// AuthResult is the decoded success payload of login or register.
type AuthResult struct {
	Username string
	Roles    []string
}

// RegisterForm is the payload for /auth/register. Role travels as
// {"name": ...} and ServiceIDs only accompany professional signups.
type RegisterForm struct {
	Username   string
	Password   string
	Email      string
	Address    string
	Pincode    int
	Role       string
	ServiceIDs []int
}

// AuthGateway is one browser session's view of the NestHome API's auth
// endpoints. Implementations attach that session's cookie jar to every
// request ("credentials included").
type AuthGateway interface {
	SessionCheck(ctx context.Context) (*SessionCheck, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, form RegisterForm) (*AuthResult, error)
	Logout(ctx context.Context) error
}

// CatalogGateway fetches the public services catalog. No credentials.
type CatalogGateway interface {
	AllServices(ctx context.Context) ([]domain.ServiceOffering, error)
}

// DashboardGateway fetches the per-role dashboard data with the session's
// credentials attached.
type DashboardGateway interface {
	UserDashboard(ctx context.Context) (*domain.UserDashboard, error)
	ProfessionalDashboard(ctx context.Context) (*domain.ProfessionalDashboard, error)
	AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error)
}
