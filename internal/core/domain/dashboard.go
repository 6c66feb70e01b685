package domain

// Dashboard payloads mirror the upstream's per-role endpoints. Stats come
// back as flat string→number objects whose keys differ per role, so they
// stay a map; the list payloads are typed.

// UserDashboard backs the /user page.
type UserDashboard struct {
	Stats    map[string]float64
	Requests []ServiceRequest
}

// ServiceRequest is one booking a user has open or completed.
type ServiceRequest struct {
	ID           int    `json:"id"`
	Service      string `json:"service"`
	Professional string `json:"professional"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

// ProfessionalDashboard backs the /professional page.
type ProfessionalDashboard struct {
	Stats    map[string]float64
	Upcoming []UpcomingRequest
	Services []ProfessionalService
}

// UpcomingRequest is a job offered to a professional.
type UpcomingRequest struct {
	ID       int    `json:"id"`
	Service  string `json:"service"`
	Client   string `json:"client"`
	DateTime string `json:"dateTime"`
	Status   string `json:"status"`
}

// ProfessionalService is one service a professional offers.
type ProfessionalService struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Jobs        int     `json:"jobs"`
	Status      string  `json:"status"`
}

// AdminDashboard backs the /admin page.
type AdminDashboard struct {
	Stats      map[string]float64
	Users      []AccountSummary
	Categories []CategorySummary
}

// AccountSummary is one row of the admin's recent-users table.
type AccountSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Joined   string `json:"joined"`
}

// CategorySummary is one row of the admin's category breakdown.
type CategorySummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Services   int    `json:"services"`
	Percentage int    `json:"percentage"`
}
