package upstream

import (
	"context"

	"github.com/nesthome/nesthome-web/internal/core/domain"
)

// Dashboard fetches degrade per call: a failed sub-fetch leaves its field
// zero-valued and the page substitutes demo data, as the original frontend
// did. Only the struct is returned; partial data is not an error.

// UserDashboard fetches /user/dashboard-stats and /user/service-requests.
func (s *Session) UserDashboard(ctx context.Context) (*domain.UserDashboard, error) {
	d := &domain.UserDashboard{}
	if err := s.client.getJSON(ctx, s.httpClient, "/user/dashboard-stats", &d.Stats); err != nil {
		s.client.log.Debug().Err(err).Msg("user dashboard stats unavailable")
	}
	if err := s.client.getJSON(ctx, s.httpClient, "/user/service-requests", &d.Requests); err != nil {
		s.client.log.Debug().Err(err).Msg("user service requests unavailable")
	}
	return d, nil
}

// ProfessionalDashboard fetches the three /professional/* endpoints.
func (s *Session) ProfessionalDashboard(ctx context.Context) (*domain.ProfessionalDashboard, error) {
	d := &domain.ProfessionalDashboard{}
	if err := s.client.getJSON(ctx, s.httpClient, "/professional/dashboard-stats", &d.Stats); err != nil {
		s.client.log.Debug().Err(err).Msg("professional dashboard stats unavailable")
	}
	if err := s.client.getJSON(ctx, s.httpClient, "/professional/upcoming-requests", &d.Upcoming); err != nil {
		s.client.log.Debug().Err(err).Msg("professional upcoming requests unavailable")
	}
	if err := s.client.getJSON(ctx, s.httpClient, "/professional/my-services", &d.Services); err != nil {
		s.client.log.Debug().Err(err).Msg("professional services unavailable")
	}
	return d, nil
}

// AdminDashboard fetches the three /admin/* endpoints.
func (s *Session) AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	d := &domain.AdminDashboard{}
	if err := s.client.getJSON(ctx, s.httpClient, "/admin/dashboard-stats", &d.Stats); err != nil {
		s.client.log.Debug().Err(err).Msg("admin dashboard stats unavailable")
	}
	if err := s.client.getJSON(ctx, s.httpClient, "/admin/recent-users", &d.Users); err != nil {
		s.client.log.Debug().Err(err).Msg("admin recent users unavailable")
	}
	if err := s.client.getJSON(ctx, s.httpClient, "/admin/service-categories", &d.Categories); err != nil {
		s.client.log.Debug().Err(err).Msg("admin service categories unavailable")
	}
	return d, nil
}
