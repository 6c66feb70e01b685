package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
)

// CatalogService serves the public services catalog: Redis cache first,
// then the upstream API, then the built-in demo catalog so the marketing
// page never renders empty.
type CatalogService struct {
	gateway ports.CatalogGateway
	cache   ports.CatalogCache
	log     zerolog.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil, in which
// case every request goes to the upstream.
func NewCatalogService(gateway ports.CatalogGateway, cache ports.CatalogCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{gateway: gateway, cache: cache, log: log}
}

// Offerings returns the catalog and whether it is the degraded fallback.
// Cache errors count as misses; upstream errors are logged and answered
// with the fallback catalog.
func (s *CatalogService) Offerings(ctx context.Context) ([]domain.ServiceOffering, bool) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache read failed")
		} else if ok {
			return cached, false
		}
	}

	offerings, err := s.gateway.AllServices(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog fetch failed, serving fallback catalog")
		return domain.FallbackCatalog, true
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, offerings); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return offerings, false
}

// Search applies the page's free-text and category filters.
func (s *CatalogService) Search(ctx context.Context, term, category string) ([]domain.ServiceOffering, bool) {
	offerings, degraded := s.Offerings(ctx)
	return domain.FilterOfferings(offerings, term, category), degraded
}
