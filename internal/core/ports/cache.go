package ports

import (
	"context"

	"github.com/nesthome/nesthome-web/internal/core/domain"
)

// CatalogCache is a short-TTL cache for the services catalog. A miss is
// (nil, false, nil); cache errors are reported but treated as misses by
// callers.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.ServiceOffering, bool, error)
	Set(ctx context.Context, offerings []domain.ServiceOffering) error
}
