package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
)

const (
	catalogKey = "catalog:all-services"
	catalogTTL = 5 * time.Minute
)

// CatalogCache implements ports.CatalogCache with a single TTL'd key
// holding the JSON-encoded catalog.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) ports.CatalogCache {
	return &CatalogCache{client: client}
}

// Get returns the cached catalog, or a miss when the key is absent or the
// stored value no longer decodes.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.ServiceOffering, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var offerings []domain.ServiceOffering
	if err := json.Unmarshal(raw, &offerings); err != nil {
		return nil, false, nil
	}
	return offerings, true, nil
}

// Set stores the catalog for catalogTTL.
func (c *CatalogCache) Set(ctx context.Context, offerings []domain.ServiceOffering) error {
	raw, err := json.Marshal(offerings)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}
