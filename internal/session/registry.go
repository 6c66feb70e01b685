package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/ports"
	"github.com/nesthome/nesthome-web/internal/core/service"
)

const (
	defaultIdleTTL       = 24 * time.Hour
	defaultSweepInterval = 15 * time.Minute
)

// Browser bundles everything scoped to one browser session: its auth
// manager and its credentialed view of the upstream dashboard endpoints.
type Browser struct {
	Manager   *service.AuthManager
	Dashboard ports.DashboardGateway
}

// Factory builds the per-browser state (manager plus a fresh upstream
// cookie jar) for a browser seen for the first time.
type Factory func() (*Browser, error)

// Registry maps session IDs to their in-memory browser state. Identity is
// deliberately not persisted anywhere: a restart loses the map and every
// browser re-bootstraps fail-closed off its flag cookie.
type Registry struct {
	factory Factory
	log     zerolog.Logger
	idleTTL time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	browser  *Browser
	lastSeen time.Time
}

// NewRegistry creates a Registry with the default idle TTL.
func NewRegistry(factory Factory, log zerolog.Logger) *Registry {
	return &Registry{
		factory: factory,
		log:     log,
		idleTTL: defaultIdleTTL,
		entries: make(map[string]*entry),
	}
}

// Browser returns the state for sid, creating it on first sight, and
// marks it as recently used.
func (r *Registry) Browser(sid string) (*Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[sid]; ok {
		e.lastSeen = time.Now()
		return e.browser, nil
	}

	browser, err := r.factory()
	if err != nil {
		return nil, err
	}
	r.entries[sid] = &entry{browser: browser, lastSeen: time.Now()}
	return browser, nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// StartJanitor launches the background sweep evicting sessions idle beyond
// the TTL. It stops when ctx is cancelled.
func (r *Registry) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(defaultSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.sweep(time.Now()); n > 0 {
					r.log.Debug().Int("evicted", n).Msg("session registry sweep")
				}
			}
		}
	}()
}

func (r *Registry) sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for sid, e := range r.entries {
		if now.Sub(e.lastSeen) > r.idleTTL {
			delete(r.entries, sid)
			evicted++
		}
	}
	return evicted
}
