package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/ports"
	"github.com/nesthome/nesthome-web/internal/core/service"
)

type nullGateway struct{}

func (nullGateway) SessionCheck(context.Context) (*ports.SessionCheck, error) {
	return &ports.SessionCheck{}, nil
}
func (nullGateway) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return &ports.AuthResult{}, nil
}
func (nullGateway) Register(context.Context, ports.RegisterForm) (*ports.AuthResult, error) {
	return &ports.AuthResult{}, nil
}
func (nullGateway) Logout(context.Context) error { return nil }

func countingFactory(created *int) Factory {
	return func() (*Browser, error) {
		*created++
		return &Browser{Manager: service.NewAuthManager(nullGateway{}, zerolog.Nop())}, nil
	}
}

func TestRegistry_SameSIDSameBrowser(t *testing.T) {
	created := 0
	r := NewRegistry(countingFactory(&created), zerolog.Nop())

	first, err := r.Browser("sid-1")
	if err != nil {
		t.Fatalf("Browser: %v", err)
	}
	second, err := r.Browser("sid-1")
	if err != nil {
		t.Fatalf("Browser: %v", err)
	}
	if first != second {
		t.Fatalf("expected same browser state for same sid")
	}
	if created != 1 {
		t.Fatalf("expected one factory call, got %d", created)
	}
}

func TestRegistry_DistinctSIDsAreIsolated(t *testing.T) {
	created := 0
	r := NewRegistry(countingFactory(&created), zerolog.Nop())

	a, _ := r.Browser("sid-a")
	b, _ := r.Browser("sid-b")
	if a == b {
		t.Fatalf("distinct sids must not share state")
	}
	if created != 2 {
		t.Fatalf("expected two factory calls, got %d", created)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", r.Len())
	}
}

func TestRegistry_FactoryErrorPropagates(t *testing.T) {
	wantErr := errors.New("upstream jar unavailable")
	r := NewRegistry(func() (*Browser, error) { return nil, wantErr }, zerolog.Nop())

	if _, err := r.Browser("sid-1"); !errors.Is(err, wantErr) {
		t.Fatalf("expected factory error, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("failed creation must not be registered")
	}
}

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	created := 0
	r := NewRegistry(countingFactory(&created), zerolog.Nop())

	if _, err := r.Browser("sid-old"); err != nil {
		t.Fatalf("Browser: %v", err)
	}

	if n := r.sweep(time.Now()); n != 0 {
		t.Fatalf("fresh session should survive, evicted %d", n)
	}
	if n := r.sweep(time.Now().Add(defaultIdleTTL + time.Minute)); n != 1 {
		t.Fatalf("idle session should be evicted, got %d", n)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after sweep, got %d", r.Len())
	}

	// A returning browser gets fresh state and re-bootstraps.
	if _, err := r.Browser("sid-old"); err != nil {
		t.Fatalf("Browser: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected recreation after eviction, got %d factory calls", created)
	}
}
