package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
)

// SessionState is the lifecycle of one browser session's authentication.
type SessionState int

const (
	// StateBootstrapping holds until the one-time session check resolves.
	// No route decision may be made in this state.
	StateBootstrapping SessionState = iota
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthManager owns one browser session's Identity, lifecycle state and
// last auth error. It is the sole writer of both the Identity and the
// Session Flag; everything else reads through its accessors.
//
// No public operation panics or returns a transport error as-is: failures
// become the stored auth error or a plain error value.
type AuthManager struct {
	gateway ports.AuthGateway
	log     zerolog.Logger

	bootstrap sync.Once

	mu       sync.Mutex
	state    SessionState
	identity *domain.Identity
	lastErr  string
}

// NewAuthManager returns a manager in the bootstrapping state.
func NewAuthManager(gateway ports.AuthGateway, log zerolog.Logger) *AuthManager {
	return &AuthManager{
		gateway: gateway,
		log:     log,
		state:   StateBootstrapping,
	}
}

// EnsureBootstrapped runs the session bootstrap exactly once. Concurrent
// callers block until the first run completes, which is what sequences the
// bootstrap before any route-guard decision.
//
// Flag unset: resolve Anonymous without touching the network. Flag set:
// confirm with the upstream session check; anything short of an explicit
// authenticated=true — including transport failure — clears the flag and
// resolves Anonymous (fail closed).
func (m *AuthManager) EnsureBootstrapped(ctx context.Context, flags ports.FlagStore) {
	m.bootstrap.Do(func() {
		if !flags.IsLoggedInFlagSet() {
			m.setState(StateAnonymous, nil)
			return
		}

		check, err := m.gateway.SessionCheck(ctx)
		if err != nil {
			m.log.Warn().Err(err).Msg("session check failed, treating as logged out")
			flags.ClearLoggedInFlag()
			m.setState(StateAnonymous, nil)
			return
		}
		if !check.Authenticated {
			flags.ClearLoggedInFlag()
			m.setState(StateAnonymous, nil)
			return
		}

		m.setState(StateAuthenticated, &domain.Identity{
			Username: check.Username,
			Roles:    check.Roles,
		})
	})
}

// Login authenticates against the upstream API. On rejection the returned
// error carries the response body text (or "Login failed"), the same text
// is stored for the views, and the existing Identity and flag are left
// untouched. On success the Identity is replaced wholesale and the Session
// Flag is set.
func (m *AuthManager) Login(ctx context.Context, flags ports.FlagStore, username, password string) (*domain.Identity, error) {
	m.clearAuthError()

	result, err := m.gateway.Login(ctx, username, password)
	if err != nil {
		msg := authFailureMessage(err, domain.ErrLoginFailed)
		m.setAuthError(msg)
		m.log.Debug().Str("username", username).Msg("login rejected")
		return nil, errors.New(msg)
	}

	identity := &domain.Identity{Username: result.Username, Roles: result.Roles}
	if identity.Username == "" {
		identity.Username = username
	}

	m.setState(StateAuthenticated, identity)
	flags.SetLoggedInFlag()
	m.log.Info().Str("username", identity.Username).Msg("login successful")
	return cloneIdentity(identity), nil
}

// Register creates an account upstream and, like the original frontend,
// treats success as a login: Identity set, flag set.
func (m *AuthManager) Register(ctx context.Context, flags ports.FlagStore, form ports.RegisterForm) (*domain.Identity, error) {
	m.clearAuthError()

	result, err := m.gateway.Register(ctx, form)
	if err != nil {
		msg := authFailureMessage(err, domain.ErrRegistrationFailed)
		m.setAuthError(msg)
		m.log.Debug().Str("username", form.Username).Msg("registration rejected")
		return nil, errors.New(msg)
	}

	identity := &domain.Identity{Username: result.Username, Roles: result.Roles}
	if identity.Username == "" {
		identity.Username = form.Username
	}

	m.setState(StateAuthenticated, identity)
	flags.SetLoggedInFlag()
	m.log.Info().Str("username", identity.Username).Msg("registration successful")
	return cloneIdentity(identity), nil
}

// Logout cannot fail from the caller's perspective: the upstream call is
// best-effort, and local state and the Session Flag are always cleared.
func (m *AuthManager) Logout(ctx context.Context, flags ports.FlagStore) {
	if err := m.gateway.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("upstream logout failed, clearing local session anyway")
	}
	m.setState(StateAnonymous, nil)
	flags.ClearLoggedInFlag()
}

// State returns the current lifecycle state.
func (m *AuthManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns a copy of the current identity, or nil when anonymous.
// Copying keeps page code from mutating the manager's record.
func (m *AuthManager) Identity() *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneIdentity(m.identity)
}

// HasRole reports role membership for the current identity; false when
// there is none.
func (m *AuthManager) HasRole(role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity.HasRole(role)
}

// AuthError returns the message from the most recent failed login or
// register attempt, or "" when the last attempt succeeded.
func (m *AuthManager) AuthError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *AuthManager) setState(state SessionState, identity *domain.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.identity = identity
}

func (m *AuthManager) setAuthError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = msg
}

func (m *AuthManager) clearAuthError() {
	m.setAuthError("")
}

// authFailureMessage picks the user-visible text for a failed attempt: the
// rejection body verbatim when the upstream sent one, otherwise the fixed
// per-operation default. Transport errors never leak their details.
func authFailureMessage(err error, fallback error) string {
	var rej *ports.AuthRejection
	if errors.As(err, &rej) && rej.Body != "" {
		return rej.Body
	}
	return fallback.Error()
}

func cloneIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	clone := &domain.Identity{Username: id.Username}
	if id.Roles != nil {
		clone.Roles = append([]string(nil), id.Roles...)
	}
	return clone
}
