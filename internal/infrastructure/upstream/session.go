package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/ports"
)

// Session is one browser session's credentialed view of the NestHome API.
// The wrapped cookie jar carries the upstream session cookie across calls.
type Session struct {
	client     *Client
	jar        *sessionJar
	httpClient *http.Client
}

var (
	_ ports.AuthGateway      = (*Session)(nil)
	_ ports.DashboardGateway = (*Session)(nil)
)

type sessionCheckResponse struct {
	Authenticated bool              `json:"authenticated"`
	Username      string            `json:"username"`
	Authorities   domain.RoleSource `json:"authorities"`
}

type loginResponse struct {
	User        string            `json:"user"`
	Authorities domain.RoleSource `json:"authorities"`
}

// registerResponse tolerates both field names the upstream has used for
// the assigned roles: plural "roles" and singular "role".
type registerResponse struct {
	Username string            `json:"username"`
	Roles    domain.RoleSource `json:"roles"`
	Role     domain.RoleSource `json:"role"`
}

// SessionCheck implements GET /home/session-check.
func (s *Session) SessionCheck(ctx context.Context) (*ports.SessionCheck, error) {
	var resp sessionCheckResponse
	if err := s.client.getJSON(ctx, s.httpClient, "/home/session-check", &resp); err != nil {
		return nil, err
	}
	return &ports.SessionCheck{
		Authenticated: resp.Authenticated,
		Username:      resp.Username,
		Roles:         resp.Authorities.Normalize(),
	}, nil
}

// Login implements POST /auth/login. A non-2xx answer becomes an
// AuthRejection carrying the body text verbatim.
func (s *Session) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := s.client.postJSON(ctx, s.httpClient, "/auth/login", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejection(resp)
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// A 2xx with an unreadable body still counts as a login; the
		// manager falls back to the submitted username and no roles.
		return &ports.AuthResult{}, nil
	}
	return &ports.AuthResult{
		Username: payload.User,
		Roles:    payload.Authorities.Normalize(),
	}, nil
}

// Register implements POST /auth/register. The role travels nested as
// {"name": ...}; service IDs only accompany professional signups.
func (s *Session) Register(ctx context.Context, form ports.RegisterForm) (*ports.AuthResult, error) {
	body := map[string]any{
		"username": form.Username,
		"password": form.Password,
		"email":    form.Email,
		"address":  form.Address,
		"pincode":  form.Pincode,
		"role":     map[string]string{"name": form.Role},
	}
	if len(form.ServiceIDs) > 0 {
		body["services"] = form.ServiceIDs
	}

	resp, err := s.client.postJSON(ctx, s.httpClient, "/auth/register", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejection(resp)
	}

	var payload registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &ports.AuthResult{}, nil
	}
	roles := payload.Roles.Normalize()
	if roles == nil {
		roles = payload.Role.Normalize()
	}
	return &ports.AuthResult{Username: payload.Username, Roles: roles}, nil
}

// Logout implements POST /auth/logout best-effort and always drops the
// session's upstream cookies, even when the call failed.
func (s *Session) Logout(ctx context.Context) error {
	defer s.jar.reset()

	resp, err := s.client.postJSON(ctx, s.httpClient, "/auth/logout", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// rejection drains the body into an AuthRejection. Read errors leave the
// body empty, which downgrades the message to the operation default.
func rejection(resp *http.Response) *ports.AuthRejection {
	text, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &ports.AuthRejection{
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(text)),
	}
}

// sessionJar is a resettable cookie jar. Logout swaps the inner jar so the
// upstream session cookie cannot outlive the local session.
type sessionJar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func newSessionJar() (*sessionJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &sessionJar{inner: inner}, nil
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.inner.SetCookies(u, cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *sessionJar) reset() {
	fresh, err := cookiejar.New(nil)
	if err != nil {
		return
	}
	j.mu.Lock()
	j.inner = fresh
	j.mu.Unlock()
}
