// Package session holds the browser-facing session plumbing: the signed
// cookie carrying the advisory login flag and the session ID, plus the
// in-memory registry of per-browser auth managers.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nesthome/nesthome-web/internal/core/ports"
)

const (
	// CookieName is the one NestHome cookie; gorilla/sessions signs it.
	CookieName = "nesthome_session"

	keyLoggedIn  = "isLoggedIn"
	keySessionID = "sid"

	cookieMaxAge = 30 * 24 * 60 * 60
)

// NewStore builds the signed cookie store backing CookieName.
func NewStore(secret string) sessions.Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Flags is the cookie-backed Session Flag bound to one request. Saves are
// synchronous; a broken cookie reads as "flag not set".
type Flags struct {
	c echo.Context
}

var _ ports.FlagStore = (*Flags)(nil)

// NewFlags binds the flag store to a request.
func NewFlags(c echo.Context) *Flags {
	return &Flags{c: c}
}

// IsLoggedInFlagSet reports whether the advisory flag is present and true.
func (f *Flags) IsLoggedInFlagSet() bool {
	sess, err := session.Get(CookieName, f.c)
	if err != nil {
		return false
	}
	v, _ := sess.Values[keyLoggedIn].(bool)
	return v
}

// SetLoggedInFlag persists the flag before returning.
func (f *Flags) SetLoggedInFlag() {
	sess, err := session.Get(CookieName, f.c)
	if err != nil {
		return
	}
	sess.Values[keyLoggedIn] = true
	_ = sess.Save(f.c.Request(), f.c.Response())
}

// ClearLoggedInFlag removes the flag and persists immediately.
func (f *Flags) ClearLoggedInFlag() {
	sess, err := session.Get(CookieName, f.c)
	if err != nil {
		return
	}
	delete(sess.Values, keyLoggedIn)
	_ = sess.Save(f.c.Request(), f.c.Response())
}

// SessionID returns the opaque ID correlating this browser with its
// in-memory auth manager, minting and persisting one when absent. When the
// cookie cannot be saved the ID is still returned; that browser simply
// re-bootstraps on its next visit.
func SessionID(c echo.Context) string {
	sess, err := session.Get(CookieName, c)
	if err != nil {
		return newSessionID()
	}
	if sid, ok := sess.Values[keySessionID].(string); ok && sid != "" {
		return sid
	}

	sid := newSessionID()
	sess.Values[keySessionID] = sid
	_ = sess.Save(c.Request(), c.Response())
	return sid
}

func newSessionID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "sid-unavailable"
	}
	return hex.EncodeToString(buf[:])
}
