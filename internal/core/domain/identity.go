package domain

// Identity is the in-memory record of the authenticated principal for one
// browser session. It is never persisted; the session manager rebuilds it
// from the upstream API at bootstrap and replaces it wholesale on every
// successful login or registration.
type Identity struct {
	Username string
	Roles    []string
}

// HasRole reports membership against this identity's normalized roles.
func (id *Identity) HasRole(role string) bool {
	if id == nil {
		return false
	}
	return HasRole(id.Roles, role)
}
