package domain

import (
	"encoding/json"
	"strings"
)

// Role tokens the route surface cares about. The upstream API may return
// them prefixed (e.g. "ROLE_ADMIN"); membership checks tolerate that.
const (
	RoleUser         = "USER"
	RoleProfessional = "PROFESSIONAL"
	RoleAdmin        = "ADMIN"
)

// RoleSource is the tagged union for the upstream's heterogeneous role
// encoding: either a JSON array of tokens or a single stringified list
// such as "[ROLE_USER, ROLE_ADMIN]". It exists only at the wire boundary;
// call Normalize immediately and pass []string onward.
type RoleSource struct {
	List   []string
	Packed string
}

// UnmarshalJSON accepts both encodings. Any other shape (number, object,
// null) decodes to an empty source rather than failing the payload.
func (rs *RoleSource) UnmarshalJSON(data []byte) error {
	*rs = RoleSource{}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		rs.List = list
		return nil
	}

	var packed string
	if err := json.Unmarshal(data, &packed); err == nil {
		rs.Packed = packed
		return nil
	}

	return nil
}

// Normalize returns the canonical ordered token slice.
func (rs RoleSource) Normalize() []string {
	if rs.List != nil {
		return NormalizeRoles(rs.List)
	}
	if rs.Packed != "" {
		return NormalizeRoles(rs.Packed)
	}
	return nil
}

// NormalizeRoles converts either role encoding into an ordered token
// slice. A packed string like "[ROLE_USER, ROLE_ADMIN]" is stripped of
// brackets and split on ", "; tokens are trimmed. Anything else yields nil.
func NormalizeRoles(raw any) []string {
	switch v := raw.(type) {
	case []string:
		out := make([]string, 0, len(v))
		for _, r := range v {
			if r = strings.TrimSpace(r); r != "" {
				out = append(out, r)
			}
		}
		return out
	case string:
		s := strings.NewReplacer("[", "", "]", "").Replace(v)
		if strings.TrimSpace(s) == "" {
			return nil
		}
		parts := strings.Split(s, ", ")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

// HasRole reports whether any token equals role or contains it as a
// substring, so "ROLE_ADMIN" satisfies a query for "ADMIN". The substring
// match is intentionally permissive to stay compatible with the upstream's
// prefixed encoding.
func HasRole(roles []string, role string) bool {
	if len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if r == role || strings.Contains(r, role) {
			return true
		}
	}
	return false
}
