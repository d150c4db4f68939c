package domain

// RoleSystemAdmin is the role the core API grants to platform administrators.
// A user carrying it may enter the administration console.
const RoleSystemAdmin = "SYSTEM_ADMINISTRATOR"

// Profile holds the public-facing fields of a user account.
type Profile struct {
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Cover       string `json:"cover,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// User models an account as returned by the core API. The wire format is the
// core API's own (Mongo-style `_id`), kept verbatim so pages see the same
// shape the backend produces.
type User struct {
	ID       string   `json:"_id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
}

// IsSystemAdmin reports whether the user carries the administrator role.
func (u *User) IsSystemAdmin() bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == RoleSystemAdmin {
			return true
		}
	}
	return false
}
