package domain

// RoleAdmin may delete any message, not only its own.
const RoleAdmin = "admin"

// Identity is the authenticated caller as resolved by the identity
// context. A zero Identity is an unauthenticated caller.
type Identity struct {
	UserID string
	Roles  []string
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}
