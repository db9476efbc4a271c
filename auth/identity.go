package auth

import "time"

// Identity represents an authenticated principal.
type Identity struct {
	// Principal is the unique identifier (e.g., user ID, service account).
	Principal string

	// Roles are the roles assigned to this identity.
	Roles []string

	// Claims contains the raw claims from the token.
	Claims map[string]any

	// ExpiresAt is when this identity expires.
	ExpiresAt time.Time

	// IssuedAt is when this identity was created.
	IssuedAt time.Time
}

// HasRole checks if the identity has a specific role.
func (id *Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsExpired checks if the identity has expired.
func (id *Identity) IsExpired() bool {
	if id.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(id.ExpiresAt)
}
