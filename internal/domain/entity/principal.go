package entity

import "github.com/google/uuid"

// Principal is the identity attached to a request after access-token
// verification. It is either anonymous or an authenticated user with a
// role, so role checks never have to probe for missing attributes.
type Principal struct {
	authenticated bool
	userID        uuid.UUID
	role          Role
}

// Anonymous returns the principal of an unauthenticated request.
func Anonymous() Principal {
	return Principal{}
}

// Authenticated returns the principal of a verified access token.
func Authenticated(userID uuid.UUID, role Role) Principal {
	return Principal{authenticated: true, userID: userID, role: role}
}

// IsAuthenticated reports whether the principal carries a verified identity.
func (p Principal) IsAuthenticated() bool {
	return p.authenticated
}

// UserID returns the authenticated user id and whether one is present.
func (p Principal) UserID() (uuid.UUID, bool) {
	return p.userID, p.authenticated
}

// HasRole reports whether the principal is authenticated with the given role.
func (p Principal) HasRole(role Role) bool {
	return p.authenticated && p.role == role
}
