package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccessClaims is the payload embedded in a signed access token. It is
// never persisted: verifying the signature and the embedded expiry is the
// whole access check, no storage round-trip involved.
type AccessClaims struct {
	UserID       uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	ValidThrough time.Time `json:"valid_through"`
}

// ExpiredAt reports whether the claims are past their embedded expiry.
func (c *AccessClaims) ExpiredAt(now time.Time) bool {
	return c.ValidThrough.Before(now)
}

// TokenPair is the result of token issuance: a short-lived self-describing
// access token and a long-lived opaque refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
