// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenUsecase defines the token lifecycle operations: issuance,
// refresh-token rotation and revocation, and stateless access checks.
// This is the contract the delivery layer depends on.
type TokenUsecase interface {
	// Issue creates a fresh token pair for the user: a signed access
	// token carrying the user's claims and an opaque refresh token
	// backed by a new session row.
	Issue(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error)

	// CheckRefresh reports whether the refresh token belongs to an
	// active session. It never mutates state.
	CheckRefresh(ctx context.Context, refreshToken string) bool

	// Rotate redeems an active refresh token for a wholly new pair and
	// revokes the old session. Refresh tokens are single-use: of two
	// concurrent rotations of the same token, exactly one succeeds.
	Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error)

	// Revoke invalidates the session behind the refresh token. Revoking
	// an unknown or already-revoked token is a no-op.
	Revoke(ctx context.Context, refreshToken string) error

	// RevokeAll revokes every active session of the user and returns how
	// many were revoked.
	RevokeAll(ctx context.Context, userID uuid.UUID) (int, error)

	// DecodeAccess verifies an access token and returns its claims, or
	// nil when the token is malformed, forged or past its embedded
	// expiry. Pure computation, no storage round-trip.
	DecodeAccess(ctx context.Context, accessToken string) *entity.AccessClaims

	// CheckAccess reports whether the access token carries a genuine
	// signature. Deliberately expiry-independent: logout accepts a
	// time-expired but authentic access token.
	CheckAccess(ctx context.Context, accessToken string) bool
}
