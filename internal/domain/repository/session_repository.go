package repository

import (
	"context"
	"errors"
	"time"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session is not found.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the operations for refresh-token session
// persistence. Revocation goes through conditional updates so that two
// concurrent rotations of the same token cannot both succeed: the update
// only matches rows whose expiry has not been nulled yet, and the caller
// inspects the affected-row count.
type SessionRepository interface {
	// Create persists a new session row. The token value must be unique.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves a session by its opaque refresh-token value.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// FindByID retrieves a session by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// FindActiveByUserID retrieves every session of the user whose expiry
	// is set and later than now. Used to enumerate sessions for bulk
	// revocation and for session listings.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.Session, error)

	// RevokeByToken nulls the expiry of the session with the given token,
	// provided it has not been revoked already. Returns the number of rows
	// affected: 0 means the token was absent or a concurrent revocation
	// got there first.
	RevokeByToken(ctx context.Context, token string) (int64, error)

	// RevokeByID nulls the expiry of the session with the given ID under
	// the same conditional-write rules as RevokeByToken.
	RevokeByID(ctx context.Context, id uuid.UUID) (int64, error)

	// DeleteExpiredBefore removes sessions whose expiry passed before the
	// given instant. Periodic retention cleanup only.
	DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error)
}
