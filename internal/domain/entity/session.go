package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a refresh-token session.
type SessionState string

const (
	// SessionActive means the session can still redeem a new token pair.
	SessionActive SessionState = "active"
	// SessionExpired means the expiry timestamp has passed.
	SessionExpired SessionState = "expired"
	// SessionRevoked means the session was explicitly invalidated.
	SessionRevoked SessionState = "revoked"
)

// Session is one refresh-token record, representing a single authorized
// login. The refresh token itself is an opaque capability: it carries no
// identity and is meaningless without this row.
//
// ExpiredAt is nullable on purpose: nil marks a revoked session, a past
// timestamp an expired one. A session is never reactivated or reused;
// rotation always creates a fresh row.
type Session struct {
	ID        uuid.UUID  // The unique ID for this session record.
	UserID    uuid.UUID  // The account this session belongs to.
	Token     string     // Opaque, unique refresh-token value.
	ExpiredAt *time.Time // nil = revoked; past = expired; future = active.
	CreatedAt time.Time  // When the session was created (login time).
	UpdatedAt time.Time  // Last modification, i.e. revocation time.
}

// State classifies the session relative to now.
func (s *Session) State(now time.Time) SessionState {
	switch {
	case s.ExpiredAt == nil:
		return SessionRevoked
	case s.ExpiredAt.After(now):
		return SessionActive
	default:
		return SessionExpired
	}
}

// IsActive reports whether the session can redeem a new token pair.
func (s *Session) IsActive(now time.Time) bool {
	return s.State(now) == SessionActive
}
