package entity

import (
	"time"

	"github.com/google/uuid"
)

// LoginHistory is one append-only audit record of a successful login.
// The token subsystem only ever writes these rows; it never reads them.
type LoginHistory struct {
	UserID     uuid.UUID // The account that logged in.
	LoggedInAt time.Time // When the login happened.
	UserAgent  string    // The client's user-agent string, as reported.
}
