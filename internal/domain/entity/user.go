// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account record. Credentials are stored as an opaque
// bcrypt hash; the plaintext password never leaves the signup/login path.
type User struct {
	ID           uuid.UUID  // The unique identifier for the account.
	Login        string     // Unique, case-sensitive login identifier.
	FullName     string     // The user's display name.
	Role         Role       // The account role, one of the closed Role set.
	PasswordHash string     // bcrypt hash of the account password.
	LastLoginAt  *time.Time // Timestamp of the most recent successful login, nil before the first one.
	CreatedAt    time.Time  // Timestamp of account creation.
	UpdatedAt    time.Time  // Timestamp of the last modification.
}
