package usecase

import (
	"context"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Login    string
	FullName string
	Password string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Login     string
	Password  string
	UserAgent string
}

// --- Output DTOs ---

// SignupOutput returns the newly created account.
type SignupOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	Tokens *entity.TokenPair
	User   *entity.User
}

// AccountUsecase defines the password-based account operations.
type AccountUsecase interface {
	// Signup registers a new account with the default user role.
	Signup(ctx context.Context, input SignupInput) (*SignupOutput, error)

	// Login verifies the credentials, issues a token pair, stamps the
	// user's last login and appends a login history record.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout revokes the refresh token. The caller must present a
	// genuinely signed access token; its expiry is ignored so a client
	// whose access token just lapsed can still log out.
	Logout(ctx context.Context, accessToken, refreshToken string) error

	// LogoutAll revokes every active session of the user and returns how
	// many were revoked.
	LogoutAll(ctx context.Context, userID uuid.UUID) (int, error)

	// ChangePassword verifies the old password, rejects reuse of it as
	// the new one, stores the new hash and revokes all active sessions.
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error

	// ListSessions returns the user's active sessions, newest first.
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error)

	// RevokeSession revokes a single session by id, scoped to its owner.
	// A session belonging to a different user is reported as not found.
	RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error
}
