package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"
)

// ErrLinkNotFound is returned when an identity link is not found.
var ErrLinkNotFound = errors.New("identity link not found")

// IdentityLinkRepository defines the operations for federated identity
// link persistence. Links are insert-only; the storage layer's unique
// constraint on (provider, external id) is the authoritative guard
// against two concurrent first logins creating duplicate accounts.
type IdentityLinkRepository interface {
	// FindByExternalID retrieves the link for an external identity.
	FindByExternalID(ctx context.Context, provider entity.Provider, externalID string) (*entity.IdentityLink, error)

	// Create persists a new identity link. A unique-constraint violation
	// surfaces as a domain conflict error.
	Create(ctx context.Context, link *entity.IdentityLink) error
}
