package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies a federated identity provider.
type Provider string

const (
	// ProviderVK is the VK OAuth provider.
	ProviderVK Provider = "vk"
	// ProviderYandex is the Yandex OAuth provider.
	ProviderYandex Provider = "yandex"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the Provider is a valid value.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderVK, ProviderYandex:
		return true
	default:
		return false
	}
}

// IdentityLink ties an external provider account to an internal user.
// At most one link may exist per (provider, external id); the storage
// layer enforces this with a unique constraint. Links are created on the
// first federated login and never mutated afterwards.
type IdentityLink struct {
	ID         uuid.UUID // The unique ID for this link record.
	UserID     uuid.UUID // The internal account the external identity maps to.
	Provider   Provider  // Which identity provider issued the external id.
	ExternalID string    // The user's id in the provider's namespace.
	CreatedAt  time.Time // When the link was established.
}
