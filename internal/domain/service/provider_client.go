package service

import (
	"context"

	"passport/internal/domain/entity"
)

// ProviderIdentity is the external identity returned by a federation
// provider after a successful code exchange.
type ProviderIdentity struct {
	ExternalID string // The user's id in the provider's namespace.
	Email      string // Provider-reported email, used as the login for new accounts.
}

// ProviderClient defines the outbound interface to one identity provider.
// Implementations perform the provider's OAuth code exchange and identity
// fetch; the federation resolver never talks HTTP itself.
type ProviderClient interface {
	// ExchangeCode trades an authorization code for a provider access
	// token. An empty token without an error means the provider rejected
	// the code.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchIdentity resolves the provider access token into an external
	// identity. A nil identity without an error means the provider
	// returned no usable account data.
	FetchIdentity(ctx context.Context, accessToken string) (*ProviderIdentity, error)

	// Provider returns the provider tag this client serves.
	Provider() entity.Provider
}

// ProviderRegistry resolves a provider tag to its client.
type ProviderRegistry interface {
	// Get returns the client for the given provider, or false when the
	// provider is unknown.
	Get(provider entity.Provider) (ProviderClient, bool)
}
