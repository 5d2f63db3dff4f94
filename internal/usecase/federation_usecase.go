package usecase

import (
	"context"

	"passport/internal/domain/entity"
)

// FederationOutcome tells whether a federated login matched an existing
// account or created one.
type FederationOutcome string

const (
	// OutcomeFound means the external identity was already linked.
	OutcomeFound FederationOutcome = "found"
	// OutcomeCreated means a new account and link were created.
	OutcomeCreated FederationOutcome = "created"
)

// FederationResult is the output of a federated login.
type FederationResult struct {
	User    *entity.User
	Outcome FederationOutcome
	Tokens  *entity.TokenPair
}

// FederationUsecase resolves a provider authorization code into a local
// account and a token pair, creating the account on first login.
type FederationUsecase interface {
	// Resolve runs the full federated login: code exchange, identity
	// fetch, idempotent find-or-create of the local account and link,
	// then token issuance.
	Resolve(ctx context.Context, provider entity.Provider, code, userAgent string) (*FederationResult, error)
}
