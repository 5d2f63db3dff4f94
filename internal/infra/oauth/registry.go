package oauth

import (
	"passport/internal/domain/entity"
	"passport/internal/domain/service"
)

// Registry maps provider tags to their clients.
type Registry struct {
	clients map[entity.Provider]service.ProviderClient
}

// NewRegistry builds a registry from the given clients, keyed by each
// client's own provider tag.
func NewRegistry(clients ...service.ProviderClient) service.ProviderRegistry {
	registry := &Registry{clients: make(map[entity.Provider]service.ProviderClient, len(clients))}
	for _, client := range clients {
		registry.clients[client.Provider()] = client
	}

	return registry
}

// Get returns the client for the given provider, or false when the
// provider is unknown.
func (r *Registry) Get(provider entity.Provider) (service.ProviderClient, bool) {
	client, ok := r.clients[provider]

	return client, ok
}
