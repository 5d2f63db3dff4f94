// Package delivery defines the contract every transport server fulfills.
package delivery

import "context"

// Delivery is a transport server that can be started by the application
// bootstrap. Shutdown is handled via the fx lifecycle, not this interface.
type Delivery interface {
	// Serve blocks running the server until it stops or fails.
	Serve(ctx context.Context) error
}
