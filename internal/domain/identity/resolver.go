package identity

import (
	"context"
)

// Resolver maps a caller's on-record address to a stable identity ID.
// Resolution happens once at the boundary of every operation; the core
// only ever sees identity IDs.
type Resolver interface {
	// Resolve returns the identity ID registered for the address
	Resolve(ctx context.Context, address string) (uint64, error)
}

// Registry extends Resolver with registration, as provided by the
// reference in-memory implementation and the test harness. Production
// deployments point Resolver at the external identity system instead.
type Registry interface {
	Resolver

	// Register assigns the next identity ID to the address
	Register(ctx context.Context, address string) (uint64, error)
}
