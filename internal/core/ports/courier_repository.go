// Package ports defines the driven-side contracts of the engine: repository
// interfaces, the unit of work, and the outbound messenger. These interfaces
// establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for the courier
// registry. Membership in the registry is what grants the courier role.
type CourierRepository interface {
	// Add persists a new registry member.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Remove deletes the registry member with the given handle.
	// Returns ObjectNotFoundError if no such member exists.
	Remove(ctx context.Context, handle kernel.Handle) error

	// Get retrieves the registry member with the given handle.
	// Returns ObjectNotFoundError if no such member exists.
	Get(ctx context.Context, handle kernel.Handle) (*courier.Courier, error)

	// GetAll retrieves every registry member ordered by registration time.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
