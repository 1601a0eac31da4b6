package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by status
// and assignment, plus an append-only channel for notification handles.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier, including the
	// full set of notification message handles attached to it.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// Exists reports whether an order with the given identifier is already
	// stored. Used during identifier generation to detect collisions.
	Exists(ctx context.Context, id kernel.OrderID) (bool, error)

	// GetAllInStatus retrieves every order currently in the given status,
	// oldest first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAllActiveFor retrieves the orders a courier can act on: every
	// unassigned new order plus the taken orders assigned to that courier.
	GetAllActiveFor(ctx context.Context, courier kernel.Handle) ([]*order.Order, error)

	// GetAllDeliveredFor retrieves the delivered orders that were completed
	// by the given courier, oldest first.
	GetAllDeliveredFor(ctx context.Context, courier kernel.Handle) ([]*order.Order, error)

	// AppendMessages attaches notification message handles to an order
	// without touching any other order fields, so delivery fan-out cannot
	// clobber a concurrent status transition. Handles already attached are
	// silently skipped.
	AppendMessages(ctx context.Context, id kernel.OrderID, handles []order.MessageHandle) error
}
