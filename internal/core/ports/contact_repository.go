package ports

import (
	"context"

	"dispatch/internal/core/domain/model/contact"
	"dispatch/internal/core/domain/model/kernel"
)

// ContactRepository defines the persistence contract for handle-to-chat
// bindings captured on first contact. A stored contact is what makes a
// recipient deliverable.
type ContactRepository interface {
	// Save upserts the binding: inserts a new contact or refreshes the
	// chat id and last-seen time of an existing one.
	Save(ctx context.Context, aggregate *contact.Contact) error

	// Get retrieves the contact with the given handle.
	// Returns ObjectNotFoundError if the handle was never seen.
	Get(ctx context.Context, handle kernel.Handle) (*contact.Contact, error)

	// GetAll retrieves every known contact.
	GetAll(ctx context.Context) ([]*contact.Contact, error)
}
