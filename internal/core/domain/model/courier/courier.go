package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")

// Courier represents a member of the courier registry. Membership is what
// authorizes an actor to claim orders; it is checked at claim time, never
// cached on the order.
//
// Registering a handle that has never interacted with the system is valid:
// the member exists but is not deliverable until a contact record appears
// for the handle.
type Courier struct {
	// handle is the stable identity of the courier
	handle kernel.Handle

	// registeredAt records when the administrator added the handle
	registeredAt time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates a registry member for the given handle.
func NewCourier(handle kernel.Handle, registeredAt time.Time) (*Courier, error) {
	if err := handle.Validate(); err != nil {
		return nil, err
	}
	if registeredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("registeredAt")
	}

	return &Courier{
		handle:       handle,
		registeredAt: registeredAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier reconstructs a registry member from persistence.
func RestoreCourier(handle kernel.Handle, registeredAt time.Time) (*Courier, error) {
	return NewCourier(handle, registeredAt)
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// Handle returns the courier's stable identity.
func (c *Courier) Handle() kernel.Handle {
	return c.handle
}

// RegisteredAt returns when the administrator added the courier.
func (c *Courier) RegisteredAt() time.Time {
	return c.registeredAt
}
