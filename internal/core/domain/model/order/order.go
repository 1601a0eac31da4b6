package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Details carries the free-form attributes of an order as submitted by the
// customer. Only Content is required; every other field may be empty.
type Details struct {
	City           string
	DeliveryMethod string
	PaymentMethod  string
	Content        string
	Date           string
	Time           string
}

// Order represents a customer's delivery request and its evolving fulfillment
// state. It is the aggregate root of the order lifecycle.
//
// Order maintains these invariants:
//   - the id is a valid six-digit decimal identifier
//   - a courier is assigned iff status is Taken (a Delivered order keeps its
//     last courier as history)
//   - status transitions follow only the Claim/Release/Complete edges
//   - the message-handle list is append-only; entries are never removed
//
// Orders are created once, mutated only through the transition methods, and
// never deleted: Delivered is terminal but retained as history.
type Order struct {
	// id is the unique six-digit identifier of the order
	id kernel.OrderID

	// customer is the handle of the actor who submitted the order
	customer kernel.Handle

	// details holds the free-form attributes (city, methods, content, slot)
	details Details

	// status is the current state in the order lifecycle
	status Status

	// courier is the current assignee (nil unless Taken; last assignee for Delivered)
	courier *kernel.Handle

	createdAt   time.Time
	takenAt     *time.Time
	deliveredAt *time.Time

	// messages records one handle per delivered notification copy, in
	// delivery order. Append-only.
	messages []MessageHandle

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in status New with an empty message-handle
// list. The customer handle and the order content are required; the remaining
// details are free-form and may be empty.
func NewOrder(id kernel.OrderID, customer kernel.Handle, details Details, createdAt time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if details.Content == "" {
		return nil, errs.NewValueIsRequiredError("content")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Order{
		id:        id,
		customer:  customer,
		details:   details,
		status:    New,
		createdAt: createdAt,
		messages:  make([]MessageHandle, 0),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. It re-validates the
// cross-field invariants (status/courier consistency) so a corrupted record
// cannot re-enter the domain.
func RestoreOrder(
	id kernel.OrderID,
	customer kernel.Handle,
	details Details,
	status Status,
	courier *kernel.Handle,
	createdAt time.Time,
	takenAt *time.Time,
	deliveredAt *time.Time,
	messages []MessageHandle,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customer.Validate(),
		status.Validate(),
		status.ValidateCanHaveCourier(courier != nil),
	); err != nil {
		return nil, err
	}
	if courier != nil {
		if err := courier.Validate(); err != nil {
			return nil, err
		}
	}
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	restored := make([]MessageHandle, len(messages))
	copy(restored, messages)

	return &Order{
		id:          id,
		customer:    customer,
		details:     details,
		status:      status,
		courier:     courier,
		createdAt:   createdAt,
		takenAt:     takenAt,
		deliveredAt: deliveredAt,
		messages:    restored,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Customer returns the handle of the submitting customer.
func (o *Order) Customer() kernel.Handle {
	return o.customer
}

// Details returns the free-form attributes of the order.
func (o *Order) Details() Details {
	return o.details
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's handle, or nil if unassigned.
// For a Delivered order this is the courier who fulfilled it.
func (o *Order) Courier() *kernel.Handle {
	return o.courier
}

// IsAssignedTo reports whether the given actor is the current assignee.
func (o *Order) IsAssignedTo(actor kernel.Handle) bool {
	return o.courier != nil && o.courier.IsEqual(actor)
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TakenAt returns the timestamp of the current claim, or nil.
func (o *Order) TakenAt() *time.Time {
	return o.takenAt
}

// DeliveredAt returns the fulfillment timestamp, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Claim assigns the order to the given courier and moves it to Taken.
//
// Valid only from New. A claim against a Taken order fails with a
// ConflictError and leaves the order untouched; a claim against Delivered
// fails with an InvalidTransitionError.
func (o *Order) Claim(courier kernel.Handle, at time.Time) error {
	if err := courier.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courier = &courier
	o.takenAt = &at
	return nil
}

// Release returns a Taken order to the unassigned pool: status reverts to
// New, the assignee and the claim timestamp are cleared. Fails with an
// InvalidTransitionError from any other status.
func (o *Order) Release() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courier = nil
	o.takenAt = nil
	return nil
}

// Complete marks a Taken order as fulfilled. The assignee is retained as
// history. Delivered is terminal: no further transition is valid afterward.
func (o *Order) Complete(at time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

// AttachMessage appends the handle of a newly delivered notification copy.
// Attaching an already recorded handle is a no-op, so re-deliveries stay
// idempotent.
func (o *Order) AttachMessage(handle MessageHandle) error {
	if err := handle.Validate(); err != nil {
		return err
	}

	for _, existing := range o.messages {
		if existing.IsEqual(handle) {
			return nil
		}
	}

	o.messages = append(o.messages, handle)
	return nil
}

// Messages returns a copy of the recorded message handles in delivery order.
func (o *Order) Messages() []MessageHandle {
	out := make([]MessageHandle, len(o.messages))
	copy(out, o.messages)
	return out
}
