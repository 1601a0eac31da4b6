package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	New ──Claim──> Taken ──Complete──> Delivered
//	 ^              │
//	 └───Release────┘
//
// Delivered is terminal: no action is valid from it. Claiming an order that
// is already Taken is a conflict (the precondition was lost to a concurrent
// actor), every other out-of-edge action is an invalid transition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status: the order waits in the unassigned pool.
	New

	// Taken indicates a courier holds exclusive ownership of the order.
	Taken

	// Delivered indicates the order has been fulfilled. Terminal.
	Delivered
)

// getStatusStrings returns the wire representation of every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		New:       "new",
		Taken:     "taken",
		Delivered: "delivered",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation
// and parsing of external input.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:       "new",
		Taken:     "taken",
		Delivered: "delivered",
	}
}

// StatusFromString parses a Status from its wire representation
// ("new", "taken", or "delivered").
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of New, Taken, Delivered.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status ("new", "taken",
// "delivered"), or "unknown" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Claim transitions the status to Taken.
//
// Valid transition: New -> Taken.
//
// A claim against a Taken order fails with a ConflictError: the order was
// claimed by a concurrent actor and the caller must re-read current state.
// A claim against Delivered (or an invalid status) fails with an
// InvalidTransitionError.
func (s Status) Claim() (Status, error) {
	switch s {
	case New:
		return Taken, nil
	case Taken:
		return Unknown, errs.NewConflictError("order already taken")
	default:
		return Unknown, errs.NewInvalidTransitionError(ActionClaim.String(), s.String())
	}
}

// Release transitions the status back to New.
//
// Valid transition: Taken -> New. Any other source status fails with an
// InvalidTransitionError.
func (s Status) Release() (Status, error) {
	if s != Taken {
		return Unknown, errs.NewInvalidTransitionError(ActionRelease.String(), s.String())
	}
	return New, nil
}

// Complete transitions the status to the terminal Delivered.
//
// Valid transition: Taken -> Delivered. Any other source status fails with
// an InvalidTransitionError.
func (s Status) Complete() (Status, error) {
	if s != Taken {
		return Unknown, errs.NewInvalidTransitionError(ActionComplete.String(), s.String())
	}
	return Delivered, nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment: a New order must have no assignee, a Taken order must
// have one, and a Delivered order keeps its last courier.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != Taken && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()))
	}

	if !courier && s == Taken {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()))
	}

	return nil
}
