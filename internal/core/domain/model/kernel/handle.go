package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrHandleIsNotConstructed indicates that a Handle was not created through
// the NewHandle constructor.
var ErrHandleIsNotConstructed = errs.NewValueIsRequiredError("Handle must be created via NewHandle")

// Handle is a value object representing the stable identity of an actor:
// the username under which a customer, courier, or administrator interacts
// with the system. A leading "@" and surrounding whitespace are stripped, so
// "@courier_a" and "courier_a" name the same actor.
//
// The zero value of Handle is invalid and must be constructed via NewHandle.
type Handle struct {
	value string

	guard guard.ConstructorGuard
}

// NewHandle creates a Handle from a raw username. Returns an error when the
// input is empty after normalization.
func NewHandle(raw string) (Handle, error) {
	normalized := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	if normalized == "" {
		return Handle{}, errs.NewValueIsRequiredError("handle")
	}

	return Handle{value: normalized, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the Handle was created through NewHandle.
func (h Handle) Validate() error {
	return h.guard.Validate(ErrHandleIsNotConstructed)
}

// IsEqual compares two handles by normalized value.
func (h Handle) IsEqual(other Handle) bool {
	return h.value == other.value
}

// String returns the normalized username without the "@" prefix.
func (h Handle) String() string {
	return h.value
}
