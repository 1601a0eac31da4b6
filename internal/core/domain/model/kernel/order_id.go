package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// orderIDMin and orderIDMax bound the sampled id space. Every id is a
	// six-digit decimal string, so ids remain fixed-width and never carry a
	// leading zero.
	orderIDMin = 100000
	orderIDMax = 999999
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not created through
// one of the constructor functions.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via GenerateOrderID or OrderIDFromString")

var orderIDPattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// OrderID is a value object representing the unique identifier of an order:
// a fixed-length six-digit decimal string in the range 100000-999999.
//
// The zero value of OrderID is invalid and must be constructed using
// GenerateOrderID or OrderIDFromString.
//
// Example:
//
//	id := kernel.GenerateOrderID()
//	fmt.Println(id.String()) // e.g. "482913"
type OrderID struct {
	value string

	guard guard.ConstructorGuard
}

// GenerateOrderID samples a random id from the six-digit decimal space.
// Uniqueness against existing orders is the caller's responsibility; order
// creation retries on collision up to a bounded attempt count.
func GenerateOrderID() OrderID {
	n := orderIDMin + rand.IntN(orderIDMax-orderIDMin+1)
	return OrderID{
		value: fmt.Sprintf("%06d", n),
		guard: guard.NewConstructorGuard(),
	}
}

// OrderIDFromString parses an OrderID from its string representation.
// Returns an error unless the input is exactly six decimal digits with a
// non-zero leading digit.
func OrderIDFromString(s string) (OrderID, error) {
	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	if !orderIDPattern.MatchString(s) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q is not a six-digit decimal id", s))
	}

	return OrderID{value: s, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the OrderID was created through a constructor.
func (id OrderID) Validate() error {
	return id.guard.Validate(ErrOrderIDIsNotConstructed)
}

// IsEqual compares two order ids by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// String returns the six-digit decimal representation.
func (id OrderID) String() string {
	return id.value
}
