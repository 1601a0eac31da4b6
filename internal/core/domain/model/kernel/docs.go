// Package kernel provides core domain primitives for the dispatch system.
// It implements fundamental building blocks following Domain-Driven Design
// principles: immutable value objects created through validating constructors.
//
// The package contains:
//   - OrderID: the fixed-width decimal order identifier
//   - Handle: the stable identity of an actor (customer, courier, or admin)
package kernel
