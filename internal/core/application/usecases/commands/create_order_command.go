package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderContentIsRequired = errors.New("order content is required")
)

// CreateOrderCommand represents a request to register a new order on behalf
// of a customer. Carries the customer handle and the free-form order details;
// the order identifier is generated by the handler.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer kernel.Handle
	details  order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the customer handle is valid and the order content is not
// empty. The remaining detail fields are optional.
func NewCreateOrderCommand(customer kernel.Handle, details order.Details) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomer(customer),
		orderCommand.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Customer returns the handle of the customer the order belongs to.
func (c CreateOrderCommand) Customer() kernel.Handle {
	return c.customer
}

// Details returns the order details.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setCustomer(customer kernel.Handle) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if details.Content == "" {
		return ErrOrderContentIsRequired
	}

	c.details = details
	return nil
}
