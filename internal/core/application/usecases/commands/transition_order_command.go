package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrActionIsInvalid = errors.New("action must be claim, release, or complete")
)

// TransitionOrderCommand represents a request by an actor to move an order
// through its lifecycle: claim it, release it back, or complete it.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	actor   kernel.Handle
	action  order.Action

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command for an order status transition.
// Validates the order identifier, the actor handle, and the action.
func NewTransitionOrderCommand(
	orderID kernel.OrderID,
	actor kernel.Handle,
	action order.Action,
) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setActor(actor),
		transitionCommand.setAction(action),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Actor returns the handle of the actor requesting the transition.
func (c TransitionOrderCommand) Actor() kernel.Handle {
	return c.actor
}

// Action returns the requested transition.
func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setActor(actor kernel.Handle) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setAction(action order.Action) error {
	switch action {
	case order.ActionClaim, order.ActionRelease, order.ActionComplete:
		c.action = action
		return nil
	default:
		return ErrActionIsInvalid
	}
}
