package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveCourierCommandIsNotConstructed = errors.New(
	"RemoveCourierCommand must be created via NewRemoveCourierCommand constructor",
)

// RemoveCourierCommand represents an admin request to remove a courier
// handle from the registry.
type RemoveCourierCommand struct { //nolint:recvcheck //using for validation
	actor  kernel.Handle
	handle kernel.Handle

	guard guard.ConstructorGuard
}

// NewRemoveCourierCommand creates a command to remove a courier.
func NewRemoveCourierCommand(actor kernel.Handle, handle kernel.Handle) (RemoveCourierCommand, error) {
	courierCommand := RemoveCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courierCommand.setActor(actor),
		courierCommand.setHandle(handle),
	); err != nil {
		return RemoveCourierCommand{}, err
	}

	return courierCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCourierCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCourierCommandIsNotConstructed)
}

// Actor returns the handle of the admin issuing the command.
func (c RemoveCourierCommand) Actor() kernel.Handle {
	return c.actor
}

// Handle returns the courier handle to remove.
func (c RemoveCourierCommand) Handle() kernel.Handle {
	return c.handle
}

func (c *RemoveCourierCommand) setActor(actor kernel.Handle) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RemoveCourierCommand) setHandle(handle kernel.Handle) error {
	if err := handle.Validate(); err != nil {
		return err
	}

	c.handle = handle
	return nil
}
