package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAddCourierCommandIsNotConstructed = errors.New(
	"AddCourierCommand must be created via NewAddCourierCommand constructor",
)

// AddCourierCommand represents an admin request to register a courier handle.
type AddCourierCommand struct { //nolint:recvcheck //using for validation
	actor  kernel.Handle
	handle kernel.Handle

	guard guard.ConstructorGuard
}

// NewAddCourierCommand creates a command to register a courier.
// Validates both the acting admin handle and the handle to register.
func NewAddCourierCommand(actor kernel.Handle, handle kernel.Handle) (AddCourierCommand, error) {
	courierCommand := AddCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courierCommand.setActor(actor),
		courierCommand.setHandle(handle),
	); err != nil {
		return AddCourierCommand{}, err
	}

	return courierCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCourierCommand) Validate() error {
	return c.guard.Validate(ErrAddCourierCommandIsNotConstructed)
}

// Actor returns the handle of the admin issuing the command.
func (c AddCourierCommand) Actor() kernel.Handle {
	return c.actor
}

// Handle returns the courier handle to register.
func (c AddCourierCommand) Handle() kernel.Handle {
	return c.handle
}

func (c *AddCourierCommand) setActor(actor kernel.Handle) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AddCourierCommand) setHandle(handle kernel.Handle) error {
	if err := handle.Validate(); err != nil {
		return err
	}

	c.handle = handle
	return nil
}
