package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRecordContactCommandIsNotConstructed = errors.New(
		"RecordContactCommand must be created via NewRecordContactCommand constructor",
	)
	ErrChatIDIsRequired = errors.New("chat id is required")
)

// RecordContactCommand captures the chat id a handle is reachable at.
// Issued on every inbound interaction so notification delivery learns where
// to send messages without any explicit enrollment step.
type RecordContactCommand struct { //nolint:recvcheck //using for validation
	handle kernel.Handle
	chatID int64

	guard guard.ConstructorGuard
}

// NewRecordContactCommand creates a command to record a handle-to-chat
// binding.
func NewRecordContactCommand(handle kernel.Handle, chatID int64) (RecordContactCommand, error) {
	contactCommand := RecordContactCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		contactCommand.setHandle(handle),
		contactCommand.setChatID(chatID),
	); err != nil {
		return RecordContactCommand{}, err
	}

	return contactCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordContactCommand) Validate() error {
	return c.guard.Validate(ErrRecordContactCommandIsNotConstructed)
}

// Handle returns the contact's handle.
func (c RecordContactCommand) Handle() kernel.Handle {
	return c.handle
}

// ChatID returns the chat the handle was seen in.
func (c RecordContactCommand) ChatID() int64 {
	return c.chatID
}

func (c *RecordContactCommand) setHandle(handle kernel.Handle) error {
	if err := handle.Validate(); err != nil {
		return err
	}

	c.handle = handle
	return nil
}

func (c *RecordContactCommand) setChatID(chatID int64) error {
	if chatID == 0 {
		return ErrChatIDIsRequired
	}

	c.chatID = chatID
	return nil
}
