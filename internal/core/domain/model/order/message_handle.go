package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMessageHandleIsNotConstructed indicates that a MessageHandle was not
// created through the NewMessageHandle constructor.
var ErrMessageHandleIsNotConstructed = errs.NewValueIsRequiredError(
	"MessageHandle must be created via NewMessageHandle")

// MessageHandle is an opaque reference to a notification copy previously
// delivered to one recipient: the channel it was sent to and the message
// reference within that channel. It is recorded when the copy is delivered
// and used later to edit the copy in place. Handles are never removed from
// an order, even when a later edit fails.
type MessageHandle struct {
	chatID    int64
	messageID int

	guard guard.ConstructorGuard
}

// NewMessageHandle creates a MessageHandle for a delivered notification copy.
// Both the channel id and the message reference must be non-zero.
func NewMessageHandle(chatID int64, messageID int) (MessageHandle, error) {
	if chatID == 0 {
		return MessageHandle{}, errs.NewValueIsRequiredError("chatID")
	}
	if messageID == 0 {
		return MessageHandle{}, errs.NewValueIsRequiredError("messageID")
	}

	return MessageHandle{
		chatID:    chatID,
		messageID: messageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the MessageHandle was created through NewMessageHandle.
func (m MessageHandle) Validate() error {
	return m.guard.Validate(ErrMessageHandleIsNotConstructed)
}

// IsEqual compares two handles by channel id and message reference.
func (m MessageHandle) IsEqual(other MessageHandle) bool {
	return m.chatID == other.chatID && m.messageID == other.messageID
}

// ChatID returns the recipient channel the copy was delivered to.
func (m MessageHandle) ChatID() int64 {
	return m.chatID
}

// MessageID returns the message reference within the channel.
func (m MessageHandle) MessageID() int {
	return m.messageID
}

// String returns a compact representation for logs.
func (m MessageHandle) String() string {
	return fmt.Sprintf("%d/%d", m.chatID, m.messageID)
}
