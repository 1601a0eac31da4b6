package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// Messenger is the outbound notification surface. Implementations deliver
// rendered payloads to chats and edit previously delivered copies in place.
type Messenger interface {
	// Send delivers the payload to the chat as a new message and returns
	// the handle that identifies the created message for later edits.
	Send(ctx context.Context, chatID int64, payload services.Payload) (order.MessageHandle, error)

	// Edit replaces the text and actions of a previously sent message.
	Edit(ctx context.Context, handle order.MessageHandle, payload services.Payload) error

	// Notify delivers a plain informational text to the chat. The message
	// is fire-and-forget: no handle is retained and it is never edited.
	Notify(ctx context.Context, chatID int64, text string) error
}
