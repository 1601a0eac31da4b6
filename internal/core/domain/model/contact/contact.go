// Package contact provides the contact aggregate: the mapping from a stable
// actor handle to the deliverable channel address, captured the first time
// the handle is observed interacting with the system. Contacts exist for
// every actor kind; whether a handle is a courier or an administrator is
// decided elsewhere.
package contact

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when using an improperly initialized Contact.
var ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact or RestoreContact")

// Contact records the deliverable channel address of one actor handle.
type Contact struct {
	// handle is the stable identity of the actor
	handle kernel.Handle

	// chatID is the channel address notifications are delivered to
	chatID int64

	firstSeenAt time.Time
	lastSeenAt  time.Time

	guard guard.ConstructorGuard
}

// NewContact records the first observation of a handle on a channel.
func NewContact(handle kernel.Handle, chatID int64, seenAt time.Time) (*Contact, error) {
	if err := handle.Validate(); err != nil {
		return nil, err
	}
	if chatID == 0 {
		return nil, errs.NewValueIsRequiredError("chatID")
	}
	if seenAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("seenAt")
	}

	return &Contact{
		handle:      handle,
		chatID:      chatID,
		firstSeenAt: seenAt,
		lastSeenAt:  seenAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreContact reconstructs a contact from persistence.
func RestoreContact(handle kernel.Handle, chatID int64, firstSeenAt, lastSeenAt time.Time) (*Contact, error) {
	c, err := NewContact(handle, chatID, firstSeenAt)
	if err != nil {
		return nil, err
	}
	c.lastSeenAt = lastSeenAt
	return c, nil
}

// Validate ensures the Contact was created through a constructor.
func (c *Contact) Validate() error {
	if c == nil {
		return ErrContactIsNotConstructed
	}
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// Handle returns the actor's stable identity.
func (c *Contact) Handle() kernel.Handle {
	return c.handle
}

// ChatID returns the deliverable channel address.
func (c *Contact) ChatID() int64 {
	return c.chatID
}

// FirstSeenAt returns when the handle was first observed.
func (c *Contact) FirstSeenAt() time.Time {
	return c.firstSeenAt
}

// LastSeenAt returns the most recent observation time.
func (c *Contact) LastSeenAt() time.Time {
	return c.lastSeenAt
}

// Touch updates the channel address and the last-seen timestamp. Telegram
// chat ids are stable per user, but the address is refreshed anyway in case
// the actor reappears on a different channel.
func (c *Contact) Touch(chatID int64, seenAt time.Time) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chatID")
	}

	c.chatID = chatID
	c.lastSeenAt = seenAt
	return nil
}
