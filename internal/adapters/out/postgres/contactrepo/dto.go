// Package contactrepo provides data transfer objects and mapping functions
// for the contact book: the handle-to-chat bindings captured on first
// contact.
package contactrepo

import (
	"time"

	"dispatch/internal/core/domain/model/contact"
	"dispatch/internal/core/domain/model/kernel"
)

// ContactDTO represents the database structure for contact bindings.
type ContactDTO struct {
	Handle      string `gorm:"type:varchar(64);primaryKey"`
	ChatID      int64  `gorm:"not null"`
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}

// TableName specifies the database table name for contact entities.
func (ContactDTO) TableName() string {
	return "contacts"
}

// fromDomain converts a contact domain aggregate to its database
// representation.
func fromDomain(aggregate *contact.Contact) ContactDTO {
	return ContactDTO{
		Handle:      aggregate.Handle().String(),
		ChatID:      aggregate.ChatID(),
		FirstSeenAt: aggregate.FirstSeenAt(),
		LastSeenAt:  aggregate.LastSeenAt(),
	}
}

// toDomain converts a database DTO to a contact domain aggregate.
func toDomain(dto ContactDTO) (*contact.Contact, error) {
	handle, err := kernel.NewHandle(dto.Handle)
	if err != nil {
		return nil, err
	}

	return contact.RestoreContact(handle, dto.ChatID, dto.FirstSeenAt, dto.LastSeenAt)
}
