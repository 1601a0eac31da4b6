// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates, indexed for querying by status and courier assignment.
type OrderDTO struct {
	ID             string `gorm:"type:varchar(6);primaryKey"`
	Customer       string `gorm:"type:varchar(64);not null"`
	City           string
	DeliveryMethod string
	PaymentMethod  string
	Content        string `gorm:"not null"`
	Date           string
	TimeSlot       string
	Status         int     `gorm:"index"`
	Courier        *string `gorm:"type:varchar(64);index"`
	CreatedAt      time.Time
	TakenAt        *time.Time
	DeliveredAt    *time.Time
	Messages       []MessageDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// MessageDTO represents one delivered notification copy. The unique index
// over (order_id, chat_id, message_id) makes handle recording idempotent:
// re-inserting an already recorded copy is a silent no-op.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   string    `gorm:"type:varchar(6);uniqueIndex:idx_order_messages_handle"`
	ChatID    int64     `gorm:"uniqueIndex:idx_order_messages_handle"`
	MessageID int       `gorm:"uniqueIndex:idx_order_messages_handle"`
}

// TableName specifies the database table name for notification copies.
func (MessageDTO) TableName() string {
	return "order_messages"
}

// fromDomain converts an order domain aggregate to its database
// representation. Message handles are mapped separately by AppendMessages
// and are not part of the write path here.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courier *string
	if c := aggregate.Courier(); c != nil {
		raw := c.String()
		courier = &raw
	}

	return OrderDTO{
		ID:             aggregate.ID().String(),
		Customer:       aggregate.Customer().String(),
		City:           aggregate.Details().City,
		DeliveryMethod: aggregate.Details().DeliveryMethod,
		PaymentMethod:  aggregate.Details().PaymentMethod,
		Content:        aggregate.Details().Content,
		Date:           aggregate.Details().Date,
		TimeSlot:       aggregate.Details().Time,
		Status:         int(aggregate.Status()),
		Courier:        courier,
		CreatedAt:      aggregate.CreatedAt(),
		TakenAt:        aggregate.TakenAt(),
		DeliveredAt:    aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate, including
// its recorded notification copies, using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	customer, err := kernel.NewHandle(dto.Customer)
	if err != nil {
		return nil, err
	}

	var courier *kernel.Handle
	if dto.Courier != nil {
		handle, courierErr := kernel.NewHandle(*dto.Courier)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &handle
	}

	messages := make([]order.MessageHandle, 0, len(dto.Messages))
	for _, messageDTO := range dto.Messages {
		handle, messageErr := order.NewMessageHandle(messageDTO.ChatID, messageDTO.MessageID)
		if messageErr != nil {
			return nil, messageErr
		}
		messages = append(messages, handle)
	}

	details := order.Details{
		City:           dto.City,
		DeliveryMethod: dto.DeliveryMethod,
		PaymentMethod:  dto.PaymentMethod,
		Content:        dto.Content,
		Date:           dto.Date,
		Time:           dto.TimeSlot,
	}

	return order.RestoreOrder(
		id,
		customer,
		details,
		order.Status(dto.Status),
		courier,
		dto.CreatedAt,
		dto.TakenAt,
		dto.DeliveredAt,
		messages,
	)
}
