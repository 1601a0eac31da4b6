// Package courierrepo provides data transfer objects and mapping functions
// for the courier registry.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for registry members.
// The handle itself is the primary key: one registration per handle.
type CourierDTO struct {
	Handle       string `gorm:"type:varchar(64);primaryKey"`
	RegisteredAt time.Time
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		Handle:       aggregate.Handle().String(),
		RegisteredAt: aggregate.RegisteredAt(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	handle, err := kernel.NewHandle(dto.Handle)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(handle, dto.RegisteredAt)
}
