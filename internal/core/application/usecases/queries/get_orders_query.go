// Package queries contains read-side operations over the stored data.
// Query handlers bypass the aggregates and read the database directly,
// returning flat read models shaped for their consumers.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves orders with optional status and courier filters.
// With no filters it returns every stored order.
type GetOrdersQuery struct {
	status  *order.Status
	courier *kernel.Handle

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order listing query. Either filter may be nil.
func NewGetOrdersQuery(status *order.Status, courier *kernel.Handle) (GetOrdersQuery, error) {
	ordersQuery := GetOrdersQuery{guard: guard.NewConstructorGuard()}

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		ordersQuery.status = status
	}

	if courier != nil {
		if err := courier.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		ordersQuery.courier = courier
	}

	return ordersQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, nil when unset.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// Courier returns the courier filter, nil when unset.
func (q GetOrdersQuery) Courier() *kernel.Handle {
	return q.courier
}

// GetOrdersQueryResponse is the flat order read model.
type GetOrdersQueryResponse struct {
	ID             string
	Customer       string
	City           string
	DeliveryMethod string
	PaymentMethod  string
	Content        string
	Date           string
	Time           string
	Status         string
	Courier        *string
	CreatedAt      time.Time
	TakenAt        *time.Time
	DeliveredAt    *time.Time
}
