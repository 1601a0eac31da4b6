package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery retrieves every registered courier together with its
// deliverability: whether a chat is known for the handle.
type GetCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates a parameterless courier listing query.
func NewGetCouriersQuery() GetCouriersQuery {
	return GetCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// GetCouriersQueryResponse is the courier read model. ChatID and LastSeenAt
// are nil for couriers who have never contacted the system and therefore
// cannot receive notifications yet.
type GetCouriersQueryResponse struct {
	Handle       string
	RegisteredAt time.Time
	ChatID       *int64
	LastSeenAt   *time.Time
}
