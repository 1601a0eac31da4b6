package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCouriersQueryHandler retrieves courier read models from the database.
// Joins the contact book so each courier carries its deliverability.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetCouriersQueryHandler creates a handler for courier listing queries.
// Requires a GORM database connection for query execution.
func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

// Handle executes the query and returns couriers in registration order.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) ([]GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.handle,
			c.registered_at,
			ct.chat_id,
			ct.last_seen_at
		FROM couriers c
		LEFT JOIN contacts ct ON ct.handle = c.handle
		ORDER BY c.registered_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]GetCouriersQueryResponse, 0)
	for rows.Next() {
		var courierResp GetCouriersQueryResponse

		err = rows.Scan(
			&courierResp.Handle,
			&courierResp.RegisteredAt,
			&courierResp.ChatID,
			&courierResp.LastSeenAt,
		)
		if err != nil {
			return nil, err
		}

		couriers = append(couriers, courierResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
