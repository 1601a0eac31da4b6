package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order read models from the database.
// Uses direct SQL for read performance and to avoid rehydrating aggregates
// just for display.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns matching orders, oldest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			customer,
			city,
			delivery_method,
			payment_method,
			content,
			date,
			time_slot,
			status,
			courier,
			created_at,
			taken_at,
			delivered_at
		FROM orders
	`
	args := make([]any, 0, 2)

	switch {
	case query.Status() != nil && query.Courier() != nil:
		sql += ` WHERE status = ? AND courier = ?`
		args = append(args, int(*query.Status()), query.Courier().String())
	case query.Status() != nil:
		sql += ` WHERE status = ?`
		args = append(args, int(*query.Status()))
	case query.Courier() != nil:
		sql += ` WHERE courier = ?`
		args = append(args, query.Courier().String())
	}
	sql += ` ORDER BY created_at`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var orderResp GetOrdersQueryResponse
		var status int

		err = rows.Scan(
			&orderResp.ID,
			&orderResp.Customer,
			&orderResp.City,
			&orderResp.DeliveryMethod,
			&orderResp.PaymentMethod,
			&orderResp.Content,
			&orderResp.Date,
			&orderResp.Time,
			&status,
			&orderResp.Courier,
			&orderResp.CreatedAt,
			&orderResp.TakenAt,
			&orderResp.DeliveredAt,
		)
		if err != nil {
			return nil, err
		}

		orderResp.Status = order.Status(status).String()
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
