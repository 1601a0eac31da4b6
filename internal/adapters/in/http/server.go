// Package http exposes the engine's REST surface: order intake from the
// shop frontend and read endpoints for orders and couriers.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrder commands.CreateOrderCommandHandler
	getOrders   queries.GetOrdersQueryHandler
	getCouriers queries.GetCouriersQueryHandler
	fanout      *notifications.Fanout
	logger      *slog.Logger
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	getOrders queries.GetOrdersQueryHandler,
	getCouriers queries.GetCouriersQueryHandler,
	fanout *notifications.Fanout,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrder: createOrder,
		getOrders:   getOrders,
		getCouriers: getCouriers,
		fanout:      fanout,
		logger:      logger.With("component", "http"),
	}
}

// RegisterRoutes mounts the API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/orders", s.CreateOrder)
	e.GET("/api/orders", s.GetOrders)
	e.GET("/api/couriers", s.GetCouriers)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderRequest struct {
	TgNick         string `json:"tgNick"`
	City           string `json:"city"`
	DeliveryMethod string `json:"deliveryMethod"`
	PaymentMethod  string `json:"paymentMethod"`
	OrderText      string `json:"orderText"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

type createOrderResponse struct {
	OrderID string `json:"orderId"`
}

type orderResponse struct {
	ID             string     `json:"id"`
	Customer       string     `json:"customer"`
	City           string     `json:"city,omitempty"`
	DeliveryMethod string     `json:"deliveryMethod,omitempty"`
	PaymentMethod  string     `json:"paymentMethod,omitempty"`
	Content        string     `json:"content"`
	Date           string     `json:"date,omitempty"`
	Time           string     `json:"time,omitempty"`
	Status         string     `json:"status"`
	Courier        *string    `json:"courier,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	TakenAt        *time.Time `json:"takenAt,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
}

type courierResponse struct {
	Handle       string     `json:"handle"`
	RegisteredAt time.Time  `json:"registeredAt"`
	Reachable    bool       `json:"reachable"`
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/orders: registers an order on behalf of the
// customer and fans its notification out to every staff chat.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customer, err := kernel.NewHandle(request.TgNick)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "tgNick is required",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(customer, order.Details{
		City:           request.City,
		DeliveryMethod: request.DeliveryMethod,
		PaymentMethod:  request.PaymentMethod,
		Content:        request.OrderText,
		Date:           request.Date,
		Time:           request.Time,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "orderText is required",
		})
	}

	orderID, err := s.createOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.Error("order creation failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	// The order exists regardless of notification delivery; a fan-out
	// problem is logged, not surfaced to the customer.
	if err = s.fanout.Deliver(ctx.Request().Context(), orderID); err != nil {
		s.logger.Error("order notification fan-out failed",
			"order_id", orderID.String(), "error", err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

// GetOrders handles GET /api/orders with optional status and courier query
// parameters.
func (s *Server) GetOrders(ctx echo.Context) error {
	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Unknown status",
			})
		}
		statusFilter = &status
	}

	var courierFilter *kernel.Handle
	if raw := ctx.QueryParam("courier"); raw != "" {
		handle, err := kernel.NewHandle(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid courier handle",
			})
		}
		courierFilter = &handle
	}

	query, err := queries.NewGetOrdersQuery(statusFilter, courierFilter)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid filters",
		})
	}

	orders, err := s.getOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("order listing failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]orderResponse, len(orders))
	for i, listed := range orders {
		response[i] = orderResponse{
			ID:             listed.ID,
			Customer:       listed.Customer,
			City:           listed.City,
			DeliveryMethod: listed.DeliveryMethod,
			PaymentMethod:  listed.PaymentMethod,
			Content:        listed.Content,
			Date:           listed.Date,
			Time:           listed.Time,
			Status:         listed.Status,
			Courier:        listed.Courier,
			CreatedAt:      listed.CreatedAt,
			TakenAt:        listed.TakenAt,
			DeliveredAt:    listed.DeliveredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCouriers handles GET /api/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getCouriers.Handle(ctx.Request().Context(), queries.NewGetCouriersQuery())
	if err != nil {
		s.logger.Error("courier listing failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve couriers",
		})
	}

	response := make([]courierResponse, len(couriers))
	for i, member := range couriers {
		response[i] = courierResponse{
			Handle:       member.Handle,
			RegisteredAt: member.RegisteredAt,
			Reachable:    member.ChatID != nil,
			LastSeenAt:   member.LastSeenAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
