package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ErrOrderIDSpaceExhausted is returned when identifier generation keeps
// colliding with stored orders. Practically unreachable until the identifier
// space is nearly full.
var ErrOrderIDSpaceExhausted = errors.New("could not generate a unique order id")

// orderIDAttempts bounds identifier generation so a nearly full identifier
// space fails loudly instead of looping forever.
const orderIDAttempts = 20

// CreateOrderCommandHandler handles the business logic for order creation.
// Generates a collision-free order identifier and persists the order in
// "new" status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the identifier of
// the created order. Identifier generation retries on collision, checking
// uniqueness against already stored orders before inserting.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orderID, err := h.generateFreeID(ctx, orderRepo)
	if err != nil {
		return kernel.OrderID{}, err
	}

	aggregate, err := order.NewOrder(orderID, cmd.Customer(), cmd.Details(), time.Now())
	if err != nil {
		return kernel.OrderID{}, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return kernel.OrderID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	return orderID, nil
}

func (h CreateOrderCommandHandler) generateFreeID(ctx context.Context, orderRepo ports.OrderRepository) (kernel.OrderID, error) {
	for range orderIDAttempts {
		orderID := kernel.GenerateOrderID()

		taken, err := orderRepo.Exists(ctx, orderID)
		if err != nil {
			return kernel.OrderID{}, err
		}
		if !taken {
			return orderID, nil
		}
	}

	return kernel.OrderID{}, ErrOrderIDSpaceExhausted
}
