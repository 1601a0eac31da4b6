package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keylock"
)

// TransitionOrderCommandHandler arbitrates order status transitions.
//
// Transitions on the same order are serialized through a per-order lock and
// then re-checked against the stored state inside the transaction, so when
// several actors press "take" on the same order only the first one wins and
// the rest receive a conflict. Authorization is resolved from the current
// courier registry on every call.
type TransitionOrderCommandHandler struct {
	uowFactory OrderCourierUoWFactory
	locks      *keylock.KeyedMutex
	admins     []kernel.Handle
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
// The admin handles form the privileged set that may act on any order.
func NewTransitionOrderCommandHandler(
	uowFactory OrderCourierUoWFactory,
	locks *keylock.KeyedMutex,
	admins []kernel.Handle,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		admins:     admins,
	}
}

// Handle processes the transition command and returns the updated order for
// rendering. The sequence is: serialize on the order, load the stored state,
// resolve the actor's role, authorize the action, apply the aggregate
// transition, persist.
//
// Error taxonomy: ObjectNotFoundError for an unknown order,
// UnauthorizedError when the actor may not perform the action,
// ConflictError when claiming an already taken order, and
// InvalidTransitionError for actions not valid at the current status.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	resolver := services.NewRoleResolver(h.admins, uow.CourierRepository())
	role, err := resolver.Resolve(ctx, cmd.Actor())
	if err != nil {
		return nil, err
	}

	if err = h.authorize(cmd, aggregate, role); err != nil {
		return nil, err
	}

	if err = h.apply(cmd, aggregate); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// authorize enforces who may perform which action. Claiming requires the
// courier or admin role. Releasing and completing additionally require being
// the assignee, unless the actor is an admin.
func (h TransitionOrderCommandHandler) authorize(
	cmd TransitionOrderCommand,
	aggregate *order.Order,
	role services.Role,
) error {
	if role == services.RoleAdmin {
		return nil
	}

	switch cmd.Action() {
	case order.ActionClaim:
		if role != services.RoleCourier {
			return errs.NewUnauthorizedError(cmd.Actor().String(), cmd.Action().String())
		}
	case order.ActionRelease, order.ActionComplete:
		if !aggregate.IsAssignedTo(cmd.Actor()) {
			return errs.NewUnauthorizedError(cmd.Actor().String(), cmd.Action().String())
		}
	default:
		return ErrActionIsInvalid
	}

	return nil
}

func (h TransitionOrderCommandHandler) apply(cmd TransitionOrderCommand, aggregate *order.Order) error {
	switch cmd.Action() {
	case order.ActionClaim:
		return aggregate.Claim(cmd.Actor(), time.Now())
	case order.ActionRelease:
		return aggregate.Release()
	case order.ActionComplete:
		return aggregate.Complete(time.Now())
	default:
		return ErrActionIsInvalid
	}
}
