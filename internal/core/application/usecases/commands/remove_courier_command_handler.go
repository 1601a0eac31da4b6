package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// RemoveCourierCommandHandler removes courier handles from the registry on
// behalf of admins. Removal revokes the courier role for future actions but
// never touches orders: an order already taken by the removed courier keeps
// its assignee, who may still release or complete it.
type RemoveCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	admins     []kernel.Handle
}

// NewRemoveCourierCommandHandler creates a handler for courier removal.
func NewRemoveCourierCommandHandler(uowFactory CourierUoWFactory, admins []kernel.Handle) RemoveCourierCommandHandler {
	return RemoveCourierCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
	}
}

// Handle processes the removal command. Only admins may remove couriers.
// Returns ObjectNotFoundError if the handle is not a registry member.
func (h RemoveCourierCommandHandler) Handle(ctx context.Context, cmd RemoveCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !isAdminHandle(h.admins, cmd.Actor()) {
		return errs.NewUnauthorizedError(cmd.Actor().String(), "remove courier")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CourierRepository().Remove(ctx, cmd.Handle()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
