package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrCourierAlreadyRegistered is returned when the handle is already a
// registry member.
var ErrCourierAlreadyRegistered = errors.New("courier is already registered")

// AddCourierCommandHandler registers courier handles on behalf of admins.
// Registration is idempotent in effect but reports an explicit error on a
// duplicate so the admin gets feedback instead of silence.
type AddCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	admins     []kernel.Handle
}

// NewAddCourierCommandHandler creates a handler for courier registration.
func NewAddCourierCommandHandler(uowFactory CourierUoWFactory, admins []kernel.Handle) AddCourierCommandHandler {
	return AddCourierCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
	}
}

// Handle processes the registration command. Only admins may register
// couriers.
func (h AddCourierCommandHandler) Handle(ctx context.Context, cmd AddCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !isAdminHandle(h.admins, cmd.Actor()) {
		return errs.NewUnauthorizedError(cmd.Actor().String(), "add courier")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	_, err := courierRepo.Get(ctx, cmd.Handle())
	if err == nil {
		return ErrCourierAlreadyRegistered
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := courier.NewCourier(cmd.Handle(), time.Now())
	if err != nil {
		return err
	}

	if err = courierRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func isAdminHandle(admins []kernel.Handle, actor kernel.Handle) bool {
	for _, admin := range admins {
		if admin.IsEqual(actor) {
			return true
		}
	}
	return false
}
