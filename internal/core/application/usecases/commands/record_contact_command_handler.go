package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/contact"
	"dispatch/internal/pkg/errs"
)

// RecordContactCommandHandler upserts handle-to-chat bindings. A new handle
// becomes a contact; a known handle gets its chat id and last-seen time
// refreshed, which also covers users whose chat id changed.
type RecordContactCommandHandler struct {
	uowFactory ContactUoWFactory
}

// NewRecordContactCommandHandler creates a handler for contact capture.
func NewRecordContactCommandHandler(uowFactory ContactUoWFactory) RecordContactCommandHandler {
	return RecordContactCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the contact capture command.
func (h RecordContactCommandHandler) Handle(ctx context.Context, cmd RecordContactCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	contactRepo := uow.ContactRepository()

	aggregate, err := contactRepo.Get(ctx, cmd.Handle())
	switch {
	case err == nil:
		if err = aggregate.Touch(cmd.ChatID(), time.Now()); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		aggregate, err = contact.NewContact(cmd.Handle(), cmd.ChatID(), time.Now())
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err = contactRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
