// Package notifications keeps every delivered copy of an order notification
// in sync with the order's stored state. Copies are fanned out to all staff
// chats when an order is created and edited in place after every status
// transition, so each chat always shows the current status and the actions
// valid for it.
package notifications

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Fanout delivers and synchronizes notification copies.
//
// Delivery is best effort per recipient: one unreachable chat never blocks
// the others, the failure is logged and that copy is skipped. Message handles
// are persisted append-only, separately from order state, so a fan-out
// running concurrently with a status transition cannot overwrite it.
type Fanout struct {
	uowFactory ports.UnitOfWorkFactory
	messenger  ports.Messenger
	renderer   services.StatusRenderer
	admins     []kernel.Handle
	logger     *slog.Logger
}

// NewFanout creates the notification fan-out. The admin handles are always
// part of the recipient set in addition to the registered couriers.
func NewFanout(
	uowFactory ports.UnitOfWorkFactory,
	messenger ports.Messenger,
	admins []kernel.Handle,
	logger *slog.Logger,
) *Fanout {
	return &Fanout{
		uowFactory: uowFactory,
		messenger:  messenger,
		renderer:   services.NewStatusRenderer(),
		admins:     admins,
		logger:     logger.With("component", "notifications"),
	}
}

// Deliver sends a copy of the order's notification to every deliverable
// staff chat and records the created message handles. Recipients without a
// known chat are skipped.
func (f *Fanout) Deliver(ctx context.Context, orderID kernel.OrderID) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	payload, err := f.renderer.Render(aggregate)
	if err != nil {
		return err
	}

	chatIDs, err := f.staffChats(ctx, uow)
	if err != nil {
		return err
	}

	handles := make([]order.MessageHandle, 0, len(chatIDs))
	for _, chatID := range chatIDs {
		handle, sendErr := f.messenger.Send(ctx, chatID, payload)
		if sendErr != nil {
			f.logger.Warn("notification copy not delivered",
				"order_id", orderID.String(), "chat_id", chatID, "error", sendErr)
			continue
		}
		handles = append(handles, handle)
	}

	if len(handles) > 0 {
		if err = uow.OrderRepository().AppendMessages(ctx, orderID, handles); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// DeliverCopy sends one additional copy of the order's notification to the
// given chat and records its handle, so later transitions update this copy
// too. Used when a courier browses active orders.
func (f *Fanout) DeliverCopy(ctx context.Context, orderID kernel.OrderID, chatID int64) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	payload, err := f.renderer.Render(aggregate)
	if err != nil {
		return err
	}

	handle, err := f.messenger.Send(ctx, chatID, payload)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().AppendMessages(ctx, orderID, []order.MessageHandle{handle}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// Propagate re-renders the order and edits every recorded copy in place.
// A failed edit is logged and skipped; the handle stays recorded so the copy
// gets another chance on the next transition.
func (f *Fanout) Propagate(ctx context.Context, orderID kernel.OrderID) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload, err := f.renderer.Render(aggregate)
	if err != nil {
		return err
	}

	for _, handle := range aggregate.Messages() {
		if editErr := f.messenger.Edit(ctx, handle, payload); editErr != nil {
			f.logger.Warn("notification copy not updated",
				"order_id", orderID.String(), "message", handle.String(), "error", editErr)
		}
	}

	return nil
}

// NotifyAdmins sends a plain informational text to every deliverable admin
// chat.
func (f *Fanout) NotifyAdmins(ctx context.Context, text string) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chatIDs, err := f.resolveChats(ctx, uow.ContactRepository(), f.admins)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	f.notifyAll(ctx, chatIDs, text)
	return nil
}

// Broadcast sends a plain text to every deliverable registered courier.
// Returns how many chats received it.
func (f *Fanout) Broadcast(ctx context.Context, text string) (int, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couriers, err := uow.CourierRepository().GetAll(ctx)
	if err != nil {
		return 0, err
	}

	handles := make([]kernel.Handle, 0, len(couriers))
	for _, member := range couriers {
		handles = append(handles, member.Handle())
	}

	chatIDs, err := f.resolveChats(ctx, uow.ContactRepository(), handles)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return f.notifyAll(ctx, chatIDs, text), nil
}

// staffChats resolves the full recipient set: configured admins plus every
// registered courier, deduplicated by chat.
func (f *Fanout) staffChats(ctx context.Context, uow ports.UnitOfWork) ([]int64, error) {
	couriers, err := uow.CourierRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	handles := make([]kernel.Handle, 0, len(f.admins)+len(couriers))
	handles = append(handles, f.admins...)
	for _, member := range couriers {
		handles = append(handles, member.Handle())
	}

	return f.resolveChats(ctx, uow.ContactRepository(), handles)
}

// resolveChats maps handles to chat ids through the contact store. Handles
// never seen by the system are logged and skipped.
func (f *Fanout) resolveChats(
	ctx context.Context,
	contacts ports.ContactRepository,
	handles []kernel.Handle,
) ([]int64, error) {
	seen := make(map[int64]struct{}, len(handles))
	chatIDs := make([]int64, 0, len(handles))

	for _, handle := range handles {
		known, err := contacts.Get(ctx, handle)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				f.logger.Debug("recipient has no known chat", "handle", handle.String())
				continue
			}
			return nil, err
		}

		if _, dup := seen[known.ChatID()]; dup {
			continue
		}
		seen[known.ChatID()] = struct{}{}
		chatIDs = append(chatIDs, known.ChatID())
	}

	return chatIDs, nil
}

func (f *Fanout) notifyAll(ctx context.Context, chatIDs []int64, text string) int {
	delivered := 0
	for _, chatID := range chatIDs {
		if err := f.messenger.Notify(ctx, chatID, text); err != nil {
			f.logger.Warn("notification not delivered", "chat_id", chatID, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}
