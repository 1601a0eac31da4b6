package telegrambot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/application/sessions"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Panel button labels. The reply keyboard sends them back as plain message
// text, so routing matches on these exact strings.
const (
	buttonActiveOrders    = "📦 Active orders"
	buttonCompletedOrders = "✅ Completed orders"
	buttonAddCourier      = "➕ Add courier"
	buttonRemoveCourier   = "➖ Remove courier"
	buttonListCouriers    = "👥 Couriers"
	buttonBroadcast       = "📣 Broadcast"
	buttonCancel          = "⬅️ Cancel"
)

func adminKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonActiveOrders),
			tgbotapi.NewKeyboardButton(buttonCompletedOrders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonAddCourier),
			tgbotapi.NewKeyboardButton(buttonRemoveCourier),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonListCouriers),
			tgbotapi.NewKeyboardButton(buttonBroadcast),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func courierKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonActiveOrders),
			tgbotapi.NewKeyboardButton(buttonCompletedOrders),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonCancel),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func (b *Bot) isAdmin(actor kernel.Handle) bool {
	for _, admin := range b.admins {
		if admin.IsEqual(actor) {
			return true
		}
	}
	return false
}

func (b *Bot) isCourier(ctx context.Context, actor kernel.Handle) bool {
	couriers, err := b.getCouriers.Handle(ctx, queries.NewGetCouriersQuery())
	if err != nil {
		b.logger.Error("courier lookup failed", "error", err)
		return false
	}

	for _, member := range couriers {
		if member.Handle == actor.String() {
			return true
		}
	}
	return false
}

// sendPanel greets the actor with the keyboard for their role. Customers get
// no panel: staff workflows are not theirs.
func (b *Bot) sendPanel(ctx context.Context, chatID int64, actor kernel.Handle) {
	switch {
	case b.isAdmin(actor):
		b.replyWithKeyboard(chatID, "Admin panel.", adminKeyboard())
	case b.isCourier(ctx, actor):
		b.replyWithKeyboard(chatID, "Courier panel. New orders will arrive here.", courierKeyboard())
	default:
		b.reply(chatID, "Hello! You will be notified here once there is something for you.")
	}
}

func (b *Bot) handlePanelButton(ctx context.Context, message *tgbotapi.Message, actor kernel.Handle) {
	admin := b.isAdmin(actor)
	if !admin && !b.isCourier(ctx, actor) {
		return
	}

	switch message.Text {
	case buttonActiveOrders:
		b.showActiveOrders(ctx, message.Chat.ID, actor)
	case buttonCompletedOrders:
		b.showCompletedOrders(ctx, message.Chat.ID, actor, admin)
	case buttonAddCourier:
		if admin {
			b.sessions.Begin(message.Chat.ID, sessions.KindAwaitingCourierAdd)
			b.replyWithKeyboard(message.Chat.ID, "Send the courier's @username.", cancelKeyboard())
		}
	case buttonRemoveCourier:
		if admin {
			b.sessions.Begin(message.Chat.ID, sessions.KindAwaitingCourierRemove)
			b.replyWithKeyboard(message.Chat.ID, "Send the @username to remove.", cancelKeyboard())
		}
	case buttonListCouriers:
		if admin {
			b.showCouriers(ctx, message.Chat.ID)
		}
	case buttonBroadcast:
		if admin {
			b.sessions.Begin(message.Chat.ID, sessions.KindAwaitingBroadcast)
			b.replyWithKeyboard(message.Chat.ID, "Send the text to broadcast to all couriers.", cancelKeyboard())
		}
	}
}

// handleSessionInput consumes the message an admin panel action was waiting
// for.
func (b *Bot) handleSessionInput(ctx context.Context, message *tgbotapi.Message, actor kernel.Handle, kind sessions.Kind) {
	if message.Text == buttonCancel {
		b.sendPanel(ctx, message.Chat.ID, actor)
		return
	}

	switch kind {
	case sessions.KindAwaitingCourierAdd:
		b.finishCourierAdd(ctx, message, actor)
	case sessions.KindAwaitingCourierRemove:
		b.finishCourierRemove(ctx, message, actor)
	case sessions.KindAwaitingBroadcast:
		b.finishBroadcast(ctx, message, actor)
	}
}

func (b *Bot) finishCourierAdd(ctx context.Context, message *tgbotapi.Message, actor kernel.Handle) {
	handle, err := kernel.NewHandle(message.Text)
	if err != nil {
		b.reply(message.Chat.ID, "That does not look like a username, try again from the panel.")
		b.sendPanel(ctx, message.Chat.ID, actor)
		return
	}

	cmd, err := commands.NewAddCourierCommand(actor, handle)
	if err != nil {
		b.reply(message.Chat.ID, "That does not look like a username, try again from the panel.")
		b.sendPanel(ctx, message.Chat.ID, actor)
		return
	}

	switch err = b.addCourier.Handle(ctx, cmd); {
	case err == nil:
		b.reply(message.Chat.ID, fmt.Sprintf("@%s is now a courier.", handle.String()))
	case errors.Is(err, commands.ErrCourierAlreadyRegistered):
		b.reply(message.Chat.ID, fmt.Sprintf("@%s is already a courier.", handle.String()))
	default:
		b.logger.Error("courier registration failed", "handle", handle.String(), "error", err)
		b.reply(message.Chat.ID, "Something went wrong, try again.")
	}

	b.sendPanel(ctx, message.Chat.ID, actor)
}

func (b *Bot) finishCourierRemove(ctx context.Context, message *tgbotapi.Message, actor kernel.Handle) {
	handle, err := kernel.NewHandle(message.Text)
	if err != nil {
		b.reply(message.Chat.ID, "That does not look like a username, try again from the panel.")
		b.sendPanel(ctx, message.Chat.ID, actor)
		return
	}

	cmd, err := commands.NewRemoveCourierCommand(actor, handle)
	if err != nil {
		b.reply(message.Chat.ID, "That does not look like a username, try again from the panel.")
		b.sendPanel(ctx, message.Chat.ID, actor)
		return
	}

	switch err = b.removeCourier.Handle(ctx, cmd); {
	case err == nil:
		b.reply(message.Chat.ID, fmt.Sprintf("@%s is no longer a courier.", handle.String()))
	case errors.Is(err, errs.ErrObjectNotFound):
		b.reply(message.Chat.ID, fmt.Sprintf("@%s is not a courier.", handle.String()))
	default:
		b.logger.Error("courier removal failed", "handle", handle.String(), "error", err)
		b.reply(message.Chat.ID, "Something went wrong, try again.")
	}

	b.sendPanel(ctx, message.Chat.ID, actor)
}

func (b *Bot) finishBroadcast(ctx context.Context, message *tgbotapi.Message, actor kernel.Handle) {
	delivered, err := b.fanout.Broadcast(ctx, message.Text)
	if err != nil {
		b.logger.Error("broadcast failed", "error", err)
		b.reply(message.Chat.ID, "Something went wrong, try again.")
	} else {
		b.reply(message.Chat.ID, fmt.Sprintf("Broadcast delivered to %d couriers.", delivered))
	}

	b.sendPanel(ctx, message.Chat.ID, actor)
}

// showActiveOrders delivers a fresh notification copy of every order the
// actor can act on: unassigned new orders plus their own taken ones. The
// copies are recorded, so they stay in sync from here on.
func (b *Bot) showActiveOrders(ctx context.Context, chatID int64, actor kernel.Handle) {
	newStatus := order.New
	takenStatus := order.Taken

	query, err := queries.NewGetOrdersQuery(&newStatus, nil)
	if err != nil {
		b.logger.Error("order listing failed", "error", err)
		return
	}
	unassigned, err := b.getOrders.Handle(ctx, query)
	if err != nil {
		b.logger.Error("order listing failed", "error", err)
		return
	}

	var taken []queries.GetOrdersQueryResponse
	if b.isAdmin(actor) {
		query, err = queries.NewGetOrdersQuery(&takenStatus, nil)
	} else {
		query, err = queries.NewGetOrdersQuery(&takenStatus, &actor)
	}
	if err != nil {
		b.logger.Error("order listing failed", "error", err)
		return
	}
	taken, err = b.getOrders.Handle(ctx, query)
	if err != nil {
		b.logger.Error("order listing failed", "error", err)
		return
	}

	active := append(unassigned, taken...)
	if len(active) == 0 {
		b.reply(chatID, "No active orders.")
		return
	}

	for _, listed := range active {
		orderID, idErr := kernel.OrderIDFromString(listed.ID)
		if idErr != nil {
			b.logger.Error("stored order has unusable id", "id", listed.ID, "error", idErr)
			continue
		}
		if copyErr := b.fanout.DeliverCopy(ctx, orderID, chatID); copyErr != nil {
			b.logger.Warn("order copy not delivered", "order_id", listed.ID, "error", copyErr)
		}
	}
}

// showCompletedOrders renders delivered orders as a plain summary. Couriers
// see their own deliveries; admins see everyone's, grouped by courier.
func (b *Bot) showCompletedOrders(ctx context.Context, chatID int64, actor kernel.Handle, admin bool) {
	deliveredStatus := order.Delivered

	var query queries.GetOrdersQuery
	var err error
	if admin {
		query, err = queries.NewGetOrdersQuery(&deliveredStatus, nil)
	} else {
		query, err = queries.NewGetOrdersQuery(&deliveredStatus, &actor)
	}
	if err != nil {
		b.logger.Error("order listing failed", "error", err)
		return
	}

	delivered, err := b.getOrders.Handle(ctx, query)
	if err != nil {
		b.logger.Error("order listing failed", "error", err)
		return
	}

	if len(delivered) == 0 {
		b.reply(chatID, "No completed orders yet.")
		return
	}

	if admin {
		b.reply(chatID, renderCompletedByCourier(delivered))
		return
	}
	b.reply(chatID, renderCompletedList(delivered))
}

func (b *Bot) showCouriers(ctx context.Context, chatID int64) {
	couriers, err := b.getCouriers.Handle(ctx, queries.NewGetCouriersQuery())
	if err != nil {
		b.logger.Error("courier listing failed", "error", err)
		return
	}

	if len(couriers) == 0 {
		b.reply(chatID, "No couriers registered.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Couriers:\n")
	for _, member := range couriers {
		if member.ChatID != nil {
			fmt.Fprintf(&sb, "@%s\n", member.Handle)
		} else {
			fmt.Fprintf(&sb, "@%s (has not contacted the bot yet)\n", member.Handle)
		}
	}
	b.reply(chatID, sb.String())
}

func renderCompletedList(delivered []queries.GetOrdersQueryResponse) string {
	var sb strings.Builder
	sb.WriteString("Completed orders:\n")
	for _, listed := range delivered {
		fmt.Fprintf(&sb, "№%s - %s\n", listed.ID, listed.Content)
	}
	return sb.String()
}

func renderCompletedByCourier(delivered []queries.GetOrdersQueryResponse) string {
	byCourier := make(map[string][]queries.GetOrdersQueryResponse)
	names := make([]string, 0)
	for _, listed := range delivered {
		name := "(unassigned)"
		if listed.Courier != nil {
			name = *listed.Courier
		}
		if _, seen := byCourier[name]; !seen {
			names = append(names, name)
		}
		byCourier[name] = append(byCourier[name], listed)
	}

	var sb strings.Builder
	sb.WriteString("Completed orders:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "\n@%s:\n", name)
		for _, listed := range byCourier[name] {
			fmt.Fprintf(&sb, "№%s - %s\n", listed.ID, listed.Content)
		}
	}
	return sb.String()
}
