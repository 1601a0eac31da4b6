// Package telegrambot implements the inbound Telegram adapter: the long-poll
// update loop, the inline action callbacks, and the admin and courier panels.
// It coordinates between Telegram updates and application use cases.
package telegrambot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/application/sessions"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot routes Telegram updates to the application layer.
type Bot struct {
	api *tgbotapi.BotAPI

	transitions   commands.TransitionOrderCommandHandler
	addCourier    commands.AddCourierCommandHandler
	removeCourier commands.RemoveCourierCommandHandler
	recordContact commands.RecordContactCommandHandler

	getOrders   queries.GetOrdersQueryHandler
	getCouriers queries.GetCouriersQueryHandler

	fanout   *notifications.Fanout
	sessions *sessions.Store
	admins   []kernel.Handle
	logger   *slog.Logger
}

// NewBot creates the inbound Telegram adapter.
func NewBot(
	api *tgbotapi.BotAPI,
	transitions commands.TransitionOrderCommandHandler,
	addCourier commands.AddCourierCommandHandler,
	removeCourier commands.RemoveCourierCommandHandler,
	recordContact commands.RecordContactCommandHandler,
	getOrders queries.GetOrdersQueryHandler,
	getCouriers queries.GetCouriersQueryHandler,
	fanout *notifications.Fanout,
	sessionStore *sessions.Store,
	admins []kernel.Handle,
	logger *slog.Logger,
) *Bot {
	return &Bot{
		api:           api,
		transitions:   transitions,
		addCourier:    addCourier,
		removeCourier: removeCourier,
		recordContact: recordContact,
		getOrders:     getOrders,
		getCouriers:   getCouriers,
		fanout:        fanout,
		sessions:      sessionStore,
		admins:        admins,
		logger:        logger.With("component", "telegram_bot"),
	}
}

// Run consumes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)
	b.logger.Info("update loop started", "bot", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	if message.From.UserName == "" {
		b.reply(message.Chat.ID, "Please set a Telegram username to use this bot.")
		return
	}

	actor, err := kernel.NewHandle(message.From.UserName)
	if err != nil {
		b.logger.Warn("unusable sender handle", "username", message.From.UserName, "error", err)
		return
	}

	b.captureContact(ctx, actor, message.Chat.ID)

	if message.IsCommand() {
		if message.Command() == "start" {
			b.sendPanel(ctx, message.Chat.ID, actor)
		}
		return
	}

	if kind, pending := b.sessions.Pop(message.Chat.ID); pending {
		b.handleSessionInput(ctx, message, actor, kind)
		return
	}

	b.handlePanelButton(ctx, message, actor)
}

// handleCallback processes an inline action press: parses the token, runs
// the transition, and on success propagates the new state to every
// notification copy and informs the admins.
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.From == nil || callback.From.UserName == "" {
		b.answerAlert(callback.ID, "Please set a Telegram username to use this bot.")
		return
	}

	actor, err := kernel.NewHandle(callback.From.UserName)
	if err != nil {
		b.answerAlert(callback.ID, "Please set a Telegram username to use this bot.")
		return
	}

	if callback.Message != nil {
		b.captureContact(ctx, actor, callback.Message.Chat.ID)
	}

	action, orderID, err := parseActionToken(callback.Data)
	if err != nil {
		b.logger.Warn("unparseable callback token", "data", callback.Data, "error", err)
		b.answerAlert(callback.ID, "This button is no longer valid.")
		return
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, action)
	if err != nil {
		b.answerAlert(callback.ID, "This button is no longer valid.")
		return
	}

	updated, err := b.transitions.Handle(ctx, cmd)
	if err != nil {
		b.answerAlert(callback.ID, transitionAlert(err))
		return
	}

	b.answer(callback.ID, fmt.Sprintf("Order №%s %s", orderID.String(), transitionPast(action)))

	sync := context.WithoutCancel(ctx)
	go b.syncAfterTransition(sync, updated, actor, action)
}

// syncAfterTransition edits every notification copy and sends the admin
// side-notification. Runs outside the callback handler so a slow Telegram
// API never delays the button response.
func (b *Bot) syncAfterTransition(ctx context.Context, updated *order.Order, actor kernel.Handle, action order.Action) {
	if err := b.fanout.Propagate(ctx, updated.ID()); err != nil {
		b.logger.Error("propagation failed", "order_id", updated.ID().String(), "error", err)
	}

	text := fmt.Sprintf("Order №%s %s by @%s", updated.ID().String(), transitionPast(action), actor.String())
	if err := b.fanout.NotifyAdmins(ctx, text); err != nil {
		b.logger.Error("admin notification failed", "order_id", updated.ID().String(), "error", err)
	}
}

func (b *Bot) captureContact(ctx context.Context, actor kernel.Handle, chatID int64) {
	cmd, err := commands.NewRecordContactCommand(actor, chatID)
	if err != nil {
		b.logger.Warn("contact not recorded", "handle", actor.String(), "error", err)
		return
	}
	if err := b.recordContact.Handle(ctx, cmd); err != nil {
		b.logger.Warn("contact not recorded", "handle", actor.String(), "error", err)
	}
}

// parseActionToken decodes "<verb>_<orderId>" callback data.
func parseActionToken(data string) (order.Action, kernel.OrderID, error) {
	verb, rawID, found := strings.Cut(data, "_")
	if !found {
		return order.ActionUnknown, kernel.OrderID{}, errs.NewValueIsInvalidError("callback data")
	}

	action, err := order.ActionFromVerb(verb)
	if err != nil {
		return order.ActionUnknown, kernel.OrderID{}, err
	}

	orderID, err := kernel.OrderIDFromString(rawID)
	if err != nil {
		return order.ActionUnknown, kernel.OrderID{}, err
	}

	return action, orderID, nil
}

// transitionAlert maps a transition failure to the alert shown to the
// pressing user.
func transitionAlert(err error) string {
	switch {
	case errors.Is(err, errs.ErrConflict):
		return "Too late, the order is already taken."
	case errors.Is(err, errs.ErrUnauthorized):
		return "You are not allowed to do that."
	case errors.Is(err, errs.ErrInvalidTransition):
		return "This action is not available anymore."
	case errors.Is(err, errs.ErrObjectNotFound):
		return "Order not found."
	default:
		return "Something went wrong, try again."
	}
}

func transitionPast(action order.Action) string {
	switch action {
	case order.ActionClaim:
		return "taken"
	case order.ActionRelease:
		return "released"
	case order.ActionComplete:
		return "delivered"
	default:
		return "updated"
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("reply not sent", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("reply not sent", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answer(callbackID string, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("callback answer not sent", "error", err)
	}
}

func (b *Bot) answerAlert(callbackID string, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		b.logger.Warn("callback alert not sent", "error", err)
	}
}
