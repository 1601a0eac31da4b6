// Package telegrambot implements the outbound messenger over the Telegram
// Bot API. Notification texts are MarkdownV2 and the interactive actions map
// to inline keyboard buttons whose callback data carries the action token.
package telegrambot

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// Messenger sends and edits notification messages through a Telegram bot.
type Messenger struct {
	api *tgbotapi.BotAPI
}

// NewMessenger creates a messenger over the given bot API client.
func NewMessenger(api *tgbotapi.BotAPI) *Messenger {
	return &Messenger{api: api}
}

var _ ports.Messenger = (*Messenger)(nil)

// Send delivers the payload as a new message and returns the handle that
// identifies the created message for later edits.
func (m *Messenger) Send(_ context.Context, chatID int64, payload services.Payload) (order.MessageHandle, error) {
	msg := tgbotapi.NewMessage(chatID, payload.Text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if keyboard := actionsKeyboard(payload.Actions); keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	sent, err := m.api.Send(msg)
	if err != nil {
		return order.MessageHandle{}, errors.Wrapf(err, "send message to chat %d", chatID)
	}

	return order.NewMessageHandle(chatID, sent.MessageID)
}

// Edit replaces the text and inline keyboard of a previously sent message.
func (m *Messenger) Edit(_ context.Context, handle order.MessageHandle, payload services.Payload) error {
	edit := tgbotapi.NewEditMessageText(handle.ChatID(), handle.MessageID(), payload.Text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	edit.ReplyMarkup = actionsKeyboard(payload.Actions)

	if _, err := m.api.Send(edit); err != nil {
		return errors.Wrapf(err, "edit message %s", handle.String())
	}

	return nil
}

// Notify delivers a plain text message without markup or keyboard.
func (m *Messenger) Notify(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := m.api.Send(msg); err != nil {
		return errors.Wrapf(err, "notify chat %d", chatID)
	}

	return nil
}

// actionsKeyboard maps payload actions to an inline keyboard, one button per
// row. Returns nil when the payload carries no actions so terminal statuses
// render without a keyboard.
func actionsKeyboard(actions []services.Action) *tgbotapi.InlineKeyboardMarkup {
	if len(actions) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(actions))
	for _, action := range actions {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(action.Label, action.Token),
		))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}
