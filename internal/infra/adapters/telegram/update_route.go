package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-announce-relay/internal/domain/model"
)

// toEvent maps an update to a transport-free event. Updates the flow has no
// use for (edits, stickers, channel posts, ...) report ok=false.
func toEvent(up tgbotapi.Update) (model.Event, bool) {
	switch {
	case up.CallbackQuery != nil:
		return callbackEvent(up.CallbackQuery)
	case up.Message != nil:
		return messageEvent(up.Message)
	default:
		return model.Event{}, false
	}
}

func callbackEvent(q *tgbotapi.CallbackQuery) (model.Event, bool) {
	ev := model.Event{
		Kind:         model.EventCallback,
		CallbackID:   q.ID,
		CallbackData: strings.TrimSpace(q.Data),
	}
	if q.From != nil {
		ev.Username = q.From.UserName
	}
	if q.Message != nil && q.Message.Chat != nil {
		ev.ChatID = q.Message.Chat.ID
		ev.CallbackMessageID = q.Message.MessageID
	} else if q.From != nil {
		ev.ChatID = q.From.ID
	}
	return ev, ev.ChatID != 0 && ev.CallbackID != ""
}

func messageEvent(m *tgbotapi.Message) (model.Event, bool) {
	if m.Chat == nil || m.Text == "" {
		return model.Event{}, false
	}
	ev := model.Event{
		Kind:   model.EventText,
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}
	if m.From != nil {
		ev.Username = m.From.UserName
	}
	if m.IsCommand() {
		ev.Kind = model.EventCommand
		ev.Command = strings.ToLower(m.Command())
	}
	return ev, true
}
