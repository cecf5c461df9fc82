// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// ParseMode values understood by the transport.
const (
	ParseModeNone = ""
	ParseModeHTML = "HTML"
)

// SendMessageParams describes one outbound text message.
// Keyboard renders a persistent reply keyboard; Buttons render inline buttons
// under the message. Setting both is not supported by Telegram, Buttons win.
type SendMessageParams struct {
	ChatID    int64
	Text      string
	ParseMode string
	Keyboard  [][]string
	Buttons   [][]InlineButton
}

type BotCommand struct {
	Command     string
	Description string
}

// MessengerAdapter is the outbound half of the bot transport.
type MessengerAdapter interface {
	// SendMessage returns the id of the message that was sent.
	SendMessage(ctx context.Context, params SendMessageParams) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID string) error
	SetCommands(ctx context.Context, commands []BotCommand) error
}
