package repository

import "context"

// FlowMessageRepository remembers the last menu/prompt/preview message the
// bot showed in each chat, so it can be removed before the next one.
type FlowMessageRepository interface {
	SetLast(ctx context.Context, chatID int64, messageID int) error
	GetLast(ctx context.Context, chatID int64) (messageID int, ok bool, err error)
	// ForgetIf drops the reference only when it still points at messageID.
	ForgetIf(ctx context.Context, chatID int64, messageID int) error
}
