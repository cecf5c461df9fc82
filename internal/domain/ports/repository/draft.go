package repository

import "context"

// DraftRepository keeps at most one pending announcement per chat.
type DraftRepository interface {
	// Put stores text for chatID, replacing any previous draft.
	Put(ctx context.Context, chatID int64, text string) error
	// Take returns and removes the draft for chatID. ok is false when
	// there was nothing to take.
	Take(ctx context.Context, chatID int64) (text string, ok bool, err error)
}
