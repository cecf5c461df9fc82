package repository

import (
	"context"

	"telegram-announce-relay/internal/domain/model"
)

// StateRepository is the port for the per-chat conversation state.
// A chat without a stored state is Idle.
type StateRepository interface {
	SetState(ctx context.Context, chatID int64, state model.ConversationState) error
	GetState(ctx context.Context, chatID int64) (model.ConversationState, error)
	ClearState(ctx context.Context, chatID int64) error
}
