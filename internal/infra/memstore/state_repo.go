package memstore

import (
	"context"
	"sync"

	"telegram-announce-relay/internal/domain/model"
	"telegram-announce-relay/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo manages per-chat conversation state in memory.
type StateRepo struct {
	mu     sync.RWMutex
	states map[int64]model.ConversationState
}

func NewStateRepo() *StateRepo {
	return &StateRepo{states: make(map[int64]model.ConversationState)}
}

func (s *StateRepo) SetState(ctx context.Context, chatID int64, state model.ConversationState) error {
	if state == model.StateIdle || state == "" {
		return s.ClearState(ctx, chatID)
	}
	s.mu.Lock()
	s.states[chatID] = state
	s.mu.Unlock()
	return nil
}

func (s *StateRepo) GetState(_ context.Context, chatID int64) (model.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.states[chatID]; ok {
		return st, nil
	}
	return model.StateIdle, nil
}

func (s *StateRepo) ClearState(_ context.Context, chatID int64) error {
	s.mu.Lock()
	delete(s.states, chatID)
	s.mu.Unlock()
	return nil
}
