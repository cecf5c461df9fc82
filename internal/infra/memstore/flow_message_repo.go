package memstore

import (
	"context"
	"sync"

	"telegram-announce-relay/internal/domain/ports/repository"
)

var _ repository.FlowMessageRepository = (*FlowMessageRepo)(nil)

type FlowMessageRepo struct {
	mu   sync.Mutex
	last map[int64]int
}

func NewFlowMessageRepo() *FlowMessageRepo {
	return &FlowMessageRepo{last: make(map[int64]int)}
}

func (r *FlowMessageRepo) SetLast(_ context.Context, chatID int64, messageID int) error {
	r.mu.Lock()
	r.last[chatID] = messageID
	r.mu.Unlock()
	return nil
}

func (r *FlowMessageRepo) GetLast(_ context.Context, chatID int64) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.last[chatID]
	return id, ok, nil
}

func (r *FlowMessageRepo) ForgetIf(_ context.Context, chatID int64, messageID int) error {
	r.mu.Lock()
	if r.last[chatID] == messageID {
		delete(r.last, chatID)
	}
	r.mu.Unlock()
	return nil
}
