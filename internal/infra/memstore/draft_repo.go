package memstore

import (
	"context"
	"sync"

	"telegram-announce-relay/internal/domain/ports/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo holds pending announcements in process memory.
// Drafts never expire and are lost on restart.
type DraftRepo struct {
	mu     sync.Mutex
	drafts map[int64]string
}

func NewDraftRepo() *DraftRepo {
	return &DraftRepo{drafts: make(map[int64]string)}
}

func (r *DraftRepo) Put(_ context.Context, chatID int64, text string) error {
	r.mu.Lock()
	r.drafts[chatID] = text
	r.mu.Unlock()
	return nil
}

func (r *DraftRepo) Take(_ context.Context, chatID int64) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text, ok := r.drafts[chatID]
	if ok {
		delete(r.drafts, chatID)
	}
	return text, ok, nil
}

// Len is the number of chats with a pending draft.
func (r *DraftRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}
