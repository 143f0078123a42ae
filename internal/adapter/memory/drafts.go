package memory

import (
	"context"
	"sync"
	"time"

	"trxclicker/internal/core/domain"
)

// DraftRepository keeps drafts in process. Expired drafts are dropped on read.
type DraftRepository struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	drafts map[int64]draftEntry
}

type draftEntry struct {
	draft     domain.Draft
	expiresAt time.Time
}

func NewDraftRepository(ttl time.Duration) *DraftRepository {
	return &DraftRepository{ttl: ttl, now: time.Now, drafts: make(map[int64]draftEntry)}
}

func (r *DraftRepository) GetDraft(_ context.Context, sessionID int64) (*domain.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(sessionID)
}

func (r *DraftRepository) TakeDraft(_ context.Context, sessionID int64) (*domain.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.get(sessionID)
	if err != nil {
		return nil, err
	}
	delete(r.drafts, sessionID)
	return d, nil
}

// get must be called with r.mu held.
func (r *DraftRepository) get(sessionID int64) (*domain.Draft, error) {
	e, ok := r.drafts[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.drafts, sessionID)
		return nil, domain.ErrNotFound
	}
	d := e.draft
	return &d, nil
}

func (r *DraftRepository) SaveDraft(_ context.Context, draft *domain.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draft.SessionID] = draftEntry{draft: *draft, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *DraftRepository) DeleteDraft(_ context.Context, sessionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, sessionID)
	return nil
}
