package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"trxclicker/internal/core/domain"
)

type record interface {
	domain.Reservable
	SetStatus(domain.Status, time.Time)
}

// pending is the shared implementation of campaign and withdrawal storage.
type pending[T record] struct {
	s     *Store
	items map[string]T
	clone func(T) T
	born  func(T) time.Time
}

func (r pending[T]) Create(_ context.Context, entity T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[entity.Hold().UserID]; !ok {
		return domain.ErrNotFound
	}
	r.items[entity.EntityID()] = r.clone(entity)
	return nil
}

func (r pending[T]) Get(_ context.Context, id string) (T, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return r.clone(e), nil
}

func (r pending[T]) Transition(_ context.Context, t domain.Transition) (T, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var zero T
	e, ok := r.items[t.ID]
	if !ok {
		return zero, domain.ErrNotFound
	}
	if e.CurrentStatus() != t.From {
		return zero, domain.ErrAlreadyDecided
	}
	e.SetStatus(t.To, t.At)
	return r.clone(e), nil
}

func (r pending[T]) ListPending(_ context.Context, limit int) ([]T, error) {
	return r.list(limit, true, func(e T) bool { return e.CurrentStatus() == domain.StatusPending }), nil
}

func (r pending[T]) ListByUser(_ context.Context, userID int64, limit int) ([]T, error) {
	return r.list(limit, false, func(e T) bool { return e.Hold().UserID == userID }), nil
}

// list returns matching items newest first, or oldest first for queues.
// Ties on creation time fall back to the K-sortable id.
func (r pending[T]) list(limit int, oldestFirst bool, match func(T) bool) []T {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []T
	for _, e := range r.items {
		if match(e) {
			out = append(out, r.clone(e))
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		return cmp.Or(r.born(b).Compare(r.born(a)), cmp.Compare(b.EntityID(), a.EntityID()))
	})
	if oldestFirst {
		slices.Reverse(out)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type campaignRepo struct {
	pending[*domain.Campaign]
}

func (r campaignRepo) ListActive(_ context.Context, limit int) ([]*domain.Campaign, error) {
	return r.list(limit, false, func(c *domain.Campaign) bool { return c.Status == domain.StatusActive }), nil
}

func campaignCreated(c *domain.Campaign) time.Time     { return c.CreatedAt }
func withdrawalCreated(w *domain.Withdrawal) time.Time { return w.CreatedAt }

func cloneCampaign(c *domain.Campaign) *domain.Campaign {
	cp := *c
	return &cp
}

func cloneWithdrawal(w *domain.Withdrawal) *domain.Withdrawal {
	cp := *w
	return &cp
}
