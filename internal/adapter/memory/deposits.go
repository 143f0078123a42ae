package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"trxclicker/internal/core/domain"
)

type depositRepo struct{ s *Store }

func (r depositRepo) CreateDeposit(_ context.Context, dep *domain.Deposit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *dep
	r.s.deposits[dep.ID] = &cp
	return nil
}

func (r depositRepo) ListDepositsByUser(_ context.Context, userID int64, limit int) ([]*domain.Deposit, error) {
	return r.list(limit, false, func(d *domain.Deposit) bool { return d.UserID != nil && *d.UserID == userID }), nil
}

func (r depositRepo) ListUnattributed(_ context.Context, limit int) ([]*domain.Deposit, error) {
	return r.list(limit, true, func(d *domain.Deposit) bool {
		return d.UserID == nil && d.Status == domain.DepositPending
	}), nil
}

func (r depositRepo) list(limit int, oldestFirst bool, match func(*domain.Deposit) bool) []*domain.Deposit {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Deposit
	for _, d := range r.s.deposits {
		if match(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Deposit) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	if oldestFirst {
		slices.Reverse(out)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type dedupRepo struct{ s *Store }

func (r dedupRepo) MarkSeen(_ context.Context, txid string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.seen[txid]; ok {
		return domain.ErrDuplicateTransaction
	}
	r.s.seen[txid] = domain.SeenTransaction{TxID: txid, SeenAt: at}
	return nil
}

func (r dedupRepo) Seen(_ context.Context, txid string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.seen[txid]
	return ok, nil
}
