package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"trxclicker/internal/core/domain"
)

type userRepo struct{ s *Store }

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Balances = maps.Clone(u.Balances)
	if c.Balances == nil {
		c.Balances = make(map[string]decimal.Decimal)
	}
	if u.ReferredBy != nil {
		ref := *u.ReferredBy
		c.ReferredBy = &ref
	}
	return &c
}

func (r userRepo) CreateUser(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return domain.ErrUserExists
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r userRepo) GetUser(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r userRepo) SetReferrer(_ context.Context, userID, referrerID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if u.ReferredBy != nil {
		return false, nil
	}
	u.ReferredBy = &referrerID
	return true, nil
}

func (r userRepo) AddReferralEarnings(_ context.Context, userID int64, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.ReferralEarnings = u.ReferralEarnings.Add(amount)
	return nil
}

func (r userRepo) ListUsers(_ context.Context, limit int) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := slices.Sorted(maps.Keys(r.s.users))
	out := make([]*domain.User, 0, min(limit, len(ids)))
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		out = append(out, cloneUser(r.s.users[id]))
	}
	return out, nil
}

type balanceRepo struct{ s *Store }

func (r balanceRepo) Credit(_ context.Context, userID int64, currency string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if u.Balances == nil {
		u.Balances = make(map[string]decimal.Decimal)
	}
	u.Balances[currency] = u.Balances[currency].Add(amount)
	return nil
}

func (r balanceRepo) DebitIfSufficient(_ context.Context, userID int64, currency string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if u.Balances[currency].LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	u.Balances[currency] = u.Balances[currency].Sub(amount)
	return nil
}

func (r balanceRepo) Balances(_ context.Context, userID int64) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := maps.Clone(u.Balances)
	if out == nil {
		out = make(map[string]decimal.Decimal)
	}
	return out, nil
}
