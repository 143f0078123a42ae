package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"trxclicker/internal/core/domain"
)

// UserRepository implements port.UserRepository.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.s.q(ctx).QueryRow(ctx, `
		INSERT INTO users (id, referral_earnings, created_at)
		VALUES ($1, 0, $2)
		RETURNING created_at`, user.ID, user.CreatedAt).Scan(&user.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.s.q(ctx).QueryRow(ctx, `
		SELECT id, referred_by, referral_earnings, created_at
		FROM users WHERE id = $1`, id).Scan(&u.ID, &u.ReferredBy, &u.ReferralEarnings, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	if u.Balances, err = (&BalanceRepository{r.s}).Balances(ctx, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetReferrer only writes while referred_by is NULL, so concurrent
// registrations of the same user can set it at most once.
func (r *UserRepository) SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error) {
	tag, err := r.s.q(ctx).Exec(ctx, `
		UPDATE users SET referred_by = $2
		WHERE id = $1 AND referred_by IS NULL`, userID, referrerID)
	if isForeignKeyViolation(err) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("set referrer: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if _, err = r.GetUser(ctx, userID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *UserRepository) AddReferralEarnings(ctx context.Context, userID int64, amount decimal.Decimal) error {
	tag, err := r.s.q(ctx).Exec(ctx, `
		UPDATE users SET referral_earnings = referral_earnings + $2
		WHERE id = $1`, userID, amount)
	if err != nil {
		return fmt.Errorf("add referral earnings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListUsers(ctx context.Context, limit int) ([]*domain.User, error) {
	rows, err := r.s.q(ctx).Query(ctx, `
		SELECT u.id, u.referred_by, u.referral_earnings, u.created_at,
		       COALESCE(jsonb_object_agg(b.currency, b.amount::text) FILTER (WHERE b.currency IS NOT NULL), '{}'::jsonb)
		FROM users u
		LEFT JOIN balances b ON b.user_id = u.id
		GROUP BY u.id
		ORDER BY u.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.User, error) {
		var (
			u   domain.User
			raw map[string]string
		)
		if err := row.Scan(&u.ID, &u.ReferredBy, &u.ReferralEarnings, &u.CreatedAt, &raw); err != nil {
			return nil, err
		}
		u.Balances = make(map[string]decimal.Decimal, len(raw))
		for cur, amt := range raw {
			d, err := decimal.NewFromString(amt)
			if err != nil {
				return nil, fmt.Errorf("balance %s of user %d: %w", cur, u.ID, err)
			}
			u.Balances[cur] = d
		}
		return &u, nil
	})
}
