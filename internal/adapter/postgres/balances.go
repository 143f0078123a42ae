package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"trxclicker/internal/core/domain"
)

// BalanceRepository implements the atomic balance primitives. Balances live in
// one row per (user, currency) guarded by a non-negative CHECK constraint.
type BalanceRepository struct {
	s *Store
}

// Credit upserts the balance row. The INSERT ... SELECT yields no row for an
// unknown user, which is reported as domain.ErrNotFound.
func (r *BalanceRepository) Credit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	tag, err := r.s.q(ctx).Exec(ctx, `
		INSERT INTO balances (user_id, currency, amount)
		SELECT id, $2, $3::numeric FROM users WHERE id = $1
		ON CONFLICT (user_id, currency)
		DO UPDATE SET amount = balances.amount + EXCLUDED.amount`, userID, currency, amount)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DebitIfSufficient decrements in one conditional UPDATE; no row updated
// means the balance was missing or too low.
func (r *BalanceRepository) DebitIfSufficient(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	tag, err := r.s.q(ctx).Exec(ctx, `
		UPDATE balances SET amount = amount - $3::numeric
		WHERE user_id = $1 AND currency = $2 AND amount >= $3::numeric`, userID, currency, amount)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r *BalanceRepository) Balances(ctx context.Context, userID int64) (map[string]decimal.Decimal, error) {
	var exists bool
	if err := r.s.q(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	rows, err := r.s.q(ctx).Query(ctx, `SELECT currency, amount FROM balances WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}
	out := make(map[string]decimal.Decimal)
	var (
		cur string
		amt decimal.Decimal
	)
	_, err = pgx.ForEachRow(rows, []any{&cur, &amt}, func() error {
		out[cur] = amt
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan balances: %w", err)
	}
	return out, nil
}
