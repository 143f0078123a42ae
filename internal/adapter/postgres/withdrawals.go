package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"trxclicker/internal/core/domain"
)

const withdrawalColumns = `id, user_id, currency, amount, address, status, created_at, decided_at`

// WithdrawalRepository implements port.WithdrawalRepository.
type WithdrawalRepository struct {
	s *Store
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	if err := row.Scan(&w.ID, &w.UserID, &w.Currency, &w.Amount, &w.Address, &w.Status, &w.CreatedAt, &w.DecidedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	_, err := r.s.q(ctx).Exec(ctx, `
		INSERT INTO withdrawals (`+withdrawalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.ID, w.UserID, w.Currency, w.Amount, w.Address, w.Status, w.CreatedAt, w.DecidedAt)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

func (r *WithdrawalRepository) Get(ctx context.Context, id string) (*domain.Withdrawal, error) {
	w, err := scanWithdrawal(r.s.q(ctx).QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select withdrawal: %w", err)
	}
	return w, nil
}

func (r *WithdrawalRepository) Transition(ctx context.Context, t domain.Transition) (*domain.Withdrawal, error) {
	return transition(ctx, r.s.q(ctx), "withdrawals", withdrawalColumns, t, scanWithdrawal)
}

func (r *WithdrawalRepository) ListPending(ctx context.Context, limit int) ([]*domain.Withdrawal, error) {
	return r.list(ctx, `WHERE status = 'pending' ORDER BY created_at LIMIT $1`, limit)
}

func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Withdrawal, error) {
	return r.list(ctx, `WHERE user_id = $2 ORDER BY created_at DESC LIMIT $1`, limit, userID)
}

func (r *WithdrawalRepository) list(ctx context.Context, where string, args ...any) ([]*domain.Withdrawal, error) {
	rows, err := r.s.q(ctx).Query(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Withdrawal, error) {
		return scanWithdrawal(row)
	})
}
