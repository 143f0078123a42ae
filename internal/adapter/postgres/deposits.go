package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"trxclicker/internal/core/domain"
)

const depositColumns = `id, user_id, currency, amount, txid, status, created_at`

// DepositRepository implements port.DepositRepository.
type DepositRepository struct {
	s *Store
}

func (r *DepositRepository) CreateDeposit(ctx context.Context, d *domain.Deposit) error {
	_, err := r.s.q(ctx).Exec(ctx, `
		INSERT INTO deposits (`+depositColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.UserID, d.Currency, d.Amount, d.TxID, d.Status, d.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

func (r *DepositRepository) ListDepositsByUser(ctx context.Context, userID int64, limit int) ([]*domain.Deposit, error) {
	return r.list(ctx, `WHERE user_id = $2 ORDER BY created_at DESC LIMIT $1`, limit, userID)
}

func (r *DepositRepository) ListUnattributed(ctx context.Context, limit int) ([]*domain.Deposit, error) {
	return r.list(ctx, `WHERE user_id IS NULL AND status = 'pending' ORDER BY created_at LIMIT $1`, limit)
}

func (r *DepositRepository) list(ctx context.Context, where string, args ...any) ([]*domain.Deposit, error) {
	rows, err := r.s.q(ctx).Query(ctx, `SELECT `+depositColumns+` FROM deposits `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Deposit, error) {
		var d domain.Deposit
		err := row.Scan(&d.ID, &d.UserID, &d.Currency, &d.Amount, &d.TxID, &d.Status, &d.CreatedAt)
		return &d, err
	})
}

// DedupRepository stores processed transaction ids in tx_cache.
type DedupRepository struct {
	s *Store
}

func (r *DedupRepository) MarkSeen(ctx context.Context, txid string, at time.Time) error {
	_, err := r.s.q(ctx).Exec(ctx, `INSERT INTO tx_cache (txid, seen_at) VALUES ($1, $2)`, txid, at)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("insert txid: %w", err)
	}
	return nil
}

func (r *DedupRepository) Seen(ctx context.Context, txid string) (bool, error) {
	var seen bool
	err := r.s.q(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tx_cache WHERE txid = $1)`, txid).Scan(&seen)
	if err != nil {
		return false, fmt.Errorf("lookup txid: %w", err)
	}
	return seen, nil
}
