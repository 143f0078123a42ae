package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"trxclicker/internal/core/domain"
)

// transition moves a row of table from t.From to t.To with a conditional
// UPDATE. When no row matches, a follow-up lookup tells an unknown id apart
// from one whose status already moved on.
func transition[T any](ctx context.Context, q querier, table, columns string, t domain.Transition, scan func(pgx.Row) (T, error)) (T, error) {
	var zero T
	row := q.QueryRow(ctx, fmt.Sprintf(`
		UPDATE %s SET status = $3, decided_at = $4
		WHERE id = $1 AND status = $2
		RETURNING %s`, table, columns), t.ID, t.From, t.To, t.At)
	entity, err := scan(row)
	if err == nil {
		return entity, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return zero, fmt.Errorf("update %s status: %w", table, err)
	}
	var exists bool
	err = q.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), t.ID).Scan(&exists)
	if err != nil {
		return zero, fmt.Errorf("lookup %s: %w", table, err)
	}
	if !exists {
		return zero, domain.ErrNotFound
	}
	return zero, domain.ErrAlreadyDecided
}
