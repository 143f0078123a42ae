package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Demo accounts created by Seed. The first one is meant to be listed in
// LEDGER_ADMIN_IDS.
var seedUsers = []struct {
	id       int64
	balances map[string]string
}{
	{id: 1000001, balances: map[string]string{"TRX": "500", "USDT": "50"}},
	{id: 1000002, balances: map[string]string{"TRX": "100"}},
	{id: 1000003, balances: map[string]string{"TRX": "10"}},
	{id: 1000004},
}

// Seed inserts demo users with balances. It is idempotent: existing rows
// are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range seedUsers {
		if _, err = tx.Exec(ctx, `INSERT INTO users (id) VALUES ($1) ON CONFLICT DO NOTHING`, u.id); err != nil {
			return fmt.Errorf("seed user %d: %w", u.id, err)
		}
		for cur, amt := range u.balances {
			_, err = tx.Exec(ctx, `INSERT INTO balances (user_id, currency, amount)
VALUES ($1, $2, $3::numeric) ON CONFLICT DO NOTHING`, u.id, cur, amt)
			if err != nil {
				return fmt.Errorf("seed balance %d/%s: %w", u.id, cur, err)
			}
		}
	}
	// the last demo user was referred by the first one
	_, err = tx.Exec(ctx, `UPDATE users SET referred_by = $1 WHERE id = $2 AND referred_by IS NULL`,
		seedUsers[0].id, seedUsers[len(seedUsers)-1].id)
	if err != nil {
		return fmt.Errorf("seed referral: %w", err)
	}
	return tx.Commit(ctx)
}
