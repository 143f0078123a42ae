package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/adapter/postgres"
	"trxclicker/internal/adapter/storetest"
	"trxclicker/internal/core/port"
	"trxclicker/internal/db"
)

func TestStoreContract(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}
	require.NoError(t, db.Migrate(dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	storetest.Run(t, func(t *testing.T) port.Store {
		_, err := pool.Exec(context.Background(),
			`TRUNCATE users, balances, campaigns, withdrawals, deposits, tx_cache CASCADE`)
		require.NoError(t, err)
		return postgres.NewStore(pool)
	})
}
