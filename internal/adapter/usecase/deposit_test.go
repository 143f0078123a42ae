package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

func userRef(id int64) *int64 { return &id }

func TestIngestCreditsRepeatedTxIDOnce(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "0")
	ctx := context.Background()

	batch := []port.FeedRecord{{TxID: "tx-1", Amount: dec("5"), Currency: "trx", UserID: userRef(10)}}
	for poll := 0; poll < 3; poll++ {
		report, err := a.deposits.Ingest(ctx, batch)
		require.NoError(t, err)
		if poll == 0 {
			assert.Equal(t, port.IngestReport{Credited: 1}, report)
		} else {
			assert.Equal(t, port.IngestReport{Duplicates: 1}, report)
		}
	}
	requireDecimal(t, "5", a.balance(t, 10, "TRX"))

	deps, err := a.deposits.ListMine(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, domain.DepositCompleted, deps[0].Status)
	require.NotNil(t, deps[0].TxID)
	assert.Equal(t, "tx-1", *deps[0].TxID)
}

func TestIngestUnattributedDeposits(t *testing.T) {
	a := newApp(t, nil)
	ctx := context.Background()

	report, err := a.deposits.Ingest(ctx, []port.FeedRecord{
		{TxID: "no-memo", Amount: dec("3"), Currency: "TRX"},
		{TxID: "ghost", Amount: dec("4"), Currency: "TRX", UserID: userRef(999)},
	})
	require.NoError(t, err)
	assert.Equal(t, port.IngestReport{Unattributed: 2}, report)

	for _, txid := range []string{"no-memo", "ghost"} {
		seen, err := a.store.Dedup().Seen(ctx, txid)
		require.NoError(t, err)
		assert.True(t, seen, txid)
	}

	list, err := a.deposits.ListUnattributed(ctx, adminID, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, d := range list {
		assert.Nil(t, d.UserID)
		assert.Equal(t, domain.DepositPending, d.Status)
	}

	_, err = a.deposits.ListUnattributed(ctx, 42, 10)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// a later poll carrying the same txid must not credit anyone
	a.newUser(t, 999, "0")
	report, err = a.deposits.Ingest(ctx, []port.FeedRecord{{TxID: "ghost", Amount: dec("4"), Currency: "TRX", UserID: userRef(999)}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Duplicates)
	assert.True(t, a.balance(t, 999, "TRX").IsZero())
}

func TestIngestSkipsMalformedWithoutMarking(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "0")
	ctx := context.Background()

	report, err := a.deposits.Ingest(ctx, []port.FeedRecord{
		{TxID: "", Amount: dec("5"), Currency: "TRX", UserID: userRef(10)},
		{TxID: "zero", Amount: dec("0"), Currency: "TRX", UserID: userRef(10)},
		{TxID: "neg", Amount: dec("-1"), Currency: "TRX", UserID: userRef(10)},
		{TxID: "btc", Amount: dec("5"), Currency: "BTC", UserID: userRef(10)},
		{TxID: "fine", Amount: dec("5.0000001"), Currency: "TRX", UserID: userRef(10)},
	})
	require.NoError(t, err)
	assert.Equal(t, port.IngestReport{Malformed: 5}, report)

	for _, txid := range []string{"zero", "neg", "btc", "fine"} {
		seen, err := a.store.Dedup().Seen(ctx, txid)
		require.NoError(t, err)
		assert.False(t, seen, txid)
	}
	assert.True(t, a.balance(t, 10, "TRX").IsZero())
}

func TestIngestBelowMinimumIsMarkedButNotFiled(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "0")
	ctx := context.Background()

	rec := port.FeedRecord{TxID: "dust", Amount: dec("0.5"), Currency: "TRX", UserID: userRef(10)}
	report, err := a.deposits.Ingest(ctx, []port.FeedRecord{rec, rec})
	require.NoError(t, err)
	assert.Equal(t, port.IngestReport{BelowMinimum: 1, Duplicates: 1}, report)

	seen, err := a.store.Dedup().Seen(ctx, "dust")
	require.NoError(t, err)
	assert.True(t, seen)
	deps, err := a.deposits.ListMine(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, deps)
	assert.True(t, a.balance(t, 10, "TRX").IsZero())
}

func TestIngestStopsOnCancelledContext(t *testing.T) {
	a := newApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.deposits.Ingest(ctx, []port.FeedRecord{{TxID: "x", Amount: dec("5"), Currency: "TRX"}})
	require.ErrorIs(t, err, context.Canceled)

	seen, err := a.store.Dedup().Seen(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestDeclareDeposit(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "0")
	ctx := context.Background()

	txid := "  abc  "
	d, err := a.deposits.Declare(ctx, port.DeclareDepositReq{UserID: 10, Currency: "trx", Amount: dec("20"), TxID: &txid})
	require.NoError(t, err)
	assert.Equal(t, domain.DepositDeclared, d.Status)
	assert.Equal(t, "TRX", d.Currency)
	require.NotNil(t, d.TxID)
	assert.Equal(t, "abc", *d.TxID)
	assert.True(t, a.balance(t, 10, "TRX").IsZero(), "declarations never credit")

	_, err = a.deposits.Declare(ctx, port.DeclareDepositReq{UserID: 10, Currency: "TRX", Amount: dec("0.1")})
	assert.True(t, domain.IsValidation(err))

	_, err = a.deposits.Declare(ctx, port.DeclareDepositReq{UserID: 77, Currency: "TRX", Amount: dec("20")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
