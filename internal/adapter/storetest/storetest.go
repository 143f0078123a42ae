// Package storetest holds the behaviour every port.Store backend must share.
// Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) port.Store

// Run checks a fresh store from newStore against each repository contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("balances", func(t *testing.T) { testBalances(t, newStore(t)) })
	t.Run("concurrent debits", func(t *testing.T) { testConcurrentDebits(t, newStore(t)) })
	t.Run("transitions", func(t *testing.T) { testTransitions(t, newStore(t)) })
	t.Run("campaign listing", func(t *testing.T) { testCampaignListing(t, newStore(t)) })
	t.Run("deposits", func(t *testing.T) { testDeposits(t, newStore(t)) })
	t.Run("dedup", func(t *testing.T) { testDedup(t, newStore(t)) })
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustUser(t *testing.T, s port.Store, id int64) {
	t.Helper()
	require.NoError(t, s.Users().CreateUser(context.Background(), &domain.User{ID: id, CreatedAt: time.Now().UTC()}))
}

func testUsers(t *testing.T, s port.Store) {
	ctx := context.Background()
	users := s.Users()
	mustUser(t, s, 3)
	mustUser(t, s, 1)
	mustUser(t, s, 2)

	err := users.CreateUser(ctx, &domain.User{ID: 1, CreatedAt: time.Now()})
	require.ErrorIs(t, err, domain.ErrUserExists)

	_, err = users.GetUser(ctx, 404)
	require.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := users.SetReferrer(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = users.SetReferrer(ctx, 2, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, users.AddReferralEarnings(ctx, 1, amt("0.25")))
	require.NoError(t, users.AddReferralEarnings(ctx, 1, amt("0.25")))

	u, err := users.GetUser(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, u.ReferredBy)
	assert.Equal(t, int64(1), *u.ReferredBy)

	u, err = users.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, u.ReferralEarnings.Equal(amt("0.5")), "earnings %s", u.ReferralEarnings)
	assert.Nil(t, u.ReferredBy)

	list, err := users.ListUsers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)
}

func testBalances(t *testing.T, s port.Store) {
	ctx := context.Background()
	b := s.Balances()
	mustUser(t, s, 10)

	require.ErrorIs(t, b.Credit(ctx, 404, "TRX", amt("1")), domain.ErrNotFound)
	require.NoError(t, b.Credit(ctx, 10, "TRX", amt("10")))
	require.NoError(t, b.Credit(ctx, 10, "USDT", amt("0.000001")))
	require.NoError(t, b.DebitIfSufficient(ctx, 10, "TRX", amt("4")))
	require.ErrorIs(t, b.DebitIfSufficient(ctx, 10, "TRX", amt("6.000001")), domain.ErrInsufficientFunds)
	require.ErrorIs(t, b.DebitIfSufficient(ctx, 10, "BTC", amt("1")), domain.ErrInsufficientFunds)

	got, err := b.Balances(ctx, 10)
	require.NoError(t, err)
	assert.True(t, got["TRX"].Equal(amt("6")), "TRX %s", got["TRX"])
	assert.True(t, got["USDT"].Equal(amt("0.000001")), "USDT %s", got["USDT"])

	require.NoError(t, b.DebitIfSufficient(ctx, 10, "TRX", amt("6")))
	got, err = b.Balances(ctx, 10)
	require.NoError(t, err)
	assert.True(t, got["TRX"].IsZero())

	_, err = b.Balances(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testConcurrentDebits(t *testing.T, s port.Store) {
	ctx := context.Background()
	mustUser(t, s, 10)
	require.NoError(t, s.Balances().Credit(ctx, 10, "TRX", amt("10")))

	var (
		wg sync.WaitGroup
		ok atomic.Int32
	)
	for range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Balances().DebitIfSufficient(ctx, 10, "TRX", amt("1")); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(10), ok.Load())

	got, err := s.Balances().Balances(ctx, 10)
	require.NoError(t, err)
	assert.True(t, got["TRX"].IsZero(), "TRX %s", got["TRX"])
}

func testTransitions(t *testing.T, s port.Store) {
	ctx := context.Background()
	mustUser(t, s, 10)
	repo := s.Withdrawals()

	w := &domain.Withdrawal{
		ID:        domain.NewID(domain.PrefixWithdrawal),
		UserID:    10,
		Currency:  "TRX",
		Amount:    amt("5"),
		Address:   "TXYZ",
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, got.Amount.Equal(amt("5")))
	assert.Nil(t, got.DecidedAt)

	pending, err := repo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	at := time.Now().UTC()
	updated, err := repo.Transition(ctx, domain.Transition{ID: w.ID, From: domain.StatusPending, To: domain.StatusRejected, At: at})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, updated.Status)
	require.NotNil(t, updated.DecidedAt)

	_, err = repo.Transition(ctx, domain.Transition{ID: w.ID, From: domain.StatusPending, To: domain.StatusApproved, At: at})
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	_, err = repo.Transition(ctx, domain.Transition{ID: domain.NewID(domain.PrefixWithdrawal), From: domain.StatusPending, To: domain.StatusApproved, At: at})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Get(ctx, domain.NewID(domain.PrefixWithdrawal))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pending, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	mine, err := repo.ListByUser(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.StatusRejected, mine[0].Status)
}

func testCampaignListing(t *testing.T, s port.Store) {
	ctx := context.Background()
	mustUser(t, s, 10)
	repo := s.Campaigns()

	var ids []string
	for i := range 3 {
		c := &domain.Campaign{
			ID:        domain.NewID(domain.PrefixCampaign),
			OwnerID:   10,
			TaskType:  domain.TaskVisitLink,
			Target:    "https://example.com",
			Currency:  "TRX",
			CPC:       amt("4"),
			Budget:    amt("100"),
			Slots:     25,
			Status:    domain.StatusPending,
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	pending, err := repo.ListPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID, "pending queue is oldest first")

	_, err = repo.Transition(ctx, domain.Transition{ID: ids[1], From: domain.StatusPending, To: domain.StatusActive, At: time.Now().UTC()})
	require.NoError(t, err)

	active, err := repo.ListActive(ctx, 10)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, ids[1], active[0].ID)
	assert.Equal(t, int64(25), active[0].Slots)
	assert.Equal(t, domain.TaskVisitLink, active[0].TaskType)

	mine, err := repo.ListByUser(ctx, 10, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func testDeposits(t *testing.T, s port.Store) {
	ctx := context.Background()
	mustUser(t, s, 10)
	repo := s.Deposits()

	uid := int64(10)
	tx1, tx2 := "tx-"+domain.NewID("t"), "tx-"+domain.NewID("t")
	for _, d := range []*domain.Deposit{
		{ID: domain.NewID(domain.PrefixDeposit), UserID: &uid, Currency: "TRX", Amount: amt("5"), TxID: &tx1, Status: domain.DepositCompleted, CreatedAt: time.Now().UTC()},
		{ID: domain.NewID(domain.PrefixDeposit), Currency: "TRX", Amount: amt("3"), TxID: &tx2, Status: domain.DepositPending, CreatedAt: time.Now().UTC()},
		{ID: domain.NewID(domain.PrefixDeposit), UserID: &uid, Currency: "USDT", Amount: amt("1"), Status: domain.DepositDeclared, CreatedAt: time.Now().UTC()},
	} {
		require.NoError(t, repo.CreateDeposit(ctx, d))
	}

	mine, err := repo.ListDepositsByUser(ctx, 10, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	orphans, err := repo.ListUnattributed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Nil(t, orphans[0].UserID)
	require.NotNil(t, orphans[0].TxID)
	assert.Equal(t, tx2, *orphans[0].TxID)
	assert.True(t, orphans[0].Amount.Equal(amt("3")))
}

func testDedup(t *testing.T, s port.Store) {
	ctx := context.Background()
	d := s.Dedup()
	txid := "dedup-" + domain.NewID("t")

	seen, err := d.Seen(ctx, txid)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, d.MarkSeen(ctx, txid, time.Now().UTC()))
	assert.ErrorIs(t, d.MarkSeen(ctx, txid, time.Now().UTC()), domain.ErrDuplicateTransaction)

	seen, err = d.Seen(ctx, txid)
	require.NoError(t, err)
	assert.True(t, seen)

	// the duplicate surfaces unchanged through WithinTx
	err = s.WithinTx(ctx, func(ctx context.Context) error {
		return s.Dedup().MarkSeen(ctx, txid, time.Now().UTC())
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)
}
