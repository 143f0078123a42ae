package usecase

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
	"trxclicker/internal/core/port/mocks"
)

func sameAmount(want string) any {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(dec(want)) })
}

func TestLedgerNormalisesCurrency(t *testing.T) {
	balances := mocks.NewMockBalanceRepository(t)
	u := NewLedgerUseCase(balances, testPolicy())
	ctx := context.Background()

	balances.EXPECT().Credit(mock.Anything, int64(3), "USDT", sameAmount("1.5")).Return(nil).Once()
	balances.EXPECT().Credit(mock.Anything, int64(3), "TRX", sameAmount("2")).Return(nil).Once()
	balances.EXPECT().DebitIfSufficient(mock.Anything, int64(3), "TRX", sameAmount("9")).Return(domain.ErrInsufficientFunds).Once()
	balances.EXPECT().Balances(mock.Anything, int64(3)).Return(map[string]decimal.Decimal{"USDT": dec("1.5")}, nil).Once()

	require.NoError(t, u.Credit(ctx, 3, " usdt ", dec("1.5")))
	require.NoError(t, u.Refund(ctx, 3, "trx", dec("2")))
	assert.ErrorIs(t, u.DebitIfSufficient(ctx, 3, "Trx", dec("9")), domain.ErrInsufficientFunds)
	b, err := u.Balances(ctx, 3)
	require.NoError(t, err)
	requireDecimal(t, "1.5", b["USDT"])
}

func TestLedgerRejectsBeforeTouchingStore(t *testing.T) {
	// The mock has no expectations: any store call fails the test.
	u := NewLedgerUseCase(mocks.NewMockBalanceRepository(t), testPolicy())
	ctx := context.Background()

	for _, tc := range []struct {
		currency, amount string
	}{
		{"TRX", "0"},
		{"TRX", "-1"},
		{"TRX", "5.0000005"},
		{"XRP", "1"},
	} {
		assert.True(t, domain.IsValidation(u.Credit(ctx, 3, tc.currency, dec(tc.amount))), "credit %s %s", tc.amount, tc.currency)
		assert.True(t, domain.IsValidation(u.Refund(ctx, 3, tc.currency, dec(tc.amount))), "refund %s %s", tc.amount, tc.currency)
		assert.True(t, domain.IsValidation(u.DebitIfSufficient(ctx, 3, tc.currency, dec(tc.amount))), "debit %s %s", tc.amount, tc.currency)
	}
}

// recordingLedger counts the calls that reach the ledger.
type recordingLedger struct {
	port.LedgerUseCase
	mu      sync.Mutex
	debits  int
	refunds int
	credits int
}

func (l *recordingLedger) DebitIfSufficient(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	l.mu.Lock()
	l.debits++
	l.mu.Unlock()
	return l.LedgerUseCase.DebitIfSufficient(ctx, userID, currency, amount)
}

func (l *recordingLedger) Refund(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	l.mu.Lock()
	l.refunds++
	l.mu.Unlock()
	return l.LedgerUseCase.Refund(ctx, userID, currency, amount)
}

func (l *recordingLedger) Credit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	l.mu.Lock()
	l.credits++
	l.mu.Unlock()
	return l.LedgerUseCase.Credit(ctx, userID, currency, amount)
}

func TestBalanceMutationsGoThroughLedger(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)
	rec := &recordingLedger{LedgerUseCase: a.ledger}

	res := NewReservationManager[*domain.Withdrawal](a.store, rec, a.store.Withdrawals(), nil, log)
	w := &domain.Withdrawal{ID: domain.NewID(domain.PrefixWithdrawal), UserID: 10, Currency: "TRX", Amount: dec("4"), Address: "TXYZ", Status: domain.StatusPending}
	require.NoError(t, res.Reserve(ctx, w))
	_, err := res.Release(ctx, w.ID)
	require.NoError(t, err)
	_, err = res.Release(ctx, w.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyDecided)

	deposits := NewDepositUseCase(a.store, rec, testPolicy(), nil, log)
	_, err = deposits.Ingest(ctx, []port.FeedRecord{{TxID: "t1", Amount: dec("2"), Currency: "TRX", UserID: userRef(10)}})
	require.NoError(t, err)

	users := NewUserUseCase(a.store, rec, testPolicy(), nil, log)
	_, err = users.Register(ctx, 11, "ref10")
	require.NoError(t, err)

	assert.Equal(t, 1, rec.debits)
	assert.Equal(t, 1, rec.refunds, "second release refunds nothing")
	assert.Equal(t, 2, rec.credits, "deposit and referral bonus")
	requireDecimal(t, "12.25", a.balance(t, 10, "TRX"))
}
