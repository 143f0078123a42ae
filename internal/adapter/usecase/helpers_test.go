package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/adapter/memory"
	"trxclicker/internal/core/domain"
)

const adminID int64 = 1

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testPolicy() domain.Policy {
	return domain.Policy{
		Admins:            []int64{adminID},
		PrimaryCurrency:   "TRX",
		Currencies:        []string{"TRX", "USDT"},
		ReferralBonus:     dec("0.25"),
		CampaignMinBudget: dec("1"),
		DepositMin:        map[string]decimal.Decimal{"TRX": dec("1")},
		WithdrawMin:       map[string]decimal.Decimal{},
	}
}

// app wires every usecase on one in-memory store.
type app struct {
	store       *memory.Store
	users       *UserUseCase
	ledger      *LedgerUseCase
	deposits    *DepositUseCase
	campaigns   *CampaignUseCase
	withdrawals *WithdrawalUseCase
	admin       *AdminUseCase
	drafts      *DraftUseCase
	campRes     *ReservationManager[*domain.Campaign]
	wdrRes      *ReservationManager[*domain.Withdrawal]
}

func newApp(t *testing.T, events *Emitter) *app {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	policy := testPolicy()
	store := memory.NewStore()

	a := &app{store: store}
	a.ledger = NewLedgerUseCase(store.Balances(), policy)
	a.campRes = NewReservationManager[*domain.Campaign](store, a.ledger, store.Campaigns(), events, log)
	a.wdrRes = NewReservationManager[*domain.Withdrawal](store, a.ledger, store.Withdrawals(), events, log)
	a.users = NewUserUseCase(store, a.ledger, policy, events, log)
	a.deposits = NewDepositUseCase(store, a.ledger, policy, events, log)
	a.campaigns = NewCampaignUseCase(store, a.campRes, policy, events, log)
	a.withdrawals = NewWithdrawalUseCase(store, a.wdrRes, policy, events, log)
	a.admin = NewAdminUseCase(store, a.campRes, a.wdrRes, policy, log)
	a.drafts = NewDraftUseCase(memory.NewDraftRepository(time.Hour), store.Users(), a.campaigns, policy, log)

	_, err := a.users.Register(context.Background(), adminID, "")
	require.NoError(t, err)
	return a
}

// newUser registers id and funds it with the given TRX balance.
func (a *app) newUser(t *testing.T, id int64, trx string) {
	t.Helper()
	ctx := context.Background()
	_, err := a.users.Register(ctx, id, "")
	require.NoError(t, err)
	if amt := dec(trx); amt.IsPositive() {
		require.NoError(t, a.ledger.Credit(ctx, id, "TRX", amt))
	}
}

func (a *app) balance(t *testing.T, id int64, currency string) decimal.Decimal {
	t.Helper()
	b, err := a.ledger.Balances(context.Background(), id)
	require.NoError(t, err)
	return b[currency]
}

// requireDecimal compares decimals by value, ignoring exponent.
func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
