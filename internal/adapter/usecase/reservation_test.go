package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

func TestCampaignReservesBudgetAndFixesSlots(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "150")

	c, err := a.campaigns.Create(context.Background(), port.CreateCampaignReq{
		OwnerID:  10,
		TaskType: domain.TaskJoinChannel,
		Target:   "https://t.me/somechannel",
		CPC:      dec("4"),
		Budget:   dec("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), c.Slots)
	assert.Equal(t, domain.StatusPending, c.Status)
	assert.Equal(t, "TRX", c.Currency)
	requireDecimal(t, "50", a.balance(t, 10, "TRX"))

	stored, err := a.campRes.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), stored.Slots)
}

func TestCampaignInsufficientFundsCreatesNothing(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "99")
	ctx := context.Background()

	_, err := a.campaigns.Create(ctx, port.CreateCampaignReq{
		OwnerID:  10,
		TaskType: domain.TaskVisitLink,
		Target:   "https://example.com",
		CPC:      dec("4"),
		Budget:   dec("100"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	requireDecimal(t, "99", a.balance(t, 10, "TRX"))

	mine, err := a.campaigns.ListMine(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestCampaignValidation(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "100")
	base := port.CreateCampaignReq{OwnerID: 10, TaskType: domain.TaskStartBot, Target: "t.me/bot", CPC: dec("1"), Budget: dec("10")}

	cases := map[string]func(r *port.CreateCampaignReq){
		"task type":    func(r *port.CreateCampaignReq) { r.TaskType = "like_post" },
		"target":       func(r *port.CreateCampaignReq) { r.Target = "ftp://nope" },
		"zero cpc":     func(r *port.CreateCampaignReq) { r.CPC = dec("0") },
		"zero budget":  func(r *port.CreateCampaignReq) { r.Budget = dec("0") },
		"budget < cpc": func(r *port.CreateCampaignReq) { r.Budget = dec("1.5"); r.CPC = dec("2") },
		"budget scale": func(r *port.CreateCampaignReq) { r.Budget = dec("10.0000004") },
		"cpc scale":    func(r *port.CreateCampaignReq) { r.CPC = dec("1.0000001") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := base
			mutate(&req)
			_, err := a.campaigns.Create(context.Background(), req)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
	requireDecimal(t, "100", a.balance(t, 10, "TRX"))
}

func TestRacingWithdrawalsNeverOverdraw(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")

	amounts := []string{"6", "7"}
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for _, amt := range amounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.withdrawals.Request(context.Background(), port.WithdrawalReq{UserID: 10, Currency: "TRX", Amount: dec(amt), Address: "TXYZ"})
			if err == nil {
				succeeded.Add(1)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	left := a.balance(t, 10, "TRX")
	assert.False(t, left.IsNegative())
	assert.True(t, left.Equal(dec("4")) || left.Equal(dec("3")), "left %s", left)
}

func TestManySmallWithdrawalsDrainExactly(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := a.withdrawals.Request(context.Background(), port.WithdrawalReq{UserID: 10, Currency: "TRX", Amount: dec("1"), Address: "TXYZ"}); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), succeeded.Load())
	assert.True(t, a.balance(t, 10, "TRX").IsZero())
}

func TestRejectRestoresApproveKeeps(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")
	ctx := context.Background()

	w1, err := a.withdrawals.Request(ctx, port.WithdrawalReq{UserID: 10, Currency: "TRX", Amount: dec("4"), Address: "TXYZ"})
	require.NoError(t, err)
	requireDecimal(t, "6", a.balance(t, 10, "TRX"))

	rejected, err := a.wdrRes.Release(ctx, w1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.NotNil(t, rejected.DecidedAt)
	requireDecimal(t, "10", a.balance(t, 10, "TRX"))

	w2, err := a.withdrawals.Request(ctx, port.WithdrawalReq{UserID: 10, Currency: "TRX", Amount: dec("4"), Address: "TXYZ"})
	require.NoError(t, err)
	approved, err := a.wdrRes.Commit(ctx, w2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	requireDecimal(t, "6", a.balance(t, 10, "TRX"))

	_, err = a.wdrRes.Release(ctx, w2.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	_, err = a.wdrRes.Commit(ctx, w1.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	requireDecimal(t, "6", a.balance(t, 10, "TRX"))
}

func TestConcurrentReleaseRefundsOnce(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")
	ctx := context.Background()

	w, err := a.withdrawals.Request(ctx, port.WithdrawalReq{UserID: 10, Currency: "TRX", Amount: dec("5"), Address: "TXYZ"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = a.wdrRes.Release(ctx, w.ID)
		}()
	}
	wg.Wait()
	requireDecimal(t, "10", a.balance(t, 10, "TRX"))
}

type failingCreateRepo struct {
	port.WithdrawalRepository
}

func (failingCreateRepo) Create(context.Context, *domain.Withdrawal) error {
	return errors.New("disk full")
}

func TestReserveCompensatesFailedCreate(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")

	m := NewReservationManager[*domain.Withdrawal](a.store, a.ledger, failingCreateRepo{}, nil, slog.New(slog.DiscardHandler))
	var results []string
	m.OnReserve = func(_ domain.EntityKind, result string) { results = append(results, result) }

	err := m.Reserve(context.Background(), &domain.Withdrawal{ID: domain.NewID(domain.PrefixWithdrawal), UserID: 10, Currency: "TRX", Amount: dec("3"), Status: domain.StatusPending})
	require.EqualError(t, err, "disk full")
	requireDecimal(t, "10", a.balance(t, 10, "TRX"))
	assert.Equal(t, []string{"error"}, results)
}

func TestReserveRejectsNonPositiveHold(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")

	err := a.wdrRes.Reserve(context.Background(), &domain.Withdrawal{ID: domain.NewID(domain.PrefixWithdrawal), UserID: 10, Currency: "TRX", Amount: dec("0")})
	assert.True(t, domain.IsValidation(err))
	requireDecimal(t, "10", a.balance(t, 10, "TRX"))
}

func TestReserveRejectsAmountBeyondStoredScale(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "6")
	ctx := context.Background()

	w := &domain.Withdrawal{ID: domain.NewID(domain.PrefixWithdrawal), UserID: 10, Currency: "TRX", Amount: dec("5.0000005"), Address: "TXYZ", Status: domain.StatusPending}
	assert.True(t, domain.IsValidation(a.wdrRes.Reserve(ctx, w)))
	_, err := a.wdrRes.Get(ctx, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the largest amount that fits round-trips exactly through reserve and release
	w.Amount = dec("5.999999")
	require.NoError(t, a.wdrRes.Reserve(ctx, w))
	requireDecimal(t, "0.000001", a.balance(t, 10, "TRX"))
	_, err = a.wdrRes.Release(ctx, w.ID)
	require.NoError(t, err)
	requireDecimal(t, "6", a.balance(t, 10, "TRX"))
}

func TestWithdrawalValidation(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "10")
	ctx := context.Background()

	for name, req := range map[string]port.WithdrawalReq{
		"currency":       {UserID: 10, Currency: "DOGE", Amount: dec("1"), Address: "TXYZ"},
		"amount":         {UserID: 10, Currency: "TRX", Amount: dec("-1"), Address: "TXYZ"},
		"amount scale":   {UserID: 10, Currency: "TRX", Amount: dec("5.0000005"), Address: "TXYZ"},
		"empty address":  {UserID: 10, Currency: "TRX", Amount: dec("1"), Address: "   "},
		"spaced address": {UserID: 10, Currency: "TRX", Amount: dec("1"), Address: "T X"},
	} {
		_, err := a.withdrawals.Request(ctx, req)
		assert.True(t, domain.IsValidation(err), "%s: got %v", name, err)
	}
	_, err := a.withdrawals.Request(ctx, port.WithdrawalReq{UserID: 11, Currency: "TRX", Amount: dec("1"), Address: "TXYZ"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	requireDecimal(t, "10", a.balance(t, 10, "TRX"))
}
