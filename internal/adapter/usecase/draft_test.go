package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/domain"
)

func TestDraftFlowCreatesCampaign(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "100")
	ctx := context.Background()

	_, err := a.drafts.Start(ctx, 10)
	require.NoError(t, err)

	steps := []struct {
		input string
		want  domain.DraftState
	}{
		{"visit_link", domain.DraftWaitTarget},
		{"https://example.com", domain.DraftWaitCPC},
		{"abc", domain.DraftWaitCPC},
		{"4", domain.DraftWaitBudget},
		{"100", domain.DraftConfirm},
	}
	for _, s := range steps {
		d, c, err := a.drafts.Input(ctx, 10, s.input)
		if s.input == "abc" {
			assert.True(t, domain.IsValidation(err))
		} else {
			require.NoError(t, err, s.input)
		}
		assert.Nil(t, c)
		assert.Equal(t, s.want, d.State, s.input)
	}

	d, c, err := a.drafts.Input(ctx, 10, "confirm")
	require.NoError(t, err)
	assert.Equal(t, domain.DraftSubmitted, d.State)
	require.NotNil(t, c)
	assert.Equal(t, int64(25), c.Slots)
	assert.True(t, a.balance(t, 10, "TRX").IsZero())

	_, err = a.drafts.Get(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftUnderfundedReturnsToBudget(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "50")
	ctx := context.Background()

	_, err := a.drafts.Start(ctx, 10)
	require.NoError(t, err)
	for _, in := range []string{"join_channel", "t.me/chan", "4", "100"} {
		_, _, err = a.drafts.Input(ctx, 10, in)
		require.NoError(t, err)
	}

	d, c, err := a.drafts.Input(ctx, 10, "CONFIRM")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Nil(t, c)
	assert.Equal(t, domain.DraftWaitBudget, d.State)

	stored, err := a.drafts.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.DraftWaitBudget, stored.State)
	requireDecimal(t, "50", a.balance(t, 10, "TRX"))

	_, _, err = a.drafts.Input(ctx, 10, "48")
	require.NoError(t, err)
	_, c, err = a.drafts.Input(ctx, 10, "confirm")
	require.NoError(t, err)
	assert.Equal(t, int64(12), c.Slots)
	requireDecimal(t, "2", a.balance(t, 10, "TRX"))
}

func TestDraftCancel(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "100")
	ctx := context.Background()

	_, err := a.drafts.Start(ctx, 10)
	require.NoError(t, err)
	_, _, err = a.drafts.Input(ctx, 10, "start_bot")
	require.NoError(t, err)

	d, _, err := a.drafts.Input(ctx, 10, "cancel")
	require.NoError(t, err)
	assert.Equal(t, domain.DraftCancelled, d.State)

	_, _, err = a.drafts.Input(ctx, 10, "t.me/bot")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentConfirmCreatesOneCampaign(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "200")
	ctx := context.Background()

	_, err := a.drafts.Start(ctx, 10)
	require.NoError(t, err)
	for _, in := range []string{"visit_link", "https://example.com", "4", "100"} {
		_, _, err = a.drafts.Input(ctx, 10, in)
		require.NoError(t, err)
	}

	const n = 20
	var (
		wg       sync.WaitGroup
		start    = make(chan struct{})
		created  atomic.Int32
		rejected atomic.Int32
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, c, err := a.drafts.Input(ctx, 10, "confirm")
			switch {
			case err == nil && c != nil:
				created.Add(1)
			case errors.Is(err, domain.ErrAlreadyDecided), errors.Is(err, domain.ErrNotFound):
				rejected.Add(1)
			default:
				t.Errorf("unexpected confirm result: campaign=%v err=%v", c, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(n-1), rejected.Load())
	requireDecimal(t, "100", a.balance(t, 10, "TRX"))

	pending, err := a.store.Campaigns().ListPending(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestConfirmRestoresDraftWhenStateMovedOn(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 10, "200")
	ctx := context.Background()

	_, err := a.drafts.Start(ctx, 10)
	require.NoError(t, err)
	_, _, err = a.drafts.Input(ctx, 10, "visit_link")
	require.NoError(t, err)

	// A claim of a draft that is not awaiting confirmation puts it back.
	_, _, err = a.drafts.submit(ctx, 10)
	assert.True(t, domain.IsValidation(err))

	d, err := a.drafts.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.DraftWaitTarget, d.State)
	requireDecimal(t, "200", a.balance(t, 10, "TRX"))
}

func TestDraftStartRequiresUser(t *testing.T) {
	a := newApp(t, nil)
	_, err := a.drafts.Start(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
