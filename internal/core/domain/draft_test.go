package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftPolicy() Policy {
	return Policy{
		PrimaryCurrency:   "TRX",
		Currencies:        []string{"TRX"},
		CPCMin:            decimal.RequireFromString("0.5"),
		CPCMax:            decimal.RequireFromString("10"),
		CampaignMinBudget: decimal.RequireFromString("5"),
	}
}

func TestDraftHappyPath(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d := NewDraft(7, now)
	p := draftPolicy()

	for _, step := range []struct {
		in   string
		want DraftState
	}{
		{"Visit_Link", DraftWaitTarget},
		{" https://example.com/page ", DraftWaitCPC},
		{"4", DraftWaitBudget},
		{"100", DraftConfirm},
		{"confirm", DraftSubmitted},
	} {
		require.NoError(t, d.Apply(step.in, p, now), step.in)
		assert.Equal(t, step.want, d.State, step.in)
	}
	assert.Equal(t, TaskVisitLink, d.TaskType)
	assert.Equal(t, "https://example.com/page", d.Target)
	assert.Equal(t, int64(25), d.Slots())
	assert.True(t, d.State.Terminal())

	err := d.Apply("cancel", p, now)
	assert.True(t, IsValidation(err), "terminal drafts accept nothing")
	assert.Equal(t, DraftSubmitted, d.State)
}

func TestDraftRejectsInvalidInputInPlace(t *testing.T) {
	now := time.Now()
	p := draftPolicy()
	cases := []struct {
		name  string
		prep  []string
		input string
		state DraftState
	}{
		{"task type", nil, "like_post", DraftChooseType},
		{"target", []string{"join_channel"}, "ftp://x", DraftWaitTarget},
		{"cpc not a number", []string{"join_channel", "t.me/x"}, "four", DraftWaitCPC},
		{"cpc below min", []string{"join_channel", "t.me/x"}, "0.1", DraftWaitCPC},
		{"cpc above max", []string{"join_channel", "t.me/x"}, "11", DraftWaitCPC},
		{"budget below min", []string{"join_channel", "t.me/x", "1"}, "4", DraftWaitBudget},
		{"budget under cpc", []string{"join_channel", "t.me/x", "8"}, "7", DraftWaitBudget},
		{"confirm reply", []string{"join_channel", "t.me/x", "1", "10"}, "yes", DraftConfirm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDraft(1, now)
			for _, in := range tc.prep {
				require.NoError(t, d.Apply(in, p, now))
			}
			before := *d
			err := d.Apply(tc.input, p, now)
			assert.True(t, IsValidation(err), "got %v", err)
			assert.Equal(t, tc.state, d.State)
			assert.Equal(t, before, *d)
		})
	}
}

func TestDraftCancelFromAnyStep(t *testing.T) {
	p := draftPolicy()
	inputs := []string{"start_bot", "t.me/bot", "1", "10"}
	for n := 0; n <= len(inputs); n++ {
		d := NewDraft(1, time.Now())
		for _, in := range inputs[:n] {
			require.NoError(t, d.Apply(in, p, time.Now()))
		}
		require.NoError(t, d.Apply(" CANCEL ", p, time.Now()))
		assert.Equal(t, DraftCancelled, d.State)
	}
}

func TestDraftBackToBudget(t *testing.T) {
	p := draftPolicy()
	d := NewDraft(1, time.Now())
	for _, in := range []string{"join_group", "t.me/g", "2", "10", "confirm"} {
		require.NoError(t, d.Apply(in, p, time.Now()))
	}
	d.BackToBudget(time.Now())
	assert.Equal(t, DraftWaitBudget, d.State)
	assert.True(t, d.Budget.IsZero())
	require.NoError(t, d.Apply("6", p, time.Now()))
	assert.Equal(t, int64(3), d.Slots())
}
