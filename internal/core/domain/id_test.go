package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDRoundTrip(t *testing.T) {
	id := NewID(PrefixWithdrawal)
	assert.True(t, strings.HasPrefix(id, PrefixWithdrawal+"_"))

	parsed, err := ParseID(id, PrefixWithdrawal)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID(id, PrefixCampaign)
	assert.True(t, IsValidation(err))
	_, err = ParseID("", PrefixCampaign)
	assert.True(t, IsValidation(err))
	_, err = ParseID("camp_nope", PrefixCampaign)
	assert.True(t, IsValidation(err))
}

func TestNewIDPanicsOnBadPrefix(t *testing.T) {
	assert.Panics(t, func() { NewID("Not A Prefix") })
}

func TestReferralToken(t *testing.T) {
	id, err := ParseReferralToken(ReferralToken(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = ParseReferralToken(" ref7 ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, bad := range []string{"", "42", "ref", "ref-1", "ref0", "refabc", "REF42"} {
		_, err = ParseReferralToken(bad)
		assert.True(t, IsValidation(err), bad)
	}
}

func TestHolds(t *testing.T) {
	c := &Campaign{ID: "camp_x", OwnerID: 3, Currency: "TRX", Budget: d("40"), Status: StatusPending}
	assert.Equal(t, Hold{UserID: 3, Currency: "TRX", Amount: d("40")}, c.Hold())
	assert.Equal(t, StatusActive, c.ApprovedStatus())

	w := &Withdrawal{ID: "wdr_x", UserID: 4, Currency: "USDT", Amount: d("2.5"), Status: StatusPending}
	assert.Equal(t, StatusApproved, w.ApprovedStatus())
	assert.Equal(t, KindWithdrawal, w.Kind())

	var u *User
	assert.True(t, u.Balance("TRX").IsZero())

	assert.True(t, DecisionApprove.Valid())
	assert.False(t, Decision("maybe").Valid())
}
