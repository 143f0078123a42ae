package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/domain"
)

func TestDuplicateReferralCreditsOnce(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 20, "0")
	ctx := context.Background()

	first, err := a.users.Register(ctx, 30, "ref20")
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.True(t, first.ReferralCredited)
	require.NotNil(t, first.User.ReferredBy)
	assert.Equal(t, int64(20), *first.User.ReferredBy)

	second, err := a.users.Register(ctx, 30, "ref20")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.False(t, second.ReferralCredited)

	credited, err := a.users.ApplyReferral(ctx, 30, 20)
	require.NoError(t, err)
	assert.False(t, credited)

	referrer, err := a.users.GetUser(ctx, 20)
	require.NoError(t, err)
	requireDecimal(t, "0.25", referrer.ReferralEarnings)
	requireDecimal(t, "0.25", referrer.Balance("TRX"))
}

func TestReferralCannotBeReassigned(t *testing.T) {
	a := newApp(t, nil)
	a.newUser(t, 20, "0")
	a.newUser(t, 21, "0")
	ctx := context.Background()

	_, err := a.users.Register(ctx, 30, "ref20")
	require.NoError(t, err)
	res, err := a.users.Register(ctx, 30, "ref21")
	require.NoError(t, err)
	assert.False(t, res.ReferralCredited)
	assert.Equal(t, int64(20), *res.User.ReferredBy)
	assert.True(t, a.balance(t, 21, "TRX").IsZero())
}

func TestInvalidReferralDoesNotBlockRegistration(t *testing.T) {
	a := newApp(t, nil)
	ctx := context.Background()

	self, err := a.users.Register(ctx, 30, "ref30")
	require.NoError(t, err)
	assert.True(t, self.Created)
	assert.False(t, self.ReferralCredited)
	assert.Nil(t, self.User.ReferredBy)

	unknown, err := a.users.Register(ctx, 31, "ref404")
	require.NoError(t, err)
	assert.False(t, unknown.ReferralCredited)
	assert.Nil(t, unknown.User.ReferredBy)

	_, err = a.users.Register(ctx, 32, "promo")
	assert.True(t, domain.IsValidation(err))
	_, err = a.users.GetUser(ctx, 32)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = a.users.ApplyReferral(ctx, 30, 30)
	assert.True(t, domain.IsValidation(err))
	_, err = a.users.ApplyReferral(ctx, 30, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterRejectsNonPositiveID(t *testing.T) {
	a := newApp(t, nil)
	_, err := a.users.Register(context.Background(), 0, "")
	assert.True(t, domain.IsValidation(err))
}
