package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/domain"
)

// newClient connects to REDIS_ADDR and skips the test when it is unset.
func newClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestDraftRepositoryRoundTrip(t *testing.T) {
	rdb := newClient(t)
	repo := NewDraftRepository(rdb, time.Minute)
	ctx := context.Background()
	session := time.Now().UnixNano()
	t.Cleanup(func() { _ = repo.DeleteDraft(ctx, session) })

	_, err := repo.GetDraft(ctx, session)
	require.ErrorIs(t, err, domain.ErrNotFound)

	d := domain.NewDraft(session, time.Now().UTC().Truncate(time.Millisecond))
	d.State = domain.DraftConfirm
	d.TaskType = domain.TaskJoinChannel
	d.Target = "t.me/chan"
	d.CPC = decimal.RequireFromString("0.5")
	d.Budget = decimal.RequireFromString("12.5")
	require.NoError(t, repo.SaveDraft(ctx, d))

	got, err := repo.GetDraft(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, d.State, got.State)
	assert.Equal(t, d.Target, got.Target)
	assert.True(t, d.Budget.Equal(got.Budget))
	assert.Equal(t, int64(25), got.Slots())

	ttl, err := rdb.TTL(ctx, draftKey(session)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.DeleteDraft(ctx, session))
	_, err = repo.GetDraft(ctx, session)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTakeDraftClaimsOnce(t *testing.T) {
	rdb := newClient(t)
	repo := NewDraftRepository(rdb, time.Minute)
	ctx := context.Background()
	session := time.Now().UnixNano()
	t.Cleanup(func() { _ = repo.DeleteDraft(ctx, session) })

	d := domain.NewDraft(session, time.Now().UTC())
	d.State = domain.DraftConfirm
	require.NoError(t, repo.SaveDraft(ctx, d))

	got, err := repo.TakeDraft(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, domain.DraftConfirm, got.State)

	_, err = repo.TakeDraft(ctx, session)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	n, err := rdb.Exists(ctx, draftKey(session)).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDraftExpires(t *testing.T) {
	rdb := newClient(t)
	repo := NewDraftRepository(rdb, 50*time.Millisecond)
	ctx := context.Background()
	session := time.Now().UnixNano()

	require.NoError(t, repo.SaveDraft(ctx, domain.NewDraft(session, time.Now())))
	require.Eventually(t, func() bool {
		_, err := repo.GetDraft(ctx, session)
		return err != nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestNotifierPublishes(t *testing.T) {
	rdb := newClient(t)
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, ChannelNotifications)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, NewNotifier(rdb).Notify(ctx, 7, "hello"))

	select {
	case msg := <-sub.Channel():
		var n Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &n))
		assert.Equal(t, int64(7), n.UserID)
		assert.Equal(t, "hello", n.Message)
		assert.NotEmpty(t, n.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not received")
	}
}
