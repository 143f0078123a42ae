package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trxclicker/internal/core/domain"
)

// DraftRepository keeps campaign drafts as JSON values with a TTL. Every
// save refreshes the TTL, so an abandoned draft expires ttl after the last
// input.
type DraftRepository struct {
	r   *redis.Client
	ttl time.Duration
}

func NewDraftRepository(r *redis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{r: r, ttl: ttl}
}

func draftKey(sessionID int64) string {
	return fmt.Sprintf("trxclicker:draft:%d", sessionID)
}

func (d *DraftRepository) GetDraft(ctx context.Context, sessionID int64) (*domain.Draft, error) {
	return decodeDraft(d.r.Get(ctx, draftKey(sessionID)).Bytes())
}

// TakeDraft relies on GETDEL being atomic on the server.
func (d *DraftRepository) TakeDraft(ctx context.Context, sessionID int64) (*domain.Draft, error) {
	return decodeDraft(d.r.GetDel(ctx, draftKey(sessionID)).Bytes())
}

func decodeDraft(b []byte, err error) (*domain.Draft, error) {
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: read draft: %w", err)
	}
	var draft domain.Draft
	if err = json.Unmarshal(b, &draft); err != nil {
		return nil, fmt.Errorf("redis: decode draft: %w", err)
	}
	return &draft, nil
}

func (d *DraftRepository) SaveDraft(ctx context.Context, draft *domain.Draft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	if err = d.r.Set(ctx, draftKey(draft.SessionID), b, d.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save draft: %w", err)
	}
	return nil
}

func (d *DraftRepository) DeleteDraft(ctx context.Context, sessionID int64) error {
	if err := d.r.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis: delete draft: %w", err)
	}
	return nil
}
