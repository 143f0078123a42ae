package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"trxclicker/internal/core/domain"
)

const campaignColumns = `id, owner_id, task_type, target, currency, cpc, budget, slots, status, created_at, decided_at`

// CampaignRepository implements port.CampaignRepository.
type CampaignRepository struct {
	s *Store
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.OwnerID, &c.TaskType, &c.Target, &c.Currency, &c.CPC, &c.Budget,
		&c.Slots, &c.Status, &c.CreatedAt, &c.DecidedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	_, err := r.s.q(ctx).Exec(ctx, `
		INSERT INTO campaigns (`+campaignColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.OwnerID, c.TaskType, c.Target, c.Currency, c.CPC, c.Budget, c.Slots, c.Status, c.CreatedAt, c.DecidedAt)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.s.q(ctx).QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepository) Transition(ctx context.Context, t domain.Transition) (*domain.Campaign, error) {
	return transition(ctx, r.s.q(ctx), "campaigns", campaignColumns, t, scanCampaign)
}

func (r *CampaignRepository) ListPending(ctx context.Context, limit int) ([]*domain.Campaign, error) {
	return r.list(ctx, `WHERE status = 'pending' ORDER BY created_at LIMIT $1`, limit)
}

func (r *CampaignRepository) ListActive(ctx context.Context, limit int) ([]*domain.Campaign, error) {
	return r.list(ctx, `WHERE status = 'active' ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *CampaignRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Campaign, error) {
	return r.list(ctx, `WHERE owner_id = $2 ORDER BY created_at DESC LIMIT $1`, limit, userID)
}

func (r *CampaignRepository) list(ctx context.Context, where string, args ...any) ([]*domain.Campaign, error) {
	rows, err := r.s.q(ctx).Query(ctx, `SELECT `+campaignColumns+` FROM campaigns `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Campaign, error) {
		return scanCampaign(row)
	})
}
