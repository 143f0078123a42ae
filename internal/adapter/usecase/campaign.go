package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// CampaignUseCase implements port.CampaignUseCase. Campaigns are funded in
// the primary currency and wait for an admin decision after creation.
type CampaignUseCase struct {
	users        port.UserRepository
	campaigns    port.CampaignRepository
	reservations *ReservationManager[*domain.Campaign]
	policy       domain.Policy
	events       *Emitter
	log          *slog.Logger
	now          func() time.Time
}

func NewCampaignUseCase(store port.Store, reservations *ReservationManager[*domain.Campaign], policy domain.Policy, events *Emitter, log *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{
		users:        store.Users(),
		campaigns:    store.Campaigns(),
		reservations: reservations,
		policy:       policy,
		events:       events,
		log:          log,
		now:          time.Now,
	}
}

// Create validates req, reserves the budget and files the campaign as
// pending. Slots are fixed here as floor(budget / cpc).
func (u *CampaignUseCase) Create(ctx context.Context, req port.CreateCampaignReq) (*domain.Campaign, error) {
	if !req.TaskType.Valid() {
		return nil, domain.Invalid("task_type", "unknown task type %q", req.TaskType)
	}
	target := strings.TrimSpace(req.Target)
	if err := domain.ValidateTarget(target); err != nil {
		return nil, err
	}
	if err := u.policy.CheckCPC(req.CPC); err != nil {
		return nil, err
	}
	if err := u.policy.CheckBudget(req.Budget, req.CPC); err != nil {
		return nil, err
	}
	if _, err := u.users.GetUser(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	c := &domain.Campaign{
		ID:        domain.NewID(domain.PrefixCampaign),
		OwnerID:   req.OwnerID,
		TaskType:  req.TaskType,
		Target:    target,
		Currency:  u.policy.PrimaryCurrency,
		CPC:       req.CPC,
		Budget:    req.Budget,
		Slots:     domain.Slots(req.Budget, req.CPC),
		Status:    domain.StatusPending,
		CreatedAt: u.now().UTC(),
	}
	if err := u.reservations.Reserve(ctx, c); err != nil {
		return nil, err
	}
	u.log.Info("campaign created",
		slog.String("id", c.ID),
		slog.Int64("owner_id", c.OwnerID),
		slog.String("budget", c.Budget.String()),
		slog.Int64("slots", c.Slots))
	u.events.notifyAll(ctx, u.policy.Admins, "New campaign %s: %s %s, budget %s %s, %d slots",
		c.ID, c.TaskType, c.Target, c.Budget, c.Currency, c.Slots)
	return c, nil
}

func (u *CampaignUseCase) ListMine(ctx context.Context, ownerID int64, limit int) ([]*domain.Campaign, error) {
	return u.campaigns.ListByUser(ctx, ownerID, limit)
}

// ListActive returns the campaigns users can currently complete.
func (u *CampaignUseCase) ListActive(ctx context.Context, limit int) ([]*domain.Campaign, error) {
	return u.campaigns.ListActive(ctx, limit)
}
