package usecase

import (
	"context"
	"errors"
	"log/slog"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// AdminUseCase is the admin decision gateway. Every call is checked against
// the admin allowlist before touching the store.
type AdminUseCase struct {
	users       port.UserRepository
	campaigns   *ReservationManager[*domain.Campaign]
	withdrawals *ReservationManager[*domain.Withdrawal]
	campRepo    port.CampaignRepository
	wdrRepo     port.WithdrawalRepository
	policy      domain.Policy
	log         *slog.Logger

	// OnDecision is called with the entity kind and "approved", "rejected"
	// or "already_decided" for every decision that reached the store.
	OnDecision func(kind domain.EntityKind, outcome string)
}

func NewAdminUseCase(store port.Store, campaigns *ReservationManager[*domain.Campaign], withdrawals *ReservationManager[*domain.Withdrawal], policy domain.Policy, log *slog.Logger) *AdminUseCase {
	return &AdminUseCase{
		users:       store.Users(),
		campaigns:   campaigns,
		withdrawals: withdrawals,
		campRepo:    store.Campaigns(),
		wdrRepo:     store.Withdrawals(),
		policy:      policy,
		log:         log,
	}
}

// Decide approves or rejects a pending campaign or withdrawal. Deciding an
// entity twice is not an error: the result carries AlreadyDecided and the
// stored status, and no balance changes.
func (u *AdminUseCase) Decide(ctx context.Context, actorID int64, kind domain.EntityKind, id string, decision domain.Decision) (*port.DecisionResult, error) {
	if !u.policy.IsAdmin(actorID) {
		return nil, domain.ErrNotAuthorized
	}
	if !decision.Valid() {
		return nil, domain.Invalid("decision", "must be %q or %q", domain.DecisionApprove, domain.DecisionReject)
	}
	var (
		res *port.DecisionResult
		err error
	)
	switch kind {
	case domain.KindCampaign:
		res, err = decide(ctx, u.campaigns, domain.PrefixCampaign, id, decision)
	case domain.KindWithdrawal:
		res, err = decide(ctx, u.withdrawals, domain.PrefixWithdrawal, id, decision)
	default:
		return nil, domain.Invalid("kind", "unknown kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	outcome := string(res.Status)
	if res.AlreadyDecided {
		outcome = "already_decided"
	}
	if u.OnDecision != nil {
		u.OnDecision(kind, outcome)
	}
	u.log.Info("admin decision",
		slog.Int64("actor_id", actorID),
		slog.String("kind", string(kind)),
		slog.String("id", res.ID),
		slog.String("decision", string(decision)),
		slog.String("outcome", outcome))
	return res, nil
}

func decide[T domain.Reservable](ctx context.Context, m *ReservationManager[T], prefix, rawID string, decision domain.Decision) (*port.DecisionResult, error) {
	// An id that does not parse, or carries another kind's prefix, names no
	// stored entity.
	id, err := domain.ParseID(rawID, prefix)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var entity T
	if decision == domain.DecisionApprove {
		entity, err = m.Commit(ctx, id)
	} else {
		entity, err = m.Release(ctx, id)
	}
	alreadyDecided := errors.Is(err, domain.ErrAlreadyDecided)
	if err != nil && !alreadyDecided {
		return nil, err
	}
	res := &port.DecisionResult{
		Kind:           entity.Kind(),
		ID:             id,
		Status:         entity.CurrentStatus(),
		Decision:       decision,
		AlreadyDecided: alreadyDecided,
	}
	if !alreadyDecided {
		h := entity.Hold()
		if decision == domain.DecisionApprove {
			m.events.notify(ctx, h.UserID, "Your %s %s was approved", entity.Kind(), id)
		} else {
			m.events.notify(ctx, h.UserID, "Your %s %s was rejected, %s %s returned to your balance", entity.Kind(), id, h.Amount, h.Currency)
		}
	}
	return res, nil
}

// ListPending returns the oldest pending campaigns and withdrawals.
func (u *AdminUseCase) ListPending(ctx context.Context, actorID int64, limit int) (*port.PendingItems, error) {
	if !u.policy.IsAdmin(actorID) {
		return nil, domain.ErrNotAuthorized
	}
	campaigns, err := u.campRepo.ListPending(ctx, limit)
	if err != nil {
		return nil, err
	}
	withdrawals, err := u.wdrRepo.ListPending(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &port.PendingItems{Campaigns: campaigns, Withdrawals: withdrawals}, nil
}

func (u *AdminUseCase) ListUsers(ctx context.Context, actorID int64, limit int) ([]*domain.User, error) {
	if !u.policy.IsAdmin(actorID) {
		return nil, domain.ErrNotAuthorized
	}
	return u.users.ListUsers(ctx, limit)
}
