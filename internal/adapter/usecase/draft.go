package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// DraftUseCase implements the step-by-step campaign flow on top of
// CampaignUseCase. Drafts live in a DraftRepository with a TTL.
type DraftUseCase struct {
	drafts    port.DraftRepository
	users     port.UserRepository
	campaigns port.CampaignUseCase
	policy    domain.Policy
	log       *slog.Logger
	now       func() time.Time
}

func NewDraftUseCase(drafts port.DraftRepository, users port.UserRepository, campaigns port.CampaignUseCase, policy domain.Policy, log *slog.Logger) *DraftUseCase {
	return &DraftUseCase{drafts: drafts, users: users, campaigns: campaigns, policy: policy, log: log, now: time.Now}
}

// Start opens a fresh draft, discarding any previous one of the session.
func (u *DraftUseCase) Start(ctx context.Context, sessionID int64) (*domain.Draft, error) {
	if _, err := u.users.GetUser(ctx, sessionID); err != nil {
		return nil, err
	}
	d := domain.NewDraft(sessionID, u.now().UTC())
	if err := u.drafts.SaveDraft(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (u *DraftUseCase) Get(ctx context.Context, sessionID int64) (*domain.Draft, error) {
	return u.drafts.GetDraft(ctx, sessionID)
}

// Input applies one reply. Invalid replies leave the draft where it was. A
// confirmed draft becomes a campaign; if the owner cannot fund it the draft
// goes back to the budget step and domain.ErrInsufficientFunds is returned.
// A confirm that loses the race to another one for the same session returns
// domain.ErrAlreadyDecided and reserves nothing.
func (u *DraftUseCase) Input(ctx context.Context, sessionID int64, input string) (*domain.Draft, *domain.Campaign, error) {
	d, err := u.drafts.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if err = d.Apply(input, u.policy, u.now().UTC()); err != nil {
		return d, nil, err
	}

	switch d.State {
	case domain.DraftCancelled:
		return d, nil, u.drafts.DeleteDraft(ctx, sessionID)
	case domain.DraftSubmitted:
		return u.submit(ctx, sessionID)
	default:
		return d, nil, u.drafts.SaveDraft(ctx, d)
	}
}

// submit claims the session's draft and turns it into a campaign. Claiming
// removes the draft, so only one confirm per draft reaches the reservation.
// On failure the claimed draft is stored again.
func (u *DraftUseCase) submit(ctx context.Context, sessionID int64) (*domain.Draft, *domain.Campaign, error) {
	d, err := u.drafts.TakeDraft(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, domain.ErrAlreadyDecided
	}
	if err != nil {
		return nil, nil, err
	}
	if d.State != domain.DraftConfirm {
		// Another input moved the draft on after we read it.
		if err = u.drafts.SaveDraft(ctx, d); err != nil {
			return d, nil, err
		}
		return d, nil, domain.Invalid("input", "draft is no longer awaiting confirmation")
	}
	if err = d.Apply(domain.InputConfirm, u.policy, u.now().UTC()); err != nil {
		return d, nil, errors.Join(err, u.drafts.SaveDraft(ctx, d))
	}

	c, err := u.campaigns.Create(ctx, port.CreateCampaignReq{
		OwnerID:  sessionID,
		TaskType: d.TaskType,
		Target:   d.Target,
		CPC:      d.CPC,
		Budget:   d.Budget,
	})
	switch {
	case err == nil:
		return d, c, nil
	case errors.Is(err, domain.ErrInsufficientFunds):
		d.BackToBudget(u.now().UTC())
	default:
		u.log.Warn("campaign from draft failed", slog.Any("error", err), slog.Int64("session_id", sessionID))
		d.State = domain.DraftConfirm
	}
	if serr := u.drafts.SaveDraft(ctx, d); serr != nil {
		return d, nil, errors.Join(err, serr)
	}
	return d, nil, err
}
