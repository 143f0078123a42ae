package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// UserUseCase implements port.UserUseCase: registration and the one-time
// referral bonus.
type UserUseCase struct {
	store  port.Store
	ledger port.LedgerUseCase
	policy domain.Policy
	events *Emitter
	log    *slog.Logger
	now    func() time.Time
}

func NewUserUseCase(store port.Store, ledger port.LedgerUseCase, policy domain.Policy, events *Emitter, log *slog.Logger) *UserUseCase {
	return &UserUseCase{store: store, ledger: ledger, policy: policy, events: events, log: log, now: time.Now}
}

// Register creates the user if needed. A referral token that cannot be
// honoured (self-referral, unknown referrer, user already referred) does not
// fail the registration; it just pays nothing.
func (u *UserUseCase) Register(ctx context.Context, userID int64, refToken string) (*port.RegistrationResult, error) {
	if userID <= 0 {
		return nil, domain.Invalid("user_id", "must be positive")
	}
	var referrerID int64
	if refToken != "" {
		var err error
		if referrerID, err = domain.ParseReferralToken(refToken); err != nil {
			return nil, err
		}
	}

	res := &port.RegistrationResult{Created: true}
	err := u.store.Users().CreateUser(ctx, &domain.User{ID: userID, CreatedAt: u.now().UTC()})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		res.Created = false
	case err != nil:
		return nil, err
	default:
		u.log.Info("user registered", slog.Int64("user_id", userID))
	}

	if referrerID != 0 {
		credited, err := u.ApplyReferral(ctx, userID, referrerID)
		switch {
		case err == nil:
			res.ReferralCredited = credited
		case domain.IsValidation(err), errors.Is(err, domain.ErrNotFound):
			u.log.Info("referral ignored", slog.Any("error", err), slog.Int64("user_id", userID), slog.Int64("referrer_id", referrerID))
		default:
			return nil, err
		}
	}

	if res.User, err = u.store.Users().GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyReferral sets userID's referrer and pays the bonus. The referrer is
// written only while unset, so the bonus is paid at most once per referred
// user.
func (u *UserUseCase) ApplyReferral(ctx context.Context, userID, referrerID int64) (bool, error) {
	if userID == referrerID {
		return false, domain.Invalid("ref", "cannot refer yourself")
	}
	if _, err := u.store.Users().GetUser(ctx, referrerID); err != nil {
		return false, err
	}
	bonus := u.policy.ReferralBonus
	currency := u.policy.PrimaryCurrency

	var credited bool
	err := u.store.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := u.store.Users().SetReferrer(ctx, userID, referrerID)
		if err != nil || !ok {
			return err
		}
		credited = true
		if !bonus.IsPositive() {
			return nil
		}
		if err = u.store.Users().AddReferralEarnings(ctx, referrerID, bonus); err != nil {
			return err
		}
		return u.ledger.Credit(ctx, referrerID, currency, bonus)
	})
	if err != nil {
		if credited && !u.store.SupportsRollback() {
			u.log.Error("referral bonus partially applied", slog.Any("error", err),
				slog.Int64("user_id", userID), slog.Int64("referrer_id", referrerID))
		}
		return false, err
	}
	if !credited {
		return false, nil
	}

	u.log.Info("referral credited", slog.Int64("user_id", userID), slog.Int64("referrer_id", referrerID), slog.String("bonus", bonus.String()))
	if bonus.IsPositive() {
		u.events.publish(ctx, port.LedgerEvent{Type: port.EventReferralCredited, UserID: &referrerID, Currency: currency, Amount: bonus, At: u.now().UTC()})
		u.events.notify(ctx, referrerID, "You earned %s %s for inviting user %d", bonus, currency, userID)
	}
	return true, nil
}

func (u *UserUseCase) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return u.store.Users().GetUser(ctx, userID)
}
