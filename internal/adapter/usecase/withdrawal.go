package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

const maxAddressLen = 128

type WithdrawalUseCase struct {
	users        port.UserRepository
	withdrawals  port.WithdrawalRepository
	reservations *ReservationManager[*domain.Withdrawal]
	policy       domain.Policy
	events       *Emitter
	log          *slog.Logger
	now          func() time.Time
}

func NewWithdrawalUseCase(store port.Store, reservations *ReservationManager[*domain.Withdrawal], policy domain.Policy, events *Emitter, log *slog.Logger) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		users:        store.Users(),
		withdrawals:  store.Withdrawals(),
		reservations: reservations,
		policy:       policy,
		events:       events,
		log:          log,
		now:          time.Now,
	}
}

func validateAddress(addr string) error {
	switch {
	case addr == "":
		return domain.Invalid("address", "required")
	case len(addr) > maxAddressLen:
		return domain.Invalid("address", "too long")
	case strings.IndexFunc(addr, unicode.IsSpace) >= 0:
		return domain.Invalid("address", "must not contain spaces")
	}
	return nil
}

// Request debits the amount and files a pending withdrawal. The payout
// itself is sent manually once an admin approves.
func (u *WithdrawalUseCase) Request(ctx context.Context, req port.WithdrawalReq) (*domain.Withdrawal, error) {
	currency, err := u.policy.Currency(req.Currency)
	if err != nil {
		return nil, err
	}
	if err = u.policy.CheckWithdrawal(currency, req.Amount); err != nil {
		return nil, err
	}
	addr := strings.TrimSpace(req.Address)
	if err = validateAddress(addr); err != nil {
		return nil, err
	}
	if _, err = u.users.GetUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	w := &domain.Withdrawal{
		ID:        domain.NewID(domain.PrefixWithdrawal),
		UserID:    req.UserID,
		Currency:  currency,
		Amount:    req.Amount,
		Address:   addr,
		Status:    domain.StatusPending,
		CreatedAt: u.now().UTC(),
	}
	if err = u.reservations.Reserve(ctx, w); err != nil {
		return nil, err
	}
	u.log.Info("withdrawal requested",
		slog.String("id", w.ID),
		slog.Int64("user_id", w.UserID),
		slog.String("amount", w.Amount.String()),
		slog.String("currency", w.Currency))
	u.events.notifyAll(ctx, u.policy.Admins, "New withdrawal %s: %s %s to %s from user %d",
		w.ID, w.Amount, w.Currency, w.Address, w.UserID)
	return w, nil
}

func (u *WithdrawalUseCase) ListMine(ctx context.Context, userID int64, limit int) ([]*domain.Withdrawal, error) {
	return u.withdrawals.ListByUser(ctx, userID, limit)
}
