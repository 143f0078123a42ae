package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// LedgerUseCase implements port.LedgerUseCase on top of the store's atomic
// balance primitives. Every balance mutation in the application goes through
// it. It publishes nothing: callers run it inside their transaction and emit
// their own event once the whole operation has been stored.
type LedgerUseCase struct {
	balances port.BalanceRepository
	policy   domain.Policy
}

func NewLedgerUseCase(balances port.BalanceRepository, policy domain.Policy) *LedgerUseCase {
	return &LedgerUseCase{balances: balances, policy: policy}
}

func (u *LedgerUseCase) check(currency string, amount decimal.Decimal) (string, error) {
	if err := domain.CheckAmount("amount", amount); err != nil {
		return "", err
	}
	return u.policy.Currency(currency)
}

func (u *LedgerUseCase) Credit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	currency, err := u.check(currency, amount)
	if err != nil {
		return err
	}
	return u.balances.Credit(ctx, userID, currency, amount)
}

// Refund returns funds taken by DebitIfSufficient.
func (u *LedgerUseCase) Refund(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	return u.Credit(ctx, userID, currency, amount)
}

// DebitIfSufficient never leaves a balance negative; on
// domain.ErrInsufficientFunds nothing was debited.
func (u *LedgerUseCase) DebitIfSufficient(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	currency, err := u.check(currency, amount)
	if err != nil {
		return err
	}
	return u.balances.DebitIfSufficient(ctx, userID, currency, amount)
}

func (u *LedgerUseCase) Balances(ctx context.Context, userID int64) (map[string]decimal.Decimal, error) {
	return u.balances.Balances(ctx, userID)
}
