package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal is a user's request to move funds off-platform. The amount is
// debited before the request becomes pending; approval only acknowledges that
// the payout will be sent manually.
type Withdrawal struct {
	ID        string
	UserID    int64
	Currency  string
	Amount    decimal.Decimal
	Address   string
	Status    Status // pending, approved, rejected
	CreatedAt time.Time
	DecidedAt *time.Time
}

func (w *Withdrawal) Hold() Hold {
	return Hold{UserID: w.UserID, Currency: w.Currency, Amount: w.Amount}
}

func (w *Withdrawal) EntityID() string       { return w.ID }
func (w *Withdrawal) CurrentStatus() Status  { return w.Status }
func (w *Withdrawal) Kind() EntityKind       { return KindWithdrawal }
func (w *Withdrawal) ApprovedStatus() Status { return StatusApproved }

func (w *Withdrawal) SetStatus(s Status, at time.Time) {
	w.Status = s
	w.DecidedAt = &at
}
