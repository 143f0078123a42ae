package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus tracks how a deposit entered the ledger.
type DepositStatus string

const (
	// DepositDeclared is a user's claim that they sent funds; it never credits.
	DepositDeclared DepositStatus = "user_declaration"
	// DepositPending is an observed transaction awaiting manual attribution.
	DepositPending DepositStatus = "pending"
	// DepositCompleted is an observed transaction credited to UserID.
	DepositCompleted DepositStatus = "completed"
)

// Deposit records incoming funds. A deposit with a TxID is the authoritative
// record of a credited (or unattributed) external transaction.
type Deposit struct {
	ID        string
	UserID    *int64
	Currency  string
	Amount    decimal.Decimal
	TxID      *string
	Status    DepositStatus
	CreatedAt time.Time
}

// SeenTransaction is an entry of the dedup set.
type SeenTransaction struct {
	TxID   string
	SeenAt time.Time
}
