package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state shared by campaigns and withdrawals.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// EntityKind names a reservable entity type.
type EntityKind string

const (
	KindCampaign   EntityKind = "campaign"
	KindWithdrawal EntityKind = "withdrawal"
)

// Decision is an admin verdict on a pending entity.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid reports whether d is approve or reject.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Hold is an amount of a user's balance reserved by a pending entity.
type Hold struct {
	UserID   int64
	Currency string
	Amount   decimal.Decimal
}

// Reservable is implemented by entities whose funds are held while pending.
type Reservable interface {
	Hold() Hold
	EntityID() string
	CurrentStatus() Status
	Kind() EntityKind
	ApprovedStatus() Status
}

// Transition describes a conditional status change applied by a repository.
// It only succeeds while the stored status equals From.
type Transition struct {
	ID   string
	From Status
	To   Status
	At   time.Time
}
