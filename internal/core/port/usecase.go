package port

import (
	"context"

	"github.com/shopspring/decimal"

	"trxclicker/internal/core/domain"
)

// LedgerUseCase exposes the balance primitives to the rest of the
// application. All mutations are atomic in the underlying store and join a
// transaction bound to ctx.
type LedgerUseCase interface {
	Credit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error
	DebitIfSufficient(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error
	// Refund returns previously reserved funds.
	Refund(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error
	Balances(ctx context.Context, userID int64) (map[string]decimal.Decimal, error)
}

// IngestReport counts the outcome of one ingest cycle.
type IngestReport struct {
	Credited     int
	Unattributed int
	Duplicates   int
	BelowMinimum int
	Malformed    int
}

// DepositUseCase turns feed records into credited deposits exactly once.
type DepositUseCase interface {
	// Ingest processes a batch of feed records. Records are handled one by
	// one; a failure on one record is logged and does not stop the batch.
	Ingest(ctx context.Context, records []FeedRecord) (IngestReport, error)
	// Declare files a user's claim of a deposit. It never credits.
	Declare(ctx context.Context, req DeclareDepositReq) (*domain.Deposit, error)
	ListUnattributed(ctx context.Context, actorID int64, limit int) ([]*domain.Deposit, error)
	ListMine(ctx context.Context, userID int64, limit int) ([]*domain.Deposit, error)
}

type DeclareDepositReq struct {
	UserID   int64
	Currency string
	Amount   decimal.Decimal
	TxID     *string
}

// CampaignUseCase creates campaigns with their budget reserved up front.
type CampaignUseCase interface {
	Create(ctx context.Context, req CreateCampaignReq) (*domain.Campaign, error)
	ListMine(ctx context.Context, ownerID int64, limit int) ([]*domain.Campaign, error)
	ListActive(ctx context.Context, limit int) ([]*domain.Campaign, error)
}

type CreateCampaignReq struct {
	OwnerID  int64
	TaskType domain.TaskType
	Target   string
	CPC      decimal.Decimal
	Budget   decimal.Decimal
}

// WithdrawalUseCase reserves funds for payout requests.
type WithdrawalUseCase interface {
	Request(ctx context.Context, req WithdrawalReq) (*domain.Withdrawal, error)
	ListMine(ctx context.Context, userID int64, limit int) ([]*domain.Withdrawal, error)
}

type WithdrawalReq struct {
	UserID   int64
	Currency string
	Amount   decimal.Decimal
	Address  string
}

// RegistrationResult is returned by UserUseCase.Register.
type RegistrationResult struct {
	User *domain.User
	// Created is false when the user already existed.
	Created bool
	// ReferralCredited is true when this call paid the referral bonus.
	ReferralCredited bool
}

// UserUseCase registers users and pays referral bonuses.
type UserUseCase interface {
	// Register creates the user if needed and applies the referral token
	// (e.g. "ref42"), if any. Registering twice never pays twice.
	Register(ctx context.Context, userID int64, refToken string) (*RegistrationResult, error)
	// ApplyReferral credits referrerID once for referring userID. It returns
	// false without error when userID already has a referrer.
	ApplyReferral(ctx context.Context, userID, referrerID int64) (bool, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// DecisionResult reports the outcome of an admin decision.
type DecisionResult struct {
	Kind     domain.EntityKind
	ID       string
	Status   domain.Status
	Decision domain.Decision
	// AlreadyDecided is set when the entity was no longer pending. Status
	// then holds the stored status.
	AlreadyDecided bool
}

// PendingItems lists entities awaiting an admin decision.
type PendingItems struct {
	Campaigns   []*domain.Campaign
	Withdrawals []*domain.Withdrawal
}

// AdminUseCase is the admin decision gateway.
type AdminUseCase interface {
	Decide(ctx context.Context, actorID int64, kind domain.EntityKind, id string, decision domain.Decision) (*DecisionResult, error)
	ListPending(ctx context.Context, actorID int64, limit int) (*PendingItems, error)
	ListUsers(ctx context.Context, actorID int64, limit int) ([]*domain.User, error)
}

// DraftUseCase drives the step-by-step campaign collection flow.
type DraftUseCase interface {
	Start(ctx context.Context, sessionID int64) (*domain.Draft, error)
	// Input feeds one reply into the session's draft. When the draft is
	// confirmed the campaign is created and returned.
	Input(ctx context.Context, sessionID int64, input string) (*domain.Draft, *domain.Campaign, error)
	Get(ctx context.Context, sessionID int64) (*domain.Draft, error)
}
