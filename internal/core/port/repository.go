package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"trxclicker/internal/core/domain"
)

// Transactor runs fn as one atomic unit. Backends with transactions bind the
// transaction to the context passed to fn; repositories obtained from the same
// Store pick it up from there. Nested calls join the outer transaction.
// Backends without transactions run fn directly and rely on the conditional
// updates of the individual operations.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	// SupportsRollback reports whether a failed WithinTx undoes every write
	// made by fn. When false, callers undo completed steps themselves.
	SupportsRollback() bool
}

// UserRepository persists users.
type UserRepository interface {
	// CreateUser inserts a user with empty balances. It returns
	// domain.ErrUserExists when the id is taken.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUser returns domain.ErrNotFound for unknown ids.
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	// SetReferrer sets ReferredBy only while it is unset. It reports whether
	// the value was written.
	SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error)
	// AddReferralEarnings increments the user's referral counter.
	AddReferralEarnings(ctx context.Context, userID int64, amount decimal.Decimal) error
	// ListUsers returns up to limit users ordered by id.
	ListUsers(ctx context.Context, limit int) ([]*domain.User, error)
}

// BalanceRepository holds the atomic balance primitives. Implementations
// must never read and then write a balance in two steps.
type BalanceRepository interface {
	// Credit increments the balance. domain.ErrNotFound for unknown users.
	Credit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error
	// DebitIfSufficient decrements the balance in a single conditional update
	// and returns domain.ErrInsufficientFunds when it would go negative.
	DebitIfSufficient(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error
	// Balances returns a snapshot of all of the user's balances.
	Balances(ctx context.Context, userID int64) (map[string]decimal.Decimal, error)
}

// PendingRepository stores entities whose funds are held while pending.
type PendingRepository[T domain.Reservable] interface {
	Create(ctx context.Context, entity T) error
	// Get returns domain.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (T, error)
	// Transition applies t only while the stored status equals t.From and
	// returns the updated entity. It returns domain.ErrNotFound for unknown
	// ids and domain.ErrAlreadyDecided when the status has moved on.
	Transition(ctx context.Context, t domain.Transition) (T, error)
	ListPending(ctx context.Context, limit int) ([]T, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]T, error)
}

// CampaignRepository is the campaign flavour of PendingRepository.
type CampaignRepository interface {
	PendingRepository[*domain.Campaign]
	// ListActive returns active campaigns, newest first.
	ListActive(ctx context.Context, limit int) ([]*domain.Campaign, error)
}

// WithdrawalRepository is the withdrawal flavour of PendingRepository.
type WithdrawalRepository interface {
	PendingRepository[*domain.Withdrawal]
}

// DepositRepository persists deposit records.
type DepositRepository interface {
	CreateDeposit(ctx context.Context, dep *domain.Deposit) error
	ListDepositsByUser(ctx context.Context, userID int64, limit int) ([]*domain.Deposit, error)
	// ListUnattributed returns pending deposits that have no user.
	ListUnattributed(ctx context.Context, limit int) ([]*domain.Deposit, error)
}

// DedupRepository is the set of external transaction ids already processed.
type DedupRepository interface {
	// MarkSeen inserts txid. A second insert of the same txid returns
	// domain.ErrDuplicateTransaction. Entries are never removed.
	MarkSeen(ctx context.Context, txid string, at time.Time) error
	Seen(ctx context.Context, txid string) (bool, error)
}

// Store is the Record Store: one backend exposing all repositories and the
// transaction boundary shared by them.
type Store interface {
	Transactor
	Users() UserRepository
	Balances() BalanceRepository
	Campaigns() CampaignRepository
	Withdrawals() WithdrawalRepository
	Deposits() DepositRepository
	Dedup() DedupRepository
	Ping(ctx context.Context) error
}

// DraftRepository keeps campaign drafts between inputs. Drafts expire after
// the repository's TTL; Get returns domain.ErrNotFound once expired.
type DraftRepository interface {
	GetDraft(ctx context.Context, sessionID int64) (*domain.Draft, error)
	// TakeDraft removes the draft and returns it in one atomic step. Of two
	// concurrent calls for one session at most one gets the draft; the
	// other gets domain.ErrNotFound.
	TakeDraft(ctx context.Context, sessionID int64) (*domain.Draft, error)
	SaveDraft(ctx context.Context, draft *domain.Draft) error
	DeleteDraft(ctx context.Context, sessionID int64) error
}
