package memory

import (
	"context"
	"sync"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// Store is an in-process Record Store used by tests and local runs. A single
// mutex guards all collections so every repository call is atomic. WithinTx
// does not provide rollback; callers compensate failed steps.
type Store struct {
	mu          sync.Mutex
	users       map[int64]*domain.User
	campaigns   map[string]*domain.Campaign
	withdrawals map[string]*domain.Withdrawal
	deposits    map[string]*domain.Deposit
	seen        map[string]domain.SeenTransaction
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[int64]*domain.User),
		campaigns:   make(map[string]*domain.Campaign),
		withdrawals: make(map[string]*domain.Withdrawal),
		deposits:    make(map[string]*domain.Deposit),
		seen:        make(map[string]domain.SeenTransaction),
	}
}

var _ port.Store = (*Store)(nil)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) SupportsRollback() bool { return false }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Users() port.UserRepository       { return userRepo{s} }
func (s *Store) Balances() port.BalanceRepository { return balanceRepo{s} }
func (s *Store) Campaigns() port.CampaignRepository {
	return campaignRepo{pending[*domain.Campaign]{s: s, items: s.campaigns, clone: cloneCampaign, born: campaignCreated}}
}
func (s *Store) Withdrawals() port.WithdrawalRepository {
	return pending[*domain.Withdrawal]{s: s, items: s.withdrawals, clone: cloneWithdrawal, born: withdrawalCreated}
}
func (s *Store) Deposits() port.DepositRepository { return depositRepo{s} }
func (s *Store) Dedup() port.DedupRepository      { return dedupRepo{s} }
