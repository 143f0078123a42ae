package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// Collection names.
const (
	colUsers       = "users"
	colCampaigns   = "campaigns"
	colWithdrawals = "withdrawals"
	colDeposits    = "deposits"
	colTxCache     = "tx_cache"
)

var _ port.Store = (*Store)(nil)

// Store implements port.Store on MongoDB. Every balance mutation is a single
// conditional UpdateOne. WithinTx runs fn without a session; callers undo
// completed steps when a later one fails.
type Store struct {
	db *mongo.Database
}

// New returns a store on db.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Migrate creates the indexes the store relies on for uniqueness.
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) SupportsRollback() bool { return false }

func (s *Store) Users() port.UserRepository       { return userRepo{s.db.Collection(colUsers)} }
func (s *Store) Balances() port.BalanceRepository { return balanceRepo{s.db.Collection(colUsers)} }
func (s *Store) Campaigns() port.CampaignRepository {
	return campaignRepo{s.db.Collection(colCampaigns)}
}
func (s *Store) Withdrawals() port.WithdrawalRepository {
	return withdrawalRepo{s.db.Collection(colWithdrawals)}
}
func (s *Store) Deposits() port.DepositRepository { return depositRepo{s.db.Collection(colDeposits)} }
func (s *Store) Dedup() port.DedupRepository      { return dedupRepo{s.db.Collection(colTxCache)} }

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colCampaigns: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colWithdrawals: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colDeposits: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colTxCache: {
			{
				Keys:    bson.D{{Key: "txid", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
}

// ==================== Users ====================

type userRepo struct {
	c *mongo.Collection
}

func (r userRepo) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.c.InsertOne(ctx, userModel{
		ID:               user.ID,
		Balances:         map[string]bson.Decimal128{},
		ReferralEarnings: bson.NewDecimal128(0, 0),
		CreatedAt:        user.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("mongo: create user: %w", err)
	}
	return nil
}

func (r userRepo) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: get user: %w", err)
	}
	return fromUserModel(&m)
}

func (r userRepo) SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": userID, "referred_by": nil},
		bson.M{"$set": bson.M{"referred_by": referrerID}})
	if err != nil {
		return false, fmt.Errorf("mongo: set referrer: %w", err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	n, err := r.c.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, fmt.Errorf("mongo: lookup user: %w", err)
	}
	if n == 0 {
		return false, domain.ErrNotFound
	}
	return false, nil
}

func (r userRepo) AddReferralEarnings(ctx context.Context, userID int64, amount decimal.Decimal) error {
	v, err := toDecimal128(amount)
	if err != nil {
		return err
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$inc": bson.M{"referral_earnings": v}})
	if err != nil {
		return fmt.Errorf("mongo: add referral earnings: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r userRepo) ListUsers(ctx context.Context, limit int) ([]*domain.User, error) {
	cur, err := r.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("mongo: list users: %w", err)
	}
	var models []userModel
	if err = cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("mongo: decode users: %w", err)
	}
	out := make([]*domain.User, len(models))
	for i := range models {
		if out[i], err = fromUserModel(&models[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ==================== Balances ====================

type balanceRepo struct {
	c *mongo.Collection
}

func balanceField(currency string) string { return "balances." + currency }

func (r balanceRepo) Credit(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	v, err := toDecimal128(amount)
	if err != nil {
		return err
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$inc": bson.M{balanceField(currency): v}})
	if err != nil {
		return fmt.Errorf("mongo: credit: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DebitIfSufficient matches the document only while the balance covers
// amount, so the check and the $inc are one atomic operation.
func (r balanceRepo) DebitIfSufficient(ctx context.Context, userID int64, currency string, amount decimal.Decimal) error {
	v, err := toDecimal128(amount)
	if err != nil {
		return err
	}
	neg, err := toDecimal128(amount.Neg())
	if err != nil {
		return err
	}
	field := balanceField(currency)
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": userID, field: bson.M{"$gte": v}},
		bson.M{"$inc": bson.M{field: neg}})
	if err != nil {
		return fmt.Errorf("mongo: debit: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r balanceRepo) Balances(ctx context.Context, userID int64) (map[string]decimal.Decimal, error) {
	u, err := userRepo(r).GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Balances, nil
}

// ==================== Pending entities ====================

// transition applies t with FindOneAndUpdate filtered on the current status.
func transition[M any, T any](ctx context.Context, c *mongo.Collection, t domain.Transition, conv func(*M) (T, error)) (T, error) {
	var (
		zero T
		m    M
	)
	err := c.FindOneAndUpdate(ctx,
		bson.M{"_id": t.ID, "status": string(t.From)},
		bson.M{"$set": bson.M{"status": string(t.To), "decided_at": t.At}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err == nil {
		return conv(&m)
	}
	if !isNoDocuments(err) {
		return zero, fmt.Errorf("mongo: transition %s: %w", c.Name(), err)
	}
	n, err := c.CountDocuments(ctx, bson.M{"_id": t.ID})
	if err != nil {
		return zero, fmt.Errorf("mongo: lookup %s: %w", c.Name(), err)
	}
	if n == 0 {
		return zero, domain.ErrNotFound
	}
	return zero, domain.ErrAlreadyDecided
}

func get[M any, T any](ctx context.Context, c *mongo.Collection, id string, conv func(*M) (T, error)) (T, error) {
	var (
		zero T
		m    M
	)
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("mongo: get %s: %w", c.Name(), err)
	}
	return conv(&m)
}

func find[M any, T any](ctx context.Context, c *mongo.Collection, filter bson.M, sortDir, limit int, conv func(*M) (T, error)) ([]T, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: sortDir}}).
		SetLimit(int64(limit))
	cur, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list %s: %w", c.Name(), err)
	}
	var models []M
	if err = cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("mongo: decode %s: %w", c.Name(), err)
	}
	out := make([]T, len(models))
	for i := range models {
		if out[i], err = conv(&models[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type campaignRepo struct {
	c *mongo.Collection
}

func (r campaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	m, err := toCampaignModel(c)
	if err != nil {
		return err
	}
	if _, err = r.c.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("mongo: create campaign: %w", err)
	}
	return nil
}

func (r campaignRepo) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return get(ctx, r.c, id, fromCampaignModel)
}

func (r campaignRepo) Transition(ctx context.Context, t domain.Transition) (*domain.Campaign, error) {
	return transition(ctx, r.c, t, fromCampaignModel)
}

func (r campaignRepo) ListPending(ctx context.Context, limit int) ([]*domain.Campaign, error) {
	return find(ctx, r.c, bson.M{"status": string(domain.StatusPending)}, 1, limit, fromCampaignModel)
}

func (r campaignRepo) ListActive(ctx context.Context, limit int) ([]*domain.Campaign, error) {
	return find(ctx, r.c, bson.M{"status": string(domain.StatusActive)}, -1, limit, fromCampaignModel)
}

func (r campaignRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Campaign, error) {
	return find(ctx, r.c, bson.M{"owner_id": userID}, -1, limit, fromCampaignModel)
}

type withdrawalRepo struct {
	c *mongo.Collection
}

func (r withdrawalRepo) Create(ctx context.Context, w *domain.Withdrawal) error {
	m, err := toWithdrawalModel(w)
	if err != nil {
		return err
	}
	if _, err = r.c.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("mongo: create withdrawal: %w", err)
	}
	return nil
}

func (r withdrawalRepo) Get(ctx context.Context, id string) (*domain.Withdrawal, error) {
	return get(ctx, r.c, id, fromWithdrawalModel)
}

func (r withdrawalRepo) Transition(ctx context.Context, t domain.Transition) (*domain.Withdrawal, error) {
	return transition(ctx, r.c, t, fromWithdrawalModel)
}

func (r withdrawalRepo) ListPending(ctx context.Context, limit int) ([]*domain.Withdrawal, error) {
	return find(ctx, r.c, bson.M{"status": string(domain.StatusPending)}, 1, limit, fromWithdrawalModel)
}

func (r withdrawalRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Withdrawal, error) {
	return find(ctx, r.c, bson.M{"user_id": userID}, -1, limit, fromWithdrawalModel)
}

// ==================== Deposits ====================

type depositRepo struct {
	c *mongo.Collection
}

func (r depositRepo) CreateDeposit(ctx context.Context, d *domain.Deposit) error {
	m, err := toDepositModel(d)
	if err != nil {
		return err
	}
	if _, err = r.c.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("mongo: create deposit: %w", err)
	}
	return nil
}

func (r depositRepo) ListDepositsByUser(ctx context.Context, userID int64, limit int) ([]*domain.Deposit, error) {
	return find(ctx, r.c, bson.M{"user_id": userID}, -1, limit, fromDepositModel)
}

func (r depositRepo) ListUnattributed(ctx context.Context, limit int) ([]*domain.Deposit, error) {
	return find(ctx, r.c, bson.M{"user_id": nil, "status": string(domain.DepositPending)}, 1, limit, fromDepositModel)
}

type dedupRepo struct {
	c *mongo.Collection
}

func (r dedupRepo) MarkSeen(ctx context.Context, txid string, at time.Time) error {
	_, err := r.c.InsertOne(ctx, seenModel{TxID: txid, SeenAt: at})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("mongo: mark txid: %w", err)
	}
	return nil
}

func (r dedupRepo) Seen(ctx context.Context, txid string) (bool, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{"txid": txid})
	if err != nil {
		return false, fmt.Errorf("mongo: lookup txid: %w", err)
	}
	return n > 0, nil
}
