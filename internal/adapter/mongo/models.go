package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"trxclicker/internal/core/domain"
)

type userModel struct {
	ID               int64                      `bson:"_id"`
	Balances         map[string]bson.Decimal128 `bson:"balances"`
	ReferredBy       *int64                     `bson:"referred_by"`
	ReferralEarnings bson.Decimal128            `bson:"referral_earnings"`
	CreatedAt        time.Time                  `bson:"created_at"`
}

type campaignModel struct {
	ID        string          `bson:"_id"`
	OwnerID   int64           `bson:"owner_id"`
	TaskType  string          `bson:"task_type"`
	Target    string          `bson:"target"`
	Currency  string          `bson:"currency"`
	CPC       bson.Decimal128 `bson:"cpc"`
	Budget    bson.Decimal128 `bson:"budget"`
	Slots     int64           `bson:"slots"`
	Status    string          `bson:"status"`
	CreatedAt time.Time       `bson:"created_at"`
	DecidedAt *time.Time      `bson:"decided_at,omitempty"`
}

type withdrawalModel struct {
	ID        string          `bson:"_id"`
	UserID    int64           `bson:"user_id"`
	Currency  string          `bson:"currency"`
	Amount    bson.Decimal128 `bson:"amount"`
	Address   string          `bson:"address"`
	Status    string          `bson:"status"`
	CreatedAt time.Time       `bson:"created_at"`
	DecidedAt *time.Time      `bson:"decided_at,omitempty"`
}

type depositModel struct {
	ID        string          `bson:"_id"`
	UserID    *int64          `bson:"user_id"`
	Currency  string          `bson:"currency"`
	Amount    bson.Decimal128 `bson:"amount"`
	TxID      *string         `bson:"txid,omitempty"`
	Status    string          `bson:"status"`
	CreatedAt time.Time       `bson:"created_at"`
}

type seenModel struct {
	TxID   string    `bson:"txid"`
	SeenAt time.Time `bson:"seen_at"`
}

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	v, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.Decimal128{}, fmt.Errorf("amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v bson.Decimal128) (decimal.Decimal, error) {
	if v.IsZero() {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v.String())
}

func fromUserModel(m *userModel) (*domain.User, error) {
	u := &domain.User{
		ID:         m.ID,
		Balances:   make(map[string]decimal.Decimal, len(m.Balances)),
		ReferredBy: m.ReferredBy,
		CreatedAt:  m.CreatedAt,
	}
	var err error
	for cur, v := range m.Balances {
		if u.Balances[cur], err = fromDecimal128(v); err != nil {
			return nil, fmt.Errorf("balance %s of user %d: %w", cur, m.ID, err)
		}
	}
	if u.ReferralEarnings, err = fromDecimal128(m.ReferralEarnings); err != nil {
		return nil, fmt.Errorf("referral earnings of user %d: %w", m.ID, err)
	}
	return u, nil
}

func toCampaignModel(c *domain.Campaign) (*campaignModel, error) {
	cpc, err := toDecimal128(c.CPC)
	if err != nil {
		return nil, err
	}
	budget, err := toDecimal128(c.Budget)
	if err != nil {
		return nil, err
	}
	return &campaignModel{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		TaskType:  string(c.TaskType),
		Target:    c.Target,
		Currency:  c.Currency,
		CPC:       cpc,
		Budget:    budget,
		Slots:     c.Slots,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		DecidedAt: c.DecidedAt,
	}, nil
}

func fromCampaignModel(m *campaignModel) (*domain.Campaign, error) {
	cpc, err := fromDecimal128(m.CPC)
	if err != nil {
		return nil, err
	}
	budget, err := fromDecimal128(m.Budget)
	if err != nil {
		return nil, err
	}
	return &domain.Campaign{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		TaskType:  domain.TaskType(m.TaskType),
		Target:    m.Target,
		Currency:  m.Currency,
		CPC:       cpc,
		Budget:    budget,
		Slots:     m.Slots,
		Status:    domain.Status(m.Status),
		CreatedAt: m.CreatedAt,
		DecidedAt: m.DecidedAt,
	}, nil
}

func toWithdrawalModel(w *domain.Withdrawal) (*withdrawalModel, error) {
	amount, err := toDecimal128(w.Amount)
	if err != nil {
		return nil, err
	}
	return &withdrawalModel{
		ID:        w.ID,
		UserID:    w.UserID,
		Currency:  w.Currency,
		Amount:    amount,
		Address:   w.Address,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		DecidedAt: w.DecidedAt,
	}, nil
}

func fromWithdrawalModel(m *withdrawalModel) (*domain.Withdrawal, error) {
	amount, err := fromDecimal128(m.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.Withdrawal{
		ID:        m.ID,
		UserID:    m.UserID,
		Currency:  m.Currency,
		Amount:    amount,
		Address:   m.Address,
		Status:    domain.Status(m.Status),
		CreatedAt: m.CreatedAt,
		DecidedAt: m.DecidedAt,
	}, nil
}

func toDepositModel(d *domain.Deposit) (*depositModel, error) {
	amount, err := toDecimal128(d.Amount)
	if err != nil {
		return nil, err
	}
	return &depositModel{
		ID:        d.ID,
		UserID:    d.UserID,
		Currency:  d.Currency,
		Amount:    amount,
		TxID:      d.TxID,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
	}, nil
}

func fromDepositModel(m *depositModel) (*domain.Deposit, error) {
	amount, err := fromDecimal128(m.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.Deposit{
		ID:        m.ID,
		UserID:    m.UserID,
		Currency:  m.Currency,
		Amount:    amount,
		TxID:      m.TxID,
		Status:    domain.DepositStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}, nil
}
