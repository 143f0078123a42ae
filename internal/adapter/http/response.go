package httpadapter

import (
	"time"

	"github.com/shopspring/decimal"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

type userResponse struct {
	ID               int64                      `json:"id"`
	Balances         map[string]decimal.Decimal `json:"balances"`
	ReferredBy       *int64                     `json:"referred_by,omitempty"`
	ReferralEarnings decimal.Decimal            `json:"referral_earnings"`
	ReferralToken    string                     `json:"referral_token"`
	CreatedAt        time.Time                  `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	balances := u.Balances
	if balances == nil {
		balances = map[string]decimal.Decimal{}
	}
	return userResponse{
		ID:               u.ID,
		Balances:         balances,
		ReferredBy:       u.ReferredBy,
		ReferralEarnings: u.ReferralEarnings,
		ReferralToken:    domain.ReferralToken(u.ID),
		CreatedAt:        u.CreatedAt,
	}
}

type registerResponse struct {
	User             userResponse `json:"user"`
	Created          bool         `json:"created"`
	ReferralCredited bool         `json:"referral_credited"`
}

type campaignResponse struct {
	ID        string          `json:"id"`
	OwnerID   int64           `json:"owner_id"`
	TaskType  string          `json:"task_type"`
	Target    string          `json:"target"`
	Currency  string          `json:"currency"`
	CPC       decimal.Decimal `json:"cpc"`
	Budget    decimal.Decimal `json:"budget"`
	Slots     int64           `json:"slots"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	DecidedAt *time.Time      `json:"decided_at,omitempty"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		TaskType:  string(c.TaskType),
		Target:    c.Target,
		Currency:  c.Currency,
		CPC:       c.CPC,
		Budget:    c.Budget,
		Slots:     c.Slots,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		DecidedAt: c.DecidedAt,
	}
}

type withdrawalResponse struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"user_id"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Address   string          `json:"address"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	DecidedAt *time.Time      `json:"decided_at,omitempty"`
}

func toWithdrawalResponse(w *domain.Withdrawal) withdrawalResponse {
	return withdrawalResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Currency:  w.Currency,
		Amount:    w.Amount,
		Address:   w.Address,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		DecidedAt: w.DecidedAt,
	}
}

type depositResponse struct {
	ID        string          `json:"id"`
	UserID    *int64          `json:"user_id"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	TxID      *string         `json:"txid,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func toDepositResponse(d *domain.Deposit) depositResponse {
	return depositResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Currency:  d.Currency,
		Amount:    d.Amount,
		TxID:      d.TxID,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

type draftResponse struct {
	Draft    *domain.Draft     `json:"draft"`
	Slots    int64             `json:"slots,omitempty"`
	Campaign *campaignResponse `json:"campaign,omitempty"`
}

type decisionResponse struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Decision string `json:"decision"`
	Status   string `json:"status"`
}

type pendingResponse struct {
	Campaigns   []campaignResponse   `json:"campaigns"`
	Withdrawals []withdrawalResponse `json:"withdrawals"`
}

func toPendingResponse(p *port.PendingItems) pendingResponse {
	return pendingResponse{
		Campaigns:   mapSlice(p.Campaigns, toCampaignResponse),
		Withdrawals: mapSlice(p.Withdrawals, toWithdrawalResponse),
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
