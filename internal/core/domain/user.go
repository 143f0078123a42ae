package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User is a platform participant identified by the chat platform's user id.
type User struct {
	ID               int64
	Balances         map[string]decimal.Decimal
	ReferredBy       *int64
	ReferralEarnings decimal.Decimal
	CreatedAt        time.Time
}

// Balance returns the user's balance in currency, zero when absent.
func (u *User) Balance(currency string) decimal.Decimal {
	if u == nil || u.Balances == nil {
		return decimal.Zero
	}
	return u.Balances[currency]
}

// ReferralPrefix starts every referral token, e.g. "ref42".
const ReferralPrefix = "ref"

// ParseReferralToken returns the referrer id encoded in token.
func ParseReferralToken(token string) (int64, error) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, ReferralPrefix) {
		return 0, Invalid("ref", "token must start with %q", ReferralPrefix)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(token, ReferralPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid("ref", "malformed token %q", token)
	}
	return id, nil
}

// ReferralToken returns the token other users register with to credit u.
func ReferralToken(userID int64) string {
	return ReferralPrefix + strconv.FormatInt(userID, 10)
}
