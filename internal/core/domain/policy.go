package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Policy holds the admin allowlist and numeric thresholds of the ledger. It is
// built once at startup and passed by value to the components that need it;
// nothing mutates it afterwards.
type Policy struct {
	Admins            []int64
	PrimaryCurrency   string
	Currencies        []string
	ReferralBonus     decimal.Decimal
	CPCMin            decimal.Decimal
	CPCMax            decimal.Decimal
	CampaignMinBudget decimal.Decimal
	DepositMin        map[string]decimal.Decimal
	WithdrawMin       map[string]decimal.Decimal
}

// IsAdmin reports whether userID is on the admin allowlist.
func (p Policy) IsAdmin(userID int64) bool {
	return slices.Contains(p.Admins, userID)
}

// Currency normalises a currency code and checks that it is supported.
func (p Policy) Currency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", Invalid("currency", "required")
	}
	if !slices.Contains(p.Currencies, code) {
		return "", Invalid("currency", "%s is not supported", code)
	}
	return code, nil
}

// CheckWithdrawal validates a withdrawal amount against the configured minimum.
func (p Policy) CheckWithdrawal(currency string, amount decimal.Decimal) error {
	if err := CheckAmount("amount", amount); err != nil {
		return err
	}
	if min, ok := p.WithdrawMin[currency]; ok && amount.LessThan(min) {
		return Invalid("amount", "minimum withdrawal for %s is %s", currency, min)
	}
	return nil
}

// CheckDeposit validates a deposit amount against the configured minimum.
func (p Policy) CheckDeposit(currency string, amount decimal.Decimal) error {
	if err := CheckAmount("amount", amount); err != nil {
		return err
	}
	if p.BelowDepositMin(currency, amount) {
		return Invalid("amount", "minimum deposit is %s %s", p.DepositMin[currency], currency)
	}
	return nil
}

// BelowDepositMin reports whether amount is under the deposit minimum for currency.
func (p Policy) BelowDepositMin(currency string, amount decimal.Decimal) bool {
	min, ok := p.DepositMin[currency]
	return ok && amount.LessThan(min)
}

// CheckCPC validates a cost per completion against the configured range.
func (p Policy) CheckCPC(cpc decimal.Decimal) error {
	if err := CheckAmount("cpc", cpc); err != nil {
		return err
	}
	if !p.CPCMin.IsZero() && cpc.LessThan(p.CPCMin) {
		return Invalid("cpc", "must be at least %s", p.CPCMin)
	}
	if !p.CPCMax.IsZero() && cpc.GreaterThan(p.CPCMax) {
		return Invalid("cpc", "must be at most %s", p.CPCMax)
	}
	return nil
}

// CheckBudget validates a campaign budget for the given cpc.
func (p Policy) CheckBudget(budget, cpc decimal.Decimal) error {
	if err := CheckAmount("budget", budget); err != nil {
		return err
	}
	if budget.LessThan(p.CampaignMinBudget) {
		return Invalid("budget", "minimum budget is %s", p.CampaignMinBudget)
	}
	if Slots(budget, cpc) < 1 {
		return Invalid("budget", "must cover at least one completion")
	}
	return nil
}
