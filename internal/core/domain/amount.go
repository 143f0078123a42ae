package domain

import "github.com/shopspring/decimal"

// MaxScale is the number of decimal places every store keeps for an amount.
// Postgres columns are NUMERIC(30, 6); an amount with more places would be
// rounded differently on each row it is written to.
const MaxScale = 6

// CheckAmount reports a ValidationError on field unless amount is positive
// and has at most MaxScale decimal places.
func CheckAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return Invalid(field, "must be positive")
	}
	if !FitsScale(amount) {
		return Invalid(field, "at most %d decimal places", MaxScale)
	}
	return nil
}

// FitsScale reports whether amount has at most MaxScale decimal places.
// Trailing zeros do not count.
func FitsScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MaxScale))
}
