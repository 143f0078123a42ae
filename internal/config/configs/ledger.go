package configs

// Ledger holds the admin allowlist and the numeric thresholds. Amounts are
// decimal strings; per-currency minimums use the "TRX:10,USDT:5" form.
type Ledger struct {
	AdminIDs          []int64           `env:"ADMIN_IDS"`
	PrimaryCurrency   string            `env:"PRIMARY_CURRENCY" envDefault:"TRX"`
	Currencies        []string          `env:"CURRENCIES" envDefault:"TRX,USDT"`
	ReferralBonus     string            `env:"REFERRAL_BONUS" envDefault:"0.25"`
	CPCMin            string            `env:"CPC_MIN" envDefault:"0.01"`
	CPCMax            string            `env:"CPC_MAX" envDefault:"10"`
	CampaignMinBudget string            `env:"CAMPAIGN_MIN_BUDGET" envDefault:"1"`
	DepositMin        map[string]string `env:"DEPOSIT_MIN" envDefault:"TRX:1,USDT:1"`
	WithdrawMin       map[string]string `env:"WITHDRAW_MIN" envDefault:"TRX:5,USDT:5"`
}
