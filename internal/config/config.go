package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"trxclicker/internal/config/configs"
	"trxclicker/internal/core/domain"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. Use Load to construct a Config.
type Config struct {
	Env string `env:"ENV" envDefault:"prod"`

	// StoreDriver selects the record store backend.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	HTTP   configs.HTTP     `envPrefix:"HTTP_"`
	Log    configs.Logger   `envPrefix:"LOG_"`
	Psql   configs.Postgres `envPrefix:"PSQL_"`
	Mongo  configs.Mongo    `envPrefix:"MONGO_"`
	Redis  configs.Redis    `envPrefix:"REDIS_"`
	Kafka  configs.Kafka    `envPrefix:"KAFKA_"`
	Auth   configs.Auth     `envPrefix:"AUTH_"`
	Feed   configs.Feed     `envPrefix:"DEPOSIT_"`
	Ledger configs.Ledger   `envPrefix:"LEDGER_"`
}

// Load reads configuration from environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return cfg, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

// Policy builds the immutable ledger policy from the Ledger section.
func (c Config) Policy() (domain.Policy, error) {
	l := c.Ledger
	p := domain.Policy{
		Admins:          append([]int64(nil), l.AdminIDs...),
		PrimaryCurrency: strings.ToUpper(strings.TrimSpace(l.PrimaryCurrency)),
	}
	for _, cur := range l.Currencies {
		if cur = strings.ToUpper(strings.TrimSpace(cur)); cur != "" {
			p.Currencies = append(p.Currencies, cur)
		}
	}
	if _, err := p.Currency(p.PrimaryCurrency); err != nil {
		return p, fmt.Errorf("LEDGER_PRIMARY_CURRENCY: %w", err)
	}

	var err error
	for name, dst := range map[string]struct {
		raw string
		out *decimal.Decimal
	}{
		"LEDGER_REFERRAL_BONUS":      {l.ReferralBonus, &p.ReferralBonus},
		"LEDGER_CPC_MIN":             {l.CPCMin, &p.CPCMin},
		"LEDGER_CPC_MAX":             {l.CPCMax, &p.CPCMax},
		"LEDGER_CAMPAIGN_MIN_BUDGET": {l.CampaignMinBudget, &p.CampaignMinBudget},
	} {
		if *dst.out, err = parseAmount(dst.raw); err != nil {
			return p, fmt.Errorf("%s: %w", name, err)
		}
	}
	if p.CPCMax.IsPositive() && p.CPCMin.GreaterThan(p.CPCMax) {
		return p, fmt.Errorf("LEDGER_CPC_MIN %s exceeds LEDGER_CPC_MAX %s", p.CPCMin, p.CPCMax)
	}
	if p.DepositMin, err = parseMinimums(p, l.DepositMin); err != nil {
		return p, fmt.Errorf("LEDGER_DEPOSIT_MIN: %w", err)
	}
	if p.WithdrawMin, err = parseMinimums(p, l.WithdrawMin); err != nil {
		return p, fmt.Errorf("LEDGER_WITHDRAW_MIN: %w", err)
	}
	return p, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return d, err
	}
	if d.IsNegative() {
		return d, fmt.Errorf("negative amount %s", d)
	}
	if !domain.FitsScale(d) {
		return d, fmt.Errorf("amount %s has more than %d decimal places", d, domain.MaxScale)
	}
	return d, nil
}

func parseMinimums(p domain.Policy, raw map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(raw))
	for cur, amt := range raw {
		code, err := p.Currency(cur)
		if err != nil {
			return nil, err
		}
		if out[code], err = parseAmount(amt); err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
	}
	return out, nil
}
