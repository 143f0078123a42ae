package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 20*time.Second, cfg.Feed.PollInterval)
	assert.True(t, cfg.Feed.MemoHex)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, "TRX", p.PrimaryCurrency)
	assert.Equal(t, []string{"TRX", "USDT"}, p.Currencies)
	assert.True(t, p.ReferralBonus.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, p.WithdrawMin["TRX"].Equal(decimal.NewFromInt(5)))
	assert.True(t, p.DepositMin["USDT"].Equal(decimal.NewFromInt(1)))
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	require.ErrorContains(t, err, "STORE_DRIVER")
}

func TestPolicyFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("LEDGER_ADMIN_IDS", "7,9")
	t.Setenv("LEDGER_CURRENCIES", "trx, usdt ,")
	t.Setenv("LEDGER_PRIMARY_CURRENCY", "usdt")
	t.Setenv("LEDGER_DEPOSIT_MIN", "trx:2.5")
	t.Setenv("LEDGER_REFERRAL_BONUS", "1")

	cfg, err := Load()
	require.NoError(t, err)
	p, err := cfg.Policy()
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 9}, p.Admins)
	assert.Equal(t, "USDT", p.PrimaryCurrency)
	assert.Equal(t, []string{"TRX", "USDT"}, p.Currencies)
	require.Contains(t, p.DepositMin, "TRX")
	assert.True(t, p.DepositMin["TRX"].Equal(decimal.RequireFromString("2.5")))
	assert.NotContains(t, p.DepositMin, "USDT")
	assert.True(t, p.ReferralBonus.Equal(decimal.NewFromInt(1)))
}

func TestPolicyErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unsupported primary", map[string]string{"LEDGER_PRIMARY_CURRENCY": "BTC"}, "LEDGER_PRIMARY_CURRENCY"},
		{"bad bonus", map[string]string{"LEDGER_REFERRAL_BONUS": "lots"}, "LEDGER_REFERRAL_BONUS"},
		{"negative budget", map[string]string{"LEDGER_CAMPAIGN_MIN_BUDGET": "-1"}, "LEDGER_CAMPAIGN_MIN_BUDGET"},
		{"cpc range", map[string]string{"LEDGER_CPC_MIN": "5", "LEDGER_CPC_MAX": "1"}, "LEDGER_CPC_MIN"},
		{"unknown minimum currency", map[string]string{"LEDGER_WITHDRAW_MIN": "BTC:1"}, "LEDGER_WITHDRAW_MIN"},
		{"bad minimum", map[string]string{"LEDGER_DEPOSIT_MIN": "TRX:x"}, "LEDGER_DEPOSIT_MIN"},
		{"bonus too precise", map[string]string{"LEDGER_REFERRAL_BONUS": "0.0000001"}, "LEDGER_REFERRAL_BONUS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_JWT_SECRET", "s3cret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			require.NoError(t, err)

			_, err = cfg.Policy()
			require.ErrorContains(t, err, tt.want)
		})
	}
}
