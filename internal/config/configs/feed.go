package configs

import "time"

// Feed configures the deposit poller and the Tron RPC gateway it reads.
type Feed struct {
	Enabled      bool          `env:"POLL_ENABLED" envDefault:"true"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"20s"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
	RPCURL       string        `env:"TRON_RPC_URL"`
	Wallet       string        `env:"TRX_WALLET"`
	Limit        int           `env:"FETCH_LIMIT" envDefault:"50"`
	// MemoHex says the gateway returns raw_data.data hex encoded. When false
	// the memo is read as plain decimal digits.
	MemoHex bool `env:"MEMO_HEX" envDefault:"true"`
}
