package configs

import "time"

// Redis configures notifications and campaign drafts. With an empty Addr
// notifications are disabled and drafts are kept in memory.
type Redis struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	DraftTTL time.Duration `env:"DRAFT_TTL" envDefault:"15m"`
}
