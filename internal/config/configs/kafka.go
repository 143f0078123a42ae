package configs

// Kafka configures the ledger event stream. Events are not published when
// Brokers is empty.
type Kafka struct {
	// Brokers is a comma separated host:port list.
	Brokers string `env:"BROKERS"`
	Topic   string `env:"TOPIC" envDefault:"trxclicker.ledger.events"`
}
