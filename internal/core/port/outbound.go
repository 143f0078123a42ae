package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FeedRecord is one incoming transaction observed on the external feed.
// UserID is nil when the transaction carries no attribution.
type FeedRecord struct {
	TxID     string
	Amount   decimal.Decimal
	Currency string
	UserID   *int64
}

// DepositFeed fetches the latest incoming transactions for the platform wallet.
type DepositFeed interface {
	Fetch(ctx context.Context) ([]FeedRecord, error)
}

// Notifier delivers a message to a user. Delivery is best effort; callers log
// and drop the returned error.
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string) error
}

// EventType names a ledger event.
type EventType string

const (
	EventCredited          EventType = "credited"
	EventDepositUnassigned EventType = "deposit_unattributed"
	EventReserved          EventType = "reserved"
	EventCommitted         EventType = "committed"
	EventReleased          EventType = "released"
	EventReferralCredited  EventType = "referral_credited"
)

// LedgerEvent describes a balance or reservation change after it has been
// committed to the store.
type LedgerEvent struct {
	Type     EventType       `json:"type"`
	UserID   *int64          `json:"user_id,omitempty"`
	Currency string          `json:"currency,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	EntityID string          `json:"entity_id,omitempty"`
	TxID     string          `json:"txid,omitempty"`
	At       time.Time       `json:"at"`
}

// EventPublisher emits ledger events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events []LedgerEvent) error
}
