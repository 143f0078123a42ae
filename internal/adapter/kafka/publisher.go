package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"trxclicker/internal/core/port"
)

// TopicLedgerEvents receives every committed balance or reservation change.
const TopicLedgerEvents = "trxclicker.ledger.events"

// NewWriter returns a writer for topic on a comma separated broker list. An
// empty topic means TopicLedgerEvents.
func NewWriter(brokers, topic string) *kafka.Writer {
	if topic == "" {
		topic = TopicLedgerEvents
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

type envelope struct {
	ID string `json:"id"`
	port.LedgerEvent
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements port.EventPublisher. Messages are keyed by user id so
// one user's events stay ordered within a partition.
type Publisher struct {
	w messageWriter
}

func NewPublisher(w *kafka.Writer) *Publisher {
	return &Publisher{w: w}
}

func (p *Publisher) Publish(ctx context.Context, events []port.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs, err := encode(events)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msgs...)
}

func encode(events []port.LedgerEvent) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		b, err := json.Marshal(envelope{ID: uuid.NewString(), LedgerEvent: ev})
		if err != nil {
			return nil, err
		}
		key := "unattributed"
		if ev.UserID != nil {
			key = strconv.FormatInt(*ev.UserID, 10)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: b, Time: ev.At})
	}
	return msgs, nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
