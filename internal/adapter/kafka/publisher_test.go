package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/port"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestPublishKeysByUser(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{w: w}
	uid := int64(42)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), []port.LedgerEvent{
		{Type: port.EventCredited, UserID: &uid, Currency: "TRX", Amount: decimal.RequireFromString("5"), TxID: "tx", At: at},
		{Type: port.EventDepositUnassigned, Currency: "TRX", Amount: decimal.RequireFromString("1"), TxID: "tx2", At: at},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	assert.Equal(t, "42", string(w.msgs[0].Key))
	assert.Equal(t, "unattributed", string(w.msgs[1].Key))
	assert.Equal(t, at, w.msgs[0].Time)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &body))
	assert.Equal(t, "credited", body["type"])
	assert.Equal(t, "5", body["amount"])
	assert.Equal(t, float64(42), body["user_id"])
	_, err = uuid.Parse(body["id"].(string))
	assert.NoError(t, err)
}

func TestPublishEmptyAndErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &Publisher{w: w}

	require.NoError(t, p.Publish(context.Background(), nil))
	assert.Empty(t, w.msgs)

	err := p.Publish(context.Background(), []port.LedgerEvent{{Type: port.EventReserved}})
	assert.EqualError(t, err, "leader not available")
}

func TestNewWriterDefaults(t *testing.T) {
	w := NewWriter("a:9092,b:9092", "")
	defer w.Close()
	assert.Equal(t, TopicLedgerEvents, w.Topic)
	assert.NotNil(t, w.Addr)
	_, ok := w.Balancer.(*kafka.Hash)
	assert.True(t, ok)
}
