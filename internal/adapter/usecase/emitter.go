package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trxclicker/internal/core/port"
)

// notifyTimeout bounds a single notification attempt.
const notifyTimeout = 2 * time.Second

// Emitter publishes ledger events and user notifications after the store
// has committed a change. Both are best effort: failures are logged and
// never reach the caller. A nil publisher or notifier disables that output.
type Emitter struct {
	pub      port.EventPublisher
	notifier port.Notifier
	log      *slog.Logger
}

func NewEmitter(pub port.EventPublisher, notifier port.Notifier, log *slog.Logger) *Emitter {
	return &Emitter{pub: pub, notifier: notifier, log: log}
}

func (e *Emitter) publish(ctx context.Context, events ...port.LedgerEvent) {
	if e == nil || e.pub == nil || len(events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := e.pub.Publish(ctx, events); err != nil {
		e.log.Warn("publish ledger events failed", slog.Any("error", err), slog.Int("count", len(events)))
	}
}

func (e *Emitter) notify(ctx context.Context, userID int64, format string, args ...any) {
	if e == nil || e.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := e.notifier.Notify(ctx, userID, fmt.Sprintf(format, args...)); err != nil {
		e.log.Warn("notify failed", slog.Any("error", err), slog.Int64("user_id", userID))
	}
}

func (e *Emitter) notifyAll(ctx context.Context, userIDs []int64, format string, args ...any) {
	for _, id := range userIDs {
		e.notify(ctx, id, format, args...)
	}
}
