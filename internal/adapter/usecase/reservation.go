package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// ReservationManager is the two-phase reserve / commit / release protocol
// shared by campaigns and withdrawals. Funds leave the balance before the
// entity becomes pending and come back only through Release.
type ReservationManager[T domain.Reservable] struct {
	tx     port.Transactor
	ledger port.LedgerUseCase
	repo   port.PendingRepository[T]
	events *Emitter
	log    *slog.Logger
	now    func() time.Time

	// OnReserve is called with "ok", "insufficient_funds" or "error" after
	// every Reserve.
	OnReserve func(kind domain.EntityKind, result string)
}

func NewReservationManager[T domain.Reservable](tx port.Transactor, ledger port.LedgerUseCase, repo port.PendingRepository[T], events *Emitter, log *slog.Logger) *ReservationManager[T] {
	return &ReservationManager[T]{tx: tx, ledger: ledger, repo: repo, events: events, log: log, now: time.Now}
}

func (m *ReservationManager[T]) observe(kind domain.EntityKind, err error) {
	if m.OnReserve == nil {
		return
	}
	switch {
	case err == nil:
		m.OnReserve(kind, "ok")
	case errors.Is(err, domain.ErrInsufficientFunds):
		m.OnReserve(kind, "insufficient_funds")
	default:
		m.OnReserve(kind, "error")
	}
}

// Reserve debits the entity's hold and stores the entity as pending. With
// domain.ErrInsufficientFunds nothing is created.
func (m *ReservationManager[T]) Reserve(ctx context.Context, entity T) (err error) {
	h := entity.Hold()
	defer func() { m.observe(entity.Kind(), err) }()
	if err = domain.CheckAmount("amount", h.Amount); err != nil {
		return err
	}
	err = m.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := m.ledger.DebitIfSufficient(ctx, h.UserID, h.Currency, h.Amount); err != nil {
			return err
		}
		if err := m.repo.Create(ctx, entity); err != nil {
			if m.tx.SupportsRollback() {
				return err
			}
			if rerr := m.ledger.Refund(ctx, h.UserID, h.Currency, h.Amount); rerr != nil {
				m.log.Error("compensating refund failed",
					slog.Any("error", rerr),
					slog.String("kind", string(entity.Kind())),
					slog.String("id", entity.EntityID()),
					slog.Int64("user_id", h.UserID),
					slog.String("amount", h.Amount.String()))
				return errors.Join(err, rerr)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.events.publish(ctx, port.LedgerEvent{
		Type:     port.EventReserved,
		UserID:   &h.UserID,
		Currency: h.Currency,
		Amount:   h.Amount,
		EntityID: entity.EntityID(),
		At:       m.now().UTC(),
	})
	return nil
}

// Commit moves a pending entity to its approved status. Funds stay debited.
// A non-pending entity yields domain.ErrAlreadyDecided together with its
// current state.
func (m *ReservationManager[T]) Commit(ctx context.Context, id string) (T, error) {
	current, err := m.repo.Get(ctx, id)
	if err != nil {
		return current, err
	}
	if current.CurrentStatus() != domain.StatusPending {
		return current, domain.ErrAlreadyDecided
	}
	updated, err := m.repo.Transition(ctx, domain.Transition{
		ID:   id,
		From: domain.StatusPending,
		To:   current.ApprovedStatus(),
		At:   m.now().UTC(),
	})
	if errors.Is(err, domain.ErrAlreadyDecided) {
		return m.current(ctx, id)
	}
	if err != nil {
		return updated, err
	}
	h := updated.Hold()
	m.events.publish(ctx, port.LedgerEvent{
		Type:     port.EventCommitted,
		UserID:   &h.UserID,
		Currency: h.Currency,
		Amount:   h.Amount,
		EntityID: id,
		At:       m.now().UTC(),
	})
	return updated, nil
}

// Release rejects a pending entity and refunds its hold. The status change
// happens first, so concurrent releases refund at most once.
func (m *ReservationManager[T]) Release(ctx context.Context, id string) (T, error) {
	var updated T
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = m.repo.Transition(ctx, domain.Transition{
			ID:   id,
			From: domain.StatusPending,
			To:   domain.StatusRejected,
			At:   m.now().UTC(),
		})
		if err != nil {
			return err
		}
		h := updated.Hold()
		if err = m.ledger.Refund(ctx, h.UserID, h.Currency, h.Amount); err != nil {
			if !m.tx.SupportsRollback() {
				m.log.Error("refund after release failed",
					slog.Any("error", err),
					slog.String("kind", string(updated.Kind())),
					slog.String("id", id),
					slog.Int64("user_id", h.UserID),
					slog.String("amount", h.Amount.String()))
			}
			return err
		}
		return nil
	})
	if errors.Is(err, domain.ErrAlreadyDecided) {
		return m.current(ctx, id)
	}
	if err != nil {
		return updated, err
	}
	h := updated.Hold()
	m.events.publish(ctx, port.LedgerEvent{
		Type:     port.EventReleased,
		UserID:   &h.UserID,
		Currency: h.Currency,
		Amount:   h.Amount,
		EntityID: id,
		At:       m.now().UTC(),
	})
	return updated, nil
}

func (m *ReservationManager[T]) current(ctx context.Context, id string) (T, error) {
	current, err := m.repo.Get(ctx, id)
	if err != nil {
		return current, err
	}
	return current, domain.ErrAlreadyDecided
}

func (m *ReservationManager[T]) Get(ctx context.Context, id string) (T, error) {
	return m.repo.Get(ctx, id)
}
