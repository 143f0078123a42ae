package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

type ingestResult int

const (
	resultCredited ingestResult = iota
	resultUnattributed
	resultDuplicate
	resultBelowMinimum
	resultMalformed
)

// DepositUseCase implements port.DepositUseCase. It is the only writer of
// the dedup set.
type DepositUseCase struct {
	store  port.Store
	ledger port.LedgerUseCase
	policy domain.Policy
	events *Emitter
	log    *slog.Logger
	now    func() time.Time
}

func NewDepositUseCase(store port.Store, ledger port.LedgerUseCase, policy domain.Policy, events *Emitter, log *slog.Logger) *DepositUseCase {
	return &DepositUseCase{store: store, ledger: ledger, policy: policy, events: events, log: log, now: time.Now}
}

// Ingest handles records one by one. The dedup insert always precedes the
// credit, so a txid is credited at most once however often it is seen.
func (u *DepositUseCase) Ingest(ctx context.Context, records []port.FeedRecord) (port.IngestReport, error) {
	var report port.IngestReport
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := u.ingest(ctx, rec)
		if err != nil {
			u.log.Error("ingest deposit failed", slog.Any("error", err), slog.String("txid", rec.TxID))
			continue
		}
		switch res {
		case resultCredited:
			report.Credited++
		case resultUnattributed:
			report.Unattributed++
		case resultDuplicate:
			report.Duplicates++
		case resultBelowMinimum:
			report.BelowMinimum++
		case resultMalformed:
			report.Malformed++
		}
	}
	return report, nil
}

func (u *DepositUseCase) ingest(ctx context.Context, rec port.FeedRecord) (ingestResult, error) {
	txid := strings.TrimSpace(rec.TxID)
	currency, err := u.policy.Currency(rec.Currency)
	if txid == "" || domain.CheckAmount("amount", rec.Amount) != nil || err != nil {
		u.log.Debug("skip malformed feed record", slog.String("txid", txid), slog.String("amount", rec.Amount.String()))
		return resultMalformed, nil
	}
	now := u.now().UTC()

	if u.policy.BelowDepositMin(currency, rec.Amount) {
		err = u.store.Dedup().MarkSeen(ctx, txid, now)
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			return resultDuplicate, nil
		}
		if err != nil {
			return 0, err
		}
		u.log.Info("deposit below minimum ignored", slog.String("txid", txid), slog.String("amount", rec.Amount.String()))
		return resultBelowMinimum, nil
	}

	dep := &domain.Deposit{
		ID:        domain.NewID(domain.PrefixDeposit),
		Currency:  currency,
		Amount:    rec.Amount,
		TxID:      &txid,
		Status:    domain.DepositPending,
		CreatedAt: now,
	}
	err = u.store.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.store.Dedup().MarkSeen(ctx, txid, now); err != nil {
			return err
		}
		if rec.UserID != nil {
			err := u.ledger.Credit(ctx, *rec.UserID, currency, rec.Amount)
			switch {
			case err == nil:
				dep.UserID = rec.UserID
				dep.Status = domain.DepositCompleted
			case errors.Is(err, domain.ErrNotFound):
				u.log.Warn("deposit for unknown user", slog.String("txid", txid), slog.Int64("user_id", *rec.UserID))
			case u.store.SupportsRollback():
				return err
			default:
				// The txid is already marked and cannot be retried; keep the
				// deposit for manual attribution.
				u.log.Error("credit failed, filing deposit as unattributed", slog.Any("error", err), slog.String("txid", txid))
			}
		}
		return u.store.Deposits().CreateDeposit(ctx, dep)
	})
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		return resultDuplicate, nil
	}
	if err != nil {
		return 0, err
	}

	if dep.UserID == nil {
		u.log.Warn("deposit unattributed", slog.Any("reason", domain.ErrUnattributed), slog.String("txid", txid), slog.String("amount", dep.Amount.String()))
		u.events.publish(ctx, port.LedgerEvent{Type: port.EventDepositUnassigned, Currency: currency, Amount: dep.Amount, EntityID: dep.ID, TxID: txid, At: now})
		u.events.notifyAll(ctx, u.policy.Admins, "Unattributed deposit %s %s, txid %s", dep.Amount, currency, txid)
		return resultUnattributed, nil
	}
	u.log.Info("deposit credited", slog.String("txid", txid), slog.Int64("user_id", *dep.UserID), slog.String("amount", dep.Amount.String()))
	u.events.publish(ctx, port.LedgerEvent{Type: port.EventCredited, UserID: dep.UserID, Currency: currency, Amount: dep.Amount, EntityID: dep.ID, TxID: txid, At: now})
	u.events.notify(ctx, *dep.UserID, "Deposit of %s %s credited", dep.Amount, currency)
	return resultCredited, nil
}

// Declare records a user's claim that they sent funds. It never credits; an
// admin matches it against the observed transaction.
func (u *DepositUseCase) Declare(ctx context.Context, req port.DeclareDepositReq) (*domain.Deposit, error) {
	currency, err := u.policy.Currency(req.Currency)
	if err != nil {
		return nil, err
	}
	if err = u.policy.CheckDeposit(currency, req.Amount); err != nil {
		return nil, err
	}
	if _, err = u.store.Users().GetUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	var txid *string
	if req.TxID != nil {
		if t := strings.TrimSpace(*req.TxID); t != "" {
			txid = &t
		}
	}
	userID := req.UserID
	dep := &domain.Deposit{
		ID:        domain.NewID(domain.PrefixDeposit),
		UserID:    &userID,
		Currency:  currency,
		Amount:    req.Amount,
		TxID:      txid,
		Status:    domain.DepositDeclared,
		CreatedAt: u.now().UTC(),
	}
	if err = u.store.Deposits().CreateDeposit(ctx, dep); err != nil {
		return nil, err
	}
	u.events.notifyAll(ctx, u.policy.Admins, "User %d declared a deposit of %s %s", userID, dep.Amount, currency)
	return dep, nil
}

func (u *DepositUseCase) ListUnattributed(ctx context.Context, actorID int64, limit int) ([]*domain.Deposit, error) {
	if !u.policy.IsAdmin(actorID) {
		return nil, domain.ErrNotAuthorized
	}
	return u.store.Deposits().ListUnattributed(ctx, limit)
}

func (u *DepositUseCase) ListMine(ctx context.Context, userID int64, limit int) ([]*domain.Deposit, error) {
	return u.store.Deposits().ListDepositsByUser(ctx, userID, limit)
}
