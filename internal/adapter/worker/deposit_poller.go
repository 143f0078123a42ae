package worker

import (
	"context"
	"log/slog"
	"time"

	"trxclicker/internal/core/port"
)

// DepositPoller fetches the deposit feed every Interval and hands the
// records to the ingestor. Fetch and ingest errors are logged and the loop
// waits for the next tick. Metrics hooks are optional.
type DepositPoller struct {
	Log          *slog.Logger
	Feed         port.DepositFeed
	Deposits     port.DepositUseCase
	Interval     time.Duration
	FetchTimeout time.Duration

	OnCycle func(report port.IngestReport, took time.Duration)
	OnError func(stage string)
}

// Run polls immediately and then on every tick until ctx is cancelled.
func (p *DepositPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	p.Log.Info("deposit poller started", slog.Duration("interval", p.Interval))
	for {
		p.Poll(ctx)
		select {
		case <-ctx.Done():
			p.Log.Info("deposit poller stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll runs one cycle. The whole feed is fetched before any record is
// processed.
func (p *DepositPoller) Poll(ctx context.Context) {
	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, p.FetchTimeout)
	records, err := p.Feed.Fetch(fetchCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.Log.Warn("deposit feed fetch failed", slog.Any("error", err))
		p.fail("fetch")
		return
	}

	report, err := p.Deposits.Ingest(ctx, records)
	if err != nil && ctx.Err() == nil {
		p.Log.Warn("deposit ingest failed", slog.Any("error", err))
		p.fail("ingest")
	}
	if p.OnCycle != nil {
		p.OnCycle(report, time.Since(start))
	}
	if report.Credited > 0 || report.Unattributed > 0 {
		p.Log.Info("deposit poll",
			slog.Int("records", len(records)),
			slog.Int("credited", report.Credited),
			slog.Int("unattributed", report.Unattributed),
			slog.Int("duplicates", report.Duplicates))
	}
}

func (p *DepositPoller) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
