package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"trxclicker/internal/adapter/feed"
	httpadapter "trxclicker/internal/adapter/http"
	"trxclicker/internal/adapter/kafka"
	"trxclicker/internal/adapter/memory"
	"trxclicker/internal/adapter/metrics"
	"trxclicker/internal/adapter/mongo"
	"trxclicker/internal/adapter/postgres"
	redisadapter "trxclicker/internal/adapter/redis"
	"trxclicker/internal/adapter/usecase"
	"trxclicker/internal/adapter/worker"
	"trxclicker/internal/config"
	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
	"trxclicker/internal/db"
)

// main loads configuration, opens the record store selected by
// STORE_DRIVER, wires the usecases and serves HTTP until SIGINT or SIGTERM.
// The deposit poller runs alongside the server and stops with it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stdout)

	if err = run(cfg, logger); err != nil {
		logger.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	policy, err := cfg.Policy()
	if err != nil {
		return fmt.Errorf("ledger policy: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]metrics.HealthFunc{}
	var cleanup []func()
	defer func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()

	store, err := openStore(ctx, cfg, logger, &cleanup)
	if err != nil {
		return err
	}
	checks["store"] = store.Ping

	var (
		notifier port.Notifier
		drafts   port.DraftRepository = memory.NewDraftRepository(cfg.Redis.DraftTTL)
	)
	if cfg.Redis.Addr != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		cleanup = append(cleanup, func() { _ = rdb.Close() })
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		notifier = redisadapter.NewNotifier(rdb)
		drafts = redisadapter.NewDraftRepository(rdb, cfg.Redis.DraftTTL)
	} else {
		logger.Warn("REDIS_ADDR not set: notifications disabled, drafts kept in memory")
	}

	var publisher port.EventPublisher
	if cfg.Kafka.Brokers != "" {
		pub := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		cleanup = append(cleanup, func() { _ = pub.Close() })
		publisher = pub
	}

	m := metrics.New()
	events := usecase.NewEmitter(publisher, notifier, logger)

	ledger := usecase.NewLedgerUseCase(store.Balances(), policy)
	campaignRes := usecase.NewReservationManager[*domain.Campaign](store, ledger, store.Campaigns(), events, logger)
	withdrawalRes := usecase.NewReservationManager[*domain.Withdrawal](store, ledger, store.Withdrawals(), events, logger)
	onReserve := func(kind domain.EntityKind, result string) {
		m.Reservations.WithLabelValues(string(kind), result).Inc()
	}
	campaignRes.OnReserve = onReserve
	withdrawalRes.OnReserve = onReserve

	admin := usecase.NewAdminUseCase(store, campaignRes, withdrawalRes, policy, logger)
	admin.OnDecision = func(kind domain.EntityKind, outcome string) {
		m.Decisions.WithLabelValues(string(kind), outcome).Inc()
	}
	deposits := usecase.NewDepositUseCase(store, ledger, policy, events, logger)
	campaigns := usecase.NewCampaignUseCase(store, campaignRes, policy, events, logger)

	svc := httpadapter.Services{
		Users:       usecase.NewUserUseCase(store, ledger, policy, events, logger),
		Ledger:      ledger,
		Campaigns:   campaigns,
		Drafts:      usecase.NewDraftUseCase(drafts, store.Users(), campaigns, policy, logger),
		Withdrawals: usecase.NewWithdrawalUseCase(store, withdrawalRes, policy, events, logger),
		Deposits:    deposits,
		Admin:       admin,
	}
	handler := httpadapter.NewHandler(svc,
		httpadapter.NewTokenVerifier(cfg.Auth.Secret, cfg.Auth.Issuer),
		httpadapter.Ops{Metrics: m.Handler(), Health: metrics.HealthHandler(checks)},
		logger)

	var wg sync.WaitGroup
	if cfg.Feed.Enabled && cfg.Feed.RPCURL != "" {
		poller := &worker.DepositPoller{
			Log:          logger,
			Feed:         feed.NewTronClient(cfg.Feed.RPCURL, cfg.Feed.Wallet, policy.PrimaryCurrency, cfg.Feed.Limit, cfg.Feed.MemoHex, &http.Client{Timeout: cfg.Feed.FetchTimeout}, logger),
			Deposits:     deposits,
			Interval:     cfg.Feed.PollInterval,
			FetchTimeout: cfg.Feed.FetchTimeout,
			OnCycle:      m.ObserveIngest,
			OnError:      func(stage string) { m.PollErrors.WithLabelValues(stage).Inc() },
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = poller.Run(ctx)
		}()
	} else {
		logger.Warn("deposit poller disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if sErr := srv.Shutdown(shutdownCtx); sErr != nil {
		logger.Error("server shutdown error", slog.Any("error", sErr))
	} else {
		logger.Info("server gracefully stopped")
	}
	wg.Wait()
	return err
}

// openStore connects the record store named by cfg.StoreDriver and
// registers its teardown in cleanup.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger, cleanup *[]func()) (port.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store: balances are lost on exit")
		return memory.NewStore(), nil

	case config.DriverMongo:
		client, err := db.NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		*cleanup = append(*cleanup, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		})
		store := mongo.New(client.Database(cfg.Mongo.Database))
		if err = store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil

	default:
		if cfg.Psql.RunMigrations {
			if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return nil, fmt.Errorf("migrations: %w", err)
			}
			logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, fmt.Errorf("database connection: %w", err)
		}
		*cleanup = append(*cleanup, pool.Close)
		if cfg.Psql.Seed {
			if err = db.Seed(ctx, pool); err != nil {
				return nil, fmt.Errorf("seed: %w", err)
			}
			logger.Info("demo data seeded")
		}
		return postgres.NewStore(pool), nil
	}
}
