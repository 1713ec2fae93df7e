package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/app"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/contracts"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/cache"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/db"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/receivables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/reports"
	"github.com/Lkfarinazzo7/fluxo-maestro/jobs"
)

// reportStore adapts the entity repositories to the report aggregator.
type reportStore struct {
	contracts   *contracts.Repository
	receivables *receivables.Repository
	payables    *payables.Repository
	people      *people.Repository
}

func (s reportStore) AllContracts(ctx context.Context) ([]contracts.Contract, error) {
	return s.contracts.List(ctx, contracts.ListFilter{})
}

func (s reportStore) AllReceivables(ctx context.Context) ([]receivables.Receivable, error) {
	return s.receivables.List(ctx)
}

func (s reportStore) AllPayables(ctx context.Context) ([]payables.Payable, error) {
	return s.payables.List(ctx)
}

func (s reportStore) Roster(ctx context.Context, role people.Role) ([]people.Person, error) {
	return s.people.List(ctx, role)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	reportCache := reports.NewCache(redisClient, cfg.CacheTTL)

	contractsRepo := contracts.NewRepository(pool)
	receivablesRepo := receivables.NewRepository(pool)
	payablesRepo := payables.NewRepository(pool)
	peopleRepo := people.NewRepository(pool)

	payablesService := payables.NewService(payablesRepo, reportCache)
	reportsService := reports.NewService(reportStore{
		contracts:   contractsRepo,
		receivables: receivablesRepo,
		payables:    payablesRepo,
		people:      peopleRepo,
	}, reportCache, cfg.TaxRate)

	recurJob := jobs.NewPayablesRecurJob(payablesService, logger, nil)
	warmupJob := jobs.NewReportsWarmupJob(reportsService, logger, nil)

	recurTask, err := jobs.NewPayablesRecurTask(jobs.PayablesRecurPayload{})
	if err != nil {
		logger.Error("build recurrence task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewReportsWarmupTask(jobs.ReportsWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskPayablesRecur, Handler: recurJob.Handle},
			{Type: jobs.TaskReportsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.RecurringCron, Task: recurTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.WarmupCron, Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(2)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
