package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/app"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/contracts"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/observability"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables/importer"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/cache"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/db"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/receivables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/reports"
	reporthttp "github.com/Lkfarinazzo7/fluxo-maestro/internal/reports/http"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/settings"
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
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

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

	contractsRepo := contracts.NewRepository(dbpool)
	contractsService := contracts.NewService(contractsRepo, reportCache)
	contractsHandler := contracts.NewHandler(logger, contractsService)

	receivablesRepo := receivables.NewRepository(dbpool)
	receivablesService := receivables.NewService(receivablesRepo, reportCache)
	receivablesHandler := receivables.NewHandler(logger, receivablesService)

	payablesRepo := payables.NewRepository(dbpool)
	payablesService := payables.NewService(payablesRepo, reportCache)
	payablesHandler := payables.NewHandler(logger, payablesService)

	importService := importer.NewService(payablesService)
	importHandler := importer.NewHandler(logger, importService)

	peopleRepo := people.NewRepository(dbpool)
	peopleService := people.NewService(peopleRepo)
	salespeopleHandler := people.NewHandler(logger, peopleService, people.RoleSalesperson)
	supervisorsHandler := people.NewHandler(logger, peopleService, people.RoleSupervisor)

	settingsStore := settings.NewRedisStore(redisClient)
	settingsHandler := settings.NewHandler(logger, settingsStore)

	reportsService := reports.NewService(reportStore{
		contracts:   contractsRepo,
		receivables: receivablesRepo,
		payables:    payablesRepo,
		people:      peopleRepo,
	}, reportCache, cfg.TaxRate)
	reportsHandler := reporthttp.NewHandler(logger, reportsService)

	metrics := observability.NewMetrics()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	// Every cache bump re-queues the dashboard warmup so the next load
	// after a mutation hits warm caches.
	err = reportCache.ListenForInvalidation(ctx, "", func(ctx context.Context, ver int64) {
		if _, err := jobClient.EnqueueReportsWarmup(ctx, jobs.ReportsWarmupPayload{}); err != nil {
			logger.Warn("enqueue report warmup", slog.Int64("version", ver), slog.Any("error", err))
		}
	})
	if err != nil {
		logger.Error("subscribe cache invalidation", slog.Any("error", err))
		os.Exit(1)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		ContractsHandler:   contractsHandler,
		ReceivablesHandler: receivablesHandler,
		PayablesHandler:    payablesHandler,
		ImportHandler:      importHandler,
		SalespeopleHandler: salespeopleHandler,
		SupervisorsHandler: supervisorsHandler,
		SettingsHandler:    settingsHandler,
		ReportsHandler:     reportsHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
