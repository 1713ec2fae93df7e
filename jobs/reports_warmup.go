package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/Lkfarinazzo7/fluxo-maestro/internal/jobs"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/reports"
)

// defaultWarmupPeriods are the tokens the dashboard hits most often.
var defaultWarmupPeriods = []string{"hoje", "semana", "mes", "ultimos-30"}

// ReportsWarmupJob pre-populates the report caches so the first
// dashboard load of the day does not pay the aggregation cost.
type ReportsWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(svc *reports.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportsWarmupJob {
	return &ReportsWarmupJob{Reports: svc, Logger: logger, Metrics: metrics}
}

// Handle processes report warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	periods := payload.Periods
	if len(periods) == 0 {
		periods = defaultWarmupPeriods
	}

	tracker := j.metrics().Track(TaskReportsWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting report warmup", slog.Int("periods", len(periods)))

	warmed := 0
	for _, token := range periods {
		if err := j.warmPeriod(ctx, token); err != nil {
			resultErr = err
			logger.Error("warm period", slog.String("period", token), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed report warmup", slog.Int("warmed", warmed))
	return resultErr
}

func (j *ReportsWarmupJob) warmPeriod(ctx context.Context, token string) error {
	// Tighten each period with a timeout to avoid long-running jobs.
	periodCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	q := reports.PeriodQuery{Token: token}
	if _, err := j.Reports.GetSummary(periodCtx, q); err != nil {
		return err
	}
	if _, err := j.Reports.GetCashflow(periodCtx, q); err != nil {
		return err
	}
	if _, err := j.Reports.GetDRE(periodCtx, q); err != nil {
		return err
	}
	if _, err := j.Reports.GetCommissions(periodCtx, people.RoleSalesperson, q); err != nil {
		return err
	}
	if _, err := j.Reports.GetCommissions(periodCtx, people.RoleSupervisor, q); err != nil {
		return err
	}
	return nil
}

func (j *ReportsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportsWarmup))
}

func (j *ReportsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
