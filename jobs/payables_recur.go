package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/Lkfarinazzo7/fluxo-maestro/internal/jobs"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// PayablesRecurJob creates the current month's instances of recurring
// expenses that are still missing.
type PayablesRecurJob struct {
	Payables *payables.Service
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
	clock    func() time.Time
}

// NewPayablesRecurJob wires dependencies for the recurrence handler.
func NewPayablesRecurJob(svc *payables.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *PayablesRecurJob {
	return &PayablesRecurJob{
		Payables: svc,
		Logger:   logger,
		Metrics:  metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes recurring payables tasks.
func (j *PayablesRecurJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Payables == nil {
		return errors.New("payables recur: handler not configured")
	}
	var payload PayablesRecurPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	refDate := j.now()
	if payload.RefDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.RefDate)
		if err != nil {
			return asynq.SkipRetry
		}
		refDate = parsed
	}

	tracker := j.metrics().Track(TaskPayablesRecur)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("ref_month", refDate.Format("2006-01")))
	logger.Info("starting recurring payables materialisation")

	jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	created, err := j.Payables.MaterializeRecurring(jobCtx, refDate)
	if err != nil {
		resultErr = err
		logger.Error("materialise recurring payables", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed recurring payables materialisation", slog.Int("created", created))
	return resultErr
}

func (j *PayablesRecurJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskPayablesRecur))
	}
	return slog.Default().With(slog.String("job", TaskPayablesRecur))
}

func (j *PayablesRecurJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *PayablesRecurJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
