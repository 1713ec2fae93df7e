package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPayablesRecur materialises recurring expense instances.
	TaskPayablesRecur = "payables:recur"
	// TaskReportsWarmup pre-populates report caches for common periods.
	TaskReportsWarmup = "reports:warmup"
)

// PayablesRecurPayload selects the reference month for materialisation.
// An empty RefDate means the current month.
type PayablesRecurPayload struct {
	RefDate string `json:"refDate,omitempty"`
}

// ReportsWarmupPayload lists period tokens to warm. Empty means the
// default set of dashboard periods.
type ReportsWarmupPayload struct {
	Periods []string `json:"periods,omitempty"`
}

// NewPayablesRecurTask constructs the recurring payables task.
func NewPayablesRecurTask(payload PayablesRecurPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPayablesRecur, data), nil
}

// NewReportsWarmupTask constructs the report warmup task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}
