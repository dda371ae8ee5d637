package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardRefresh invalidates the cached dashboard summary after
	// a collection changed.
	TaskDashboardRefresh = "dashboard:refresh"
	// TaskDepreciation recalculates asset book values on a schedule.
	TaskDepreciation = "aset:penyusutan"
)

// DashboardRefreshPayload names the collection whose change triggered the
// refresh.
type DashboardRefreshPayload struct {
	Entity    string    `json:"entity"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewDashboardRefreshTask constructs an Asynq task for a dashboard refresh.
func NewDashboardRefreshTask(entity string) (*asynq.Task, error) {
	payload := DashboardRefreshPayload{Entity: entity, ChangedAt: time.Now()}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardRefresh, body, asynq.Queue(QueueDefault)), nil
}

// DepreciationPayload carries scheduling metadata.
type DepreciationPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewDepreciationTask constructs an Asynq task for the depreciation run.
func NewDepreciationTask(at time.Time) (*asynq.Task, error) {
	payload := DepreciationPayload{ScheduledFor: at}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDepreciation, body, asynq.Queue(QueueDefault)), nil
}
