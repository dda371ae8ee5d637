package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/simaset/simaset/internal/jobs"
)

// DashboardInvalidator drops the cached dashboard summary so the next read
// reassembles it.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

// HandleDashboardRefresh builds the handler for TaskDashboardRefresh.
func HandleDashboardRefresh(inv DashboardInvalidator, metrics *jobmetrics.Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DashboardRefreshPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		tracker := metrics.Track("dashboard_refresh")
		err := inv.Invalidate(ctx)
		if err != nil {
			if logger != nil {
				logger.Error("dashboard refresh", slog.String("entity", payload.Entity), slog.Any("error", err))
			}
		} else if logger != nil {
			logger.Info("dashboard cache invalidated", slog.String("entity", payload.Entity))
		}
		return tracker.End(err)
	}
}
