package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/simaset/simaset/internal/jobs"
)

// BookValueRecalculator reprices every depreciable asset, returning the
// number of rows touched.
type BookValueRecalculator interface {
	RecalculateBookValues(ctx context.Context) (int64, error)
}

// HandleDepreciation builds the handler for TaskDepreciation. After a
// successful run the dashboard cache is invalidated so the new book values
// show up.
func HandleDepreciation(repo BookValueRecalculator, inv DashboardInvalidator, metrics *jobmetrics.Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DepreciationPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		tracker := metrics.Track("depreciation")

		updated, err := repo.RecalculateBookValues(ctx)
		if err != nil {
			if logger != nil {
				logger.Error("depreciation run", slog.Any("error", err))
			}
			return tracker.End(err)
		}
		if inv != nil {
			if invErr := inv.Invalidate(ctx); invErr != nil && logger != nil {
				logger.Warn("invalidate dashboard after depreciation", slog.Any("error", invErr))
			}
		}
		if logger != nil {
			logger.Info("depreciation run finished",
				slog.Int64("assets_updated", updated),
				slog.Time("scheduled_for", payload.ScheduledFor),
			)
		}
		return tracker.End(nil)
	}
}
