package jobs

import (
	"context"
	"log/slog"
)

// Publisher forwards collection-change notifications to the queue so the
// dashboard cache is refreshed out of band. It satisfies
// shared.ChangePublisher.
type Publisher struct {
	client *Client
	logger *slog.Logger
}

// NewPublisher constructs a Publisher on top of an Asynq client.
func NewPublisher(client *Client, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

// CollectionChanged enqueues a dashboard refresh. Failures are logged, never
// propagated; a missed refresh only leaves the cache stale until its TTL.
func (p *Publisher) CollectionChanged(ctx context.Context, entity string) {
	if p == nil || p.client == nil {
		return
	}
	if _, err := p.client.EnqueueDashboardRefresh(ctx, entity); err != nil && p.logger != nil {
		p.logger.Warn("enqueue dashboard refresh", slog.String("entity", entity), slog.Any("error", err))
	}
}
