package shared

import "context"

// ChangePublisher is notified after a successful mutation so derived data
// (dashboard statistics, cached aggregates) can be invalidated out of band.
type ChangePublisher interface {
	CollectionChanged(ctx context.Context, entity string)
}

// NopChangePublisher ignores all notifications.
type NopChangePublisher struct{}

func (NopChangePublisher) CollectionChanged(context.Context, string) {}
