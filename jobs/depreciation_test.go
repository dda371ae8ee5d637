package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/simaset/simaset/internal/jobs"
	_ "github.com/simaset/simaset/testing"
)

type stubRecalculator struct {
	updated int64
	err     error
	calls   int
}

func (s *stubRecalculator) RecalculateBookValues(ctx context.Context) (int64, error) {
	s.calls++
	return s.updated, s.err
}

type stubInvalidator struct {
	calls int
	err   error
}

func (s *stubInvalidator) Invalidate(ctx context.Context) error {
	s.calls++
	return s.err
}

func TestHandleDepreciationInvalidatesDashboard(t *testing.T) {
	repo := &stubRecalculator{updated: 7}
	inv := &stubInvalidator{}
	handler := HandleDepreciation(repo, inv, nil, nil)

	task, err := NewDepreciationTask(time.Now())
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, 1, repo.calls)
	require.Equal(t, 1, inv.calls)
}

func TestHandleDepreciationPropagatesFailure(t *testing.T) {
	repo := &stubRecalculator{err: errors.New("db down")}
	inv := &stubInvalidator{}
	handler := HandleDepreciation(repo, inv, jobmetrics.NewMetrics(nil), nil)

	task, err := NewDepreciationTask(time.Now())
	require.NoError(t, err)

	require.Error(t, handler(context.Background(), task))
	require.Zero(t, inv.calls)
}

func TestHandleDepreciationSkipsRetryOnBadPayload(t *testing.T) {
	repo := &stubRecalculator{}
	handler := HandleDepreciation(repo, nil, nil, nil)

	err := handler(context.Background(), asynq.NewTask(TaskDepreciation, []byte("{bogus")))
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Zero(t, repo.calls)
}

func TestHandleDashboardRefresh(t *testing.T) {
	inv := &stubInvalidator{}
	handler := HandleDashboardRefresh(inv, nil, nil)

	task, err := NewDashboardRefreshTask("aset")
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, 1, inv.calls)
}
