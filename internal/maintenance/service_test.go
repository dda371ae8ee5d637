package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simaset/simaset/internal/platform/httpx"
)

type mockRepo struct {
	items  map[int64]*Record
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]*Record{}, nextID: 1}
}

func (m *mockRepo) List(ctx context.Context, assetID int64) ([]Record, error) {
	var out []Record
	for _, rec := range m.items {
		if assetID == 0 || rec.AssetID == assetID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Record, error) {
	rec, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *mockRepo) Create(ctx context.Context, rec Record) (int64, error) {
	id := m.nextID
	m.nextID++
	rec.ID = id
	m.items[id] = &rec
	return id, nil
}

func (m *mockRepo) Complete(ctx context.Context, id int64, condition string, completedAt time.Time) error {
	rec, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	rec.Status = StatusCompleted
	rec.ResultCondition = &condition
	rec.CompletedAt = &completedAt
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockAssets struct {
	known      map[int64]bool
	conditions map[int64]string
}

func (m *mockAssets) Exists(ctx context.Context, assetID int64) (bool, error) {
	return m.known[assetID], nil
}

func (m *mockAssets) SetCondition(ctx context.Context, assetID int64, condition string) error {
	m.conditions[assetID] = condition
	return nil
}

func newService() (*Service, *mockRepo, *mockAssets) {
	repo := newMockRepo()
	assets := &mockAssets{known: map[int64]bool{5: true}, conditions: map[int64]string{}}
	return NewService(repo, assets, nil), repo, assets
}

func TestCreateStartsScheduled(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.Create(context.Background(), CreateRecordRequest{
		AssetID: 5, Date: "2025-06-10", Type: TypeRepair,
		Description: "Ganti baterai", Cost: 250_000, PerformedBy: "CV Mitra Teknik",
	}, 3)
	require.NoError(t, err)
	require.Equal(t, StatusScheduled, created.Status)
	require.Nil(t, created.ResultCondition)
}

func TestCreateRejectsUnknownAsset(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Create(context.Background(), CreateRecordRequest{
		AssetID: 99, Date: "2025-06-10", Type: TypeRoutine,
		Description: "Servis berkala", PerformedBy: "Tim Internal",
	}, 3)
	require.True(t, errors.Is(err, httpx.ErrNotFound))
	require.Empty(t, repo.items)
}

func TestCompleteUpdatesAssetCondition(t *testing.T) {
	svc, _, assets := newService()

	created, err := svc.Create(context.Background(), CreateRecordRequest{
		AssetID: 5, Date: "2025-06-10", Type: TypeRepair,
		Description: "Perbaikan layar", Cost: 1_200_000, PerformedBy: "CV Mitra Teknik",
	}, 3)
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), created.ID, CompleteRecordRequest{ResultCondition: "baik"}, 3)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, completed.Status)
	require.Equal(t, "baik", assets.conditions[5])
	require.NotNil(t, completed.CompletedAt)
}

func TestCompleteTwiceRejected(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.Create(context.Background(), CreateRecordRequest{
		AssetID: 5, Date: "2025-06-10", Type: TypeRoutine,
		Description: "Servis berkala", PerformedBy: "Tim Internal",
	}, 3)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), created.ID, CompleteRecordRequest{ResultCondition: "baik"}, 3)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), created.ID, CompleteRecordRequest{ResultCondition: "rusak_ringan"}, 3)
	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Pemeliharaan sudah diselesaikan", conflict.Message)
}

func TestDeleteCompletedRejected(t *testing.T) {
	svc, repo, _ := newService()

	created, err := svc.Create(context.Background(), CreateRecordRequest{
		AssetID: 5, Date: "2025-06-10", Type: TypeRoutine,
		Description: "Servis berkala", PerformedBy: "Tim Internal",
	}, 3)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), created.ID, CompleteRecordRequest{ResultCondition: "baik"}, 3)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, 3)
	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Contains(t, repo.items, created.ID)
}
