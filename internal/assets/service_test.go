package assets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

type mockRepo struct {
	items       map[int64]*Asset
	nextID      int64
	maintenance map[int64]int
	lastFilter  ListFilter
	lastPage    shared.Pagination
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]*Asset{}, nextID: 1, maintenance: map[int64]int{}}
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter, p shared.Pagination) ([]Asset, int, error) {
	m.lastFilter = filter
	m.lastPage = p
	var out []Asset
	for _, a := range m.items {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Condition != "" && a.Condition != filter.Condition {
			continue
		}
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Asset, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepo) GetByCode(ctx context.Context, code string) (*Asset, error) {
	for _, a := range m.items {
		if a.Code == code {
			copied := *a
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, a Asset) (int64, error) {
	id := m.nextID
	m.nextID++
	a.ID = id
	m.items[id] = &a
	return id, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	a, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["status"]; ok {
		a.Status = v.(string)
	}
	if v, ok := updates["kondisi_fisik"]; ok {
		a.Condition = v.(string)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepo) SetCondition(ctx context.Context, id int64, condition string) error {
	a, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	a.Condition = condition
	return nil
}

func (m *mockRepo) SetStatus(ctx context.Context, id int64, status string, disposed bool) error {
	a, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	a.Status = status
	if disposed {
		now := time.Now()
		a.DisposedAt = &now
	}
	return nil
}

func (m *mockRepo) CountMaintenance(ctx context.Context, id int64) (int, error) {
	return m.maintenance[id], nil
}

func (m *mockRepo) Stats(ctx context.Context) (*Statistics, error) {
	s := &Statistics{}
	for _, a := range m.items {
		s.Total++
		if a.Status == StatusActive {
			s.Active++
		} else {
			s.Inactive++
		}
		s.TotalValue += a.AcquisitionValue
		s.TotalBookValue += a.BookValue
	}
	return s, nil
}

func (m *mockRepo) RecalculateBookValues(ctx context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

type allowAll struct{}

func (allowAll) Exists(ctx context.Context, id int64) (bool, error) { return true, nil }

type denyAll struct{}

func (denyAll) Exists(ctx context.Context, id int64) (bool, error) { return false, nil }

func validCreate() CreateAssetRequest {
	return CreateAssetRequest{
		Code:             "AST-001",
		Name:             "Laptop Dinas",
		CategoryID:       1,
		SubcategoryID:    2,
		Status:           StatusActive,
		Condition:        ConditionGood,
		AcquisitionDate:  "2024-03-15",
		AcquisitionValue: 15_000_000,
		ResidualValue:    1_500_000,
		UsefulLifeMonths: 48,
	}
}

func TestCreateStampsBookValueAndActor(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{}, allowAll{}, nil, 10)

	created, err := svc.Create(context.Background(), validCreate(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(15_000_000), created.BookValue)
	require.Equal(t, int64(7), created.CreatedBy)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), created.AcquisitionDate)
}

func TestCreateRejectsUnknownSubcategory(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, denyAll{}, allowAll{}, nil, 10)

	_, err := svc.Create(context.Background(), validCreate(), 7)
	require.True(t, errors.Is(err, httpx.ErrNotFound))
	require.Empty(t, repo.items)
}

func TestCreateRejectsResidualAboveAcquisition(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{}, allowAll{}, nil, 10)

	req := validCreate()
	req.ResidualValue = 20_000_000
	_, err := svc.Create(context.Background(), req, 7)
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{}, allowAll{}, nil, 10)

	_, err := svc.Create(context.Background(), validCreate(), 7)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreate(), 7)
	require.True(t, errors.Is(err, httpx.ErrDuplicate))
}

func TestListAppliesDefaultPageSize(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{}, allowAll{}, nil, 10)

	_, p, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.PerPage)
	require.Equal(t, 10, repo.lastPage.PerPage)
}

func TestDeleteBlockedByMaintenanceHistory(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{}, allowAll{}, nil, 10)

	created, err := svc.Create(context.Background(), validCreate(), 7)
	require.NoError(t, err)

	repo.maintenance[created.ID] = 2
	err = svc.Delete(context.Background(), created.ID, 7)

	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Aset masih memiliki riwayat pemeliharaan", conflict.Message)
	require.Contains(t, repo.items, created.ID)
}
