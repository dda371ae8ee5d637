package detailcategories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simaset/simaset/internal/platform/httpx"
)

type mockRepo struct {
	items   map[int64]*DetailCategory
	nextID  int64
	deleted []int64
	assets  map[int64]int
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]*DetailCategory{}, nextID: 1, assets: map[int64]int{}}
}

func (m *mockRepo) List(ctx context.Context, subcategoryID int64) ([]DetailCategory, error) {
	var out []DetailCategory
	for _, d := range m.items {
		if subcategoryID == 0 || d.SubcategoryID == subcategoryID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*DetailCategory, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockRepo) GetByCode(ctx context.Context, subcategoryID int64, code string) (*DetailCategory, error) {
	for _, d := range m.items {
		if d.SubcategoryID == subcategoryID && d.Code == code {
			copied := *d
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, d DetailCategory) (int64, error) {
	id := m.nextID
	m.nextID++
	d.ID = id
	m.items[id] = &d
	return id, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	d, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["nama_detail"]; ok {
		d.Name = v.(string)
	}
	if v, ok := updates["status"]; ok {
		d.Status = v.(string)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) CountAssets(ctx context.Context, id int64) (int, error) {
	return m.assets[id], nil
}

type stubSubcategories struct{ known map[int64]bool }

func (s stubSubcategories) Exists(ctx context.Context, id int64) (bool, error) {
	return s.known[id], nil
}

func TestCreateRejectsUnknownParent(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, stubSubcategories{known: map[int64]bool{}}, nil)

	_, err := svc.Create(context.Background(), CreateDetailCategoryRequest{
		SubcategoryID: 42, Code: "DTL-01", Name: "Laptop", Status: "aktif",
	}, 1)

	require.Error(t, err)
	require.True(t, errors.Is(err, httpx.ErrNotFound))
	require.Empty(t, repo.items)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMockRepo()
	parents := stubSubcategories{known: map[int64]bool{7: true}}
	svc := NewService(repo, parents, nil)

	_, err := svc.Create(context.Background(), CreateDetailCategoryRequest{
		SubcategoryID: 7, Code: "DTL-01", Name: "Laptop", Status: "aktif",
	}, 1)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateDetailCategoryRequest{
		SubcategoryID: 7, Code: "DTL-01", Name: "Laptop Lain", Status: "aktif",
	}, 1)
	require.True(t, errors.Is(err, httpx.ErrDuplicate))
}

func TestDeleteBlockedWhileAssetsRemain(t *testing.T) {
	repo := newMockRepo()
	parents := stubSubcategories{known: map[int64]bool{7: true}}
	svc := NewService(repo, parents, nil)

	created, err := svc.Create(context.Background(), CreateDetailCategoryRequest{
		SubcategoryID: 7, Code: "DTL-02", Name: "Printer", Status: "aktif",
	}, 1)
	require.NoError(t, err)

	repo.assets[created.ID] = 3
	err = svc.Delete(context.Background(), created.ID, 1)

	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Detail kategori masih digunakan oleh aset", conflict.Message)
	require.Empty(t, repo.deleted)
}
