package subcategories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simaset/simaset/internal/platform/httpx"
)

type mockRepo struct {
	items   map[int64]*Subcategory
	nextID  int64
	deleted []int64
	details map[int64]int
	assets  map[int64]int
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]*Subcategory{}, nextID: 1, details: map[int64]int{}, assets: map[int64]int{}}
}

func (m *mockRepo) List(ctx context.Context, categoryID int64) ([]Subcategory, error) {
	var out []Subcategory
	for _, s := range m.items {
		if categoryID == 0 || s.CategoryID == categoryID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Subcategory, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockRepo) GetByCode(ctx context.Context, categoryID int64, code string) (*Subcategory, error) {
	for _, s := range m.items {
		if s.CategoryID == categoryID && s.Code == code {
			copied := *s
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, s Subcategory) (int64, error) {
	id := m.nextID
	m.nextID++
	s.ID = id
	m.items[id] = &s
	return id, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	s, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["nama_subkategori"]; ok {
		s.Name = v.(string)
	}
	if v, ok := updates["status"]; ok {
		s.Status = v.(string)
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

func (m *mockRepo) CountDetails(ctx context.Context, id int64) (int, error) {
	return m.details[id], nil
}

func (m *mockRepo) CountAssets(ctx context.Context, id int64) (int, error) {
	return m.assets[id], nil
}

type stubCategories struct{ known map[int64]bool }

func (s stubCategories) Exists(ctx context.Context, id int64) (bool, error) {
	return s.known[id], nil
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, stubCategories{known: map[int64]bool{}}, nil)

	_, err := svc.Create(context.Background(), CreateSubcategoryRequest{
		CategoryID: 9, Code: "SUB-01", Name: "Komputer", Status: "aktif",
	}, 1)

	require.True(t, errors.Is(err, httpx.ErrNotFound))
	require.Empty(t, repo.items)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, stubCategories{known: map[int64]bool{3: true}}, nil)

	_, err := svc.Create(context.Background(), CreateSubcategoryRequest{
		CategoryID: 3, Code: "SUB-01", Name: "Komputer", Status: "aktif",
	}, 1)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateSubcategoryRequest{
		CategoryID: 3, Code: "SUB-01", Name: "Komputer Lain", Status: "aktif",
	}, 1)
	require.True(t, errors.Is(err, httpx.ErrDuplicate))
}

func TestDeleteBlockedWhileChildrenRemain(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, stubCategories{known: map[int64]bool{3: true}}, nil)

	created, err := svc.Create(context.Background(), CreateSubcategoryRequest{
		CategoryID: 3, Code: "SUB-02", Name: "Printer", Status: "aktif",
	}, 1)
	require.NoError(t, err)

	repo.details[created.ID] = 2
	err = svc.Delete(context.Background(), created.ID, 1)

	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Subkategori masih memiliki detail kategori", conflict.Message)

	repo.details[created.ID] = 0
	repo.assets[created.ID] = 1
	err = svc.Delete(context.Background(), created.ID, 1)
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Subkategori masih digunakan oleh aset", conflict.Message)
	require.Empty(t, repo.deleted)
}

func TestExistsDistinguishesMissing(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, stubCategories{known: map[int64]bool{3: true}}, nil)

	created, err := svc.Create(context.Background(), CreateSubcategoryRequest{
		CategoryID: 3, Code: "SUB-03", Name: "Scanner", Status: "aktif",
	}, 1)
	require.NoError(t, err)

	ok, err := svc.Exists(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Exists(context.Background(), created.ID+99)
	require.NoError(t, err)
	require.False(t, ok)
}
