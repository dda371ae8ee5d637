package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaset/simaset/internal/platform/httpx"
)

type mockRepo struct {
	byID    map[int64]Category
	byCode  map[string]Category
	nextID  int64
	updates map[string]any
	deleted []int64
	subs    int
	assets  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: map[int64]Category{}, byCode: map[string]Category{}, nextID: 1}
}

func (m *mockRepo) List(ctx context.Context) ([]Category, error) {
	var out []Category
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &c, nil
}

func (m *mockRepo) GetByCode(ctx context.Context, code string) (*Category, error) {
	c, ok := m.byCode[code]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &c, nil
}

func (m *mockRepo) Create(ctx context.Context, c Category) (int64, error) {
	c.ID = m.nextID
	m.nextID++
	m.byID[c.ID] = c
	m.byCode[c.Code] = c
	return c.ID, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	m.updates = updates
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) CountSubcategories(ctx context.Context, id int64) (int, error) {
	return m.subs, nil
}

func (m *mockRepo) CountAssets(ctx context.Context, id int64) (int, error) {
	return m.assets, nil
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateCategoryRequest{
		Code: "KAT-001", Name: "Tanah", Status: StatusActive,
	}, 7)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCategoryRequest{
		Code: "KAT-001", Name: "Duplikat", Status: StatusActive,
	}, 7)
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateStampsActor(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateCategoryRequest{
		Code: "KAT-002", Name: "Gedung", Status: StatusActive,
	}, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.CreatedBy)
}

func TestUpdateOnlyTouchesProvidedFields(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateCategoryRequest{
		Code: "KAT-003", Name: "Kendaraan", Status: StatusActive,
	}, 1)
	require.NoError(t, err)

	name := "Kendaraan Dinas"
	_, err = svc.Update(context.Background(), created.ID, UpdateCategoryRequest{Name: &name}, 1)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"nama_kategori": "Kendaraan Dinas"}, repo.updates)
}

func TestDeleteConflictsWhenSubcategoriesExist(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateCategoryRequest{
		Code: "KAT-004", Name: "Peralatan", Status: StatusActive,
	}, 1)
	require.NoError(t, err)

	repo.subs = 3
	err = svc.Delete(context.Background(), created.ID, 1)
	require.Error(t, err)

	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Kategori masih digunakan oleh subkategori aset", conflict.Message)
	assert.Empty(t, repo.deleted, "conflicting delete must not reach the repository")
}

func TestDeleteRemovesUnreferencedCategory(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateCategoryRequest{
		Code: "KAT-005", Name: "Mesin", Status: StatusInactive,
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, 1))
	assert.Equal(t, []int64{created.ID}, repo.deleted)
}
