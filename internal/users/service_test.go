package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaset/simaset/internal/platform/httpx"
)

type mockRepo struct {
	items  map[int64]*User
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]*User{}, nextID: 1}
}

func (m *mockRepo) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range m.items {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.items {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, u User) (int64, error) {
	id := m.nextID
	m.nextID++
	u.ID = id
	m.items[id] = &u
	return id, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	u, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["password_hash"]; ok {
		u.PasswordHash = v.(string)
	}
	if v, ok := updates["status"]; ok {
		u.Status = v.(string)
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

func TestCreateHashesPassword(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateUserRequest{
		Name: "Dewi", Email: "dewi@bmn.go.id", Password: "rahasia-123", Role: RoleOfficer, Status: "aktif",
	}, 1)
	require.NoError(t, err)
	require.NotEqual(t, "rahasia-123", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("rahasia-123")))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Name: "Dewi", Email: "dewi@bmn.go.id", Password: "rahasia-123", Role: RoleAdmin, Status: "aktif",
	}, 1)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserRequest{
		Name: "Dewi Dua", Email: "dewi@bmn.go.id", Password: "rahasia-456", Role: RoleOfficer, Status: "aktif",
	}, 1)
	require.True(t, errors.Is(err, httpx.ErrDuplicate))
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateUserRequest{
		Name: "Admin", Email: "admin@bmn.go.id", Password: "rahasia-123", Role: RoleAdmin, Status: "aktif",
	}, 0)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, created.ID)
	require.True(t, errors.Is(err, httpx.ErrForbidden))
	require.Contains(t, repo.items, created.ID)
}
