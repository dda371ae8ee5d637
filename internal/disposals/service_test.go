package disposals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simaset/simaset/internal/platform/httpx"
)

type mockRepo struct {
	items  map[int64]*Proposal
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]*Proposal{}, nextID: 1}
}

func (m *mockRepo) List(ctx context.Context, status string) ([]Proposal, error) {
	var out []Proposal
	for _, p := range m.items {
		if status == "" || p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Proposal, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepo) HasOpenProposal(ctx context.Context, assetID int64) (bool, error) {
	for _, p := range m.items {
		if p.AssetID == assetID && p.Status == StatusProposed {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) Create(ctx context.Context, p Proposal) (int64, error) {
	id := m.nextID
	m.nextID++
	p.ID = id
	m.items[id] = &p
	return id, nil
}

func (m *mockRepo) Decide(ctx context.Context, id int64, status string, decidedBy int64, decidedAt time.Time, notes *string) error {
	p, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	p.Status = status
	p.DecidedBy = &decidedBy
	p.DecidedAt = &decidedAt
	p.Notes = notes
	return nil
}

type mockAssets struct {
	known    map[int64]bool
	statuses map[int64]string
	disposed map[int64]bool
}

func (m *mockAssets) Exists(ctx context.Context, assetID int64) (bool, error) {
	return m.known[assetID], nil
}

func (m *mockAssets) SetStatus(ctx context.Context, assetID int64, status string, disposed bool) error {
	m.statuses[assetID] = status
	m.disposed[assetID] = disposed
	return nil
}

func newService() (*Service, *mockRepo, *mockAssets) {
	repo := newMockRepo()
	assets := &mockAssets{
		known:    map[int64]bool{5: true},
		statuses: map[int64]string{},
		disposed: map[int64]bool{},
	}
	return NewService(repo, assets, nil), repo, assets
}

func TestProposeOpensRequest(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.Propose(context.Background(), CreateProposalRequest{
		AssetID: 5, Type: TypeDisposal, Reason: "Rusak berat tidak ekonomis diperbaiki",
	}, 2)
	require.NoError(t, err)
	require.Equal(t, StatusProposed, created.Status)
	require.Equal(t, int64(2), created.ProposedBy)
}

func TestProposeTransferRequiresRecipient(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Propose(context.Background(), CreateProposalRequest{
		AssetID: 5, Type: TypeTransfer, Reason: "Dipindahkan ke dinas lain",
	}, 2)
	require.True(t, errors.Is(err, httpx.ErrValidation))
	require.Empty(t, repo.items)
}

func TestProposeRejectsSecondOpenProposal(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Propose(context.Background(), CreateProposalRequest{
		AssetID: 5, Type: TypeDisposal, Reason: "Rusak berat",
	}, 2)
	require.NoError(t, err)

	_, err = svc.Propose(context.Background(), CreateProposalRequest{
		AssetID: 5, Type: TypeDisposal, Reason: "Duplikat",
	}, 2)
	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Aset sudah memiliki pengajuan yang belum diputuskan", conflict.Message)
}

func TestApproveDeactivatesAsset(t *testing.T) {
	svc, _, assets := newService()

	created, err := svc.Propose(context.Background(), CreateProposalRequest{
		AssetID: 5, Type: TypeDisposal, Reason: "Rusak berat",
	}, 2)
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), created.ID, DecideProposalRequest{}, 9)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status)
	require.Equal(t, int64(9), *approved.DecidedBy)
	require.Equal(t, "tidak_aktif", assets.statuses[5])
	require.True(t, assets.disposed[5])
}

func TestApproveTransferDoesNotStampDisposal(t *testing.T) {
	svc, _, assets := newService()

	recipient := "Dinas Pendidikan"
	created, err := svc.Propose(context.Background(), CreateProposalRequest{
		AssetID: 5, Type: TypeTransfer, Reason: "Realokasi", Recipient: &recipient,
	}, 2)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, DecideProposalRequest{}, 9)
	require.NoError(t, err)
	require.Equal(t, "tidak_aktif", assets.statuses[5])
	require.False(t, assets.disposed[5])
}

func TestDecideTwiceRejected(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.Propose(context.Background(), CreateProposalRequest{
		AssetID: 5, Type: TypeDisposal, Reason: "Rusak berat",
	}, 2)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), created.ID, DecideProposalRequest{}, 9)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, DecideProposalRequest{}, 9)
	var conflict *httpx.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Pengajuan sudah diputuskan", conflict.Message)
}
