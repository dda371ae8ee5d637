package disposals

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// AssetUpdater lets an approved proposal take the asset out of service.
type AssetUpdater interface {
	Exists(ctx context.Context, assetID int64) (bool, error)
	SetStatus(ctx context.Context, assetID int64, status string, disposed bool) error
}

type Service struct {
	repo   RepositoryPort
	assets AssetUpdater
	audit  *shared.AuditLogger
	now    func() time.Time
}

func NewService(repo RepositoryPort, assets AssetUpdater, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, assets: assets, audit: audit, now: time.Now}
}

func (s *Service) List(ctx context.Context, status string) ([]Proposal, error) {
	return s.repo.List(ctx, status)
}

func (s *Service) Get(ctx context.Context, id int64) (*Proposal, error) {
	return s.repo.Get(ctx, id)
}

// Propose opens a new disposal or transfer request. One open proposal per
// asset at a time; transfers must name a recipient.
func (s *Service) Propose(ctx context.Context, req CreateProposalRequest, actorID int64) (*Proposal, error) {
	if req.Type == TypeTransfer && (req.Recipient == nil || *req.Recipient == "") {
		return nil, fmt.Errorf("%w: penerima wajib diisi untuk pemindahtanganan", httpx.ErrValidation)
	}

	if s.assets != nil {
		ok, err := s.assets.Exists(ctx, req.AssetID)
		if err != nil {
			return nil, fmt.Errorf("check asset: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: aset tidak ditemukan", httpx.ErrNotFound)
		}
	}

	open, err := s.repo.HasOpenProposal(ctx, req.AssetID)
	if err != nil {
		return nil, fmt.Errorf("check open proposals: %w", err)
	}
	if open {
		return nil, &httpx.ConflictError{Field: "aset", Message: "Aset sudah memiliki pengajuan yang belum diputuskan"}
	}

	id, err := s.repo.Create(ctx, Proposal{
		AssetID:    req.AssetID,
		Type:       req.Type,
		Reason:     req.Reason,
		Recipient:  req.Recipient,
		Status:     StatusProposed,
		ProposedBy: actorID,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: aset tidak ditemukan", httpx.ErrNotFound)
		}
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionCreate, id)
	return s.repo.Get(ctx, id)
}

// Approve finalises a proposal and deactivates the asset.
func (s *Service) Approve(ctx context.Context, id int64, req DecideProposalRequest, actorID int64) (*Proposal, error) {
	proposal, err := s.decidable(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Decide(ctx, id, StatusApproved, actorID, s.now(), req.Notes); err != nil {
		return nil, fmt.Errorf("approve proposal: %w", err)
	}
	if s.assets != nil {
		disposed := proposal.Type == TypeDisposal
		if err := s.assets.SetStatus(ctx, proposal.AssetID, "tidak_aktif", disposed); err != nil {
			return nil, fmt.Errorf("deactivate asset: %w", err)
		}
	}

	s.recordAudit(ctx, actorID, shared.AuditActionApprove, id)
	return s.repo.Get(ctx, id)
}

// Reject closes a proposal without touching the asset.
func (s *Service) Reject(ctx context.Context, id int64, req DecideProposalRequest, actorID int64) (*Proposal, error) {
	if _, err := s.decidable(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.Decide(ctx, id, StatusRejected, actorID, s.now(), req.Notes); err != nil {
		return nil, fmt.Errorf("reject proposal: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionReject, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) decidable(ctx context.Context, id int64) (*Proposal, error) {
	proposal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal.Status != StatusProposed {
		return nil, &httpx.ConflictError{Field: "status", Message: "Pengajuan sudah diputuskan"}
	}
	return proposal, nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, id int64) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "penghapusan_pemindahtanganan_aset",
		EntityID: strconv.FormatInt(id, 10),
	})
}
