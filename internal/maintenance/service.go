package maintenance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// AssetUpdater lets a completed job push the resulting condition back onto
// the asset record.
type AssetUpdater interface {
	Exists(ctx context.Context, assetID int64) (bool, error)
	SetCondition(ctx context.Context, assetID int64, condition string) error
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

func (s *Service) List(ctx context.Context, assetID int64) ([]Record, error) {
	return s.repo.List(ctx, assetID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRecordRequest, actorID int64) (*Record, error) {
	if s.assets != nil {
		ok, err := s.assets.Exists(ctx, req.AssetID)
		if err != nil {
			return nil, fmt.Errorf("check asset: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: aset tidak ditemukan", httpx.ErrNotFound)
		}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: tanggal pemeliharaan tidak valid", httpx.ErrValidation)
	}

	id, err := s.repo.Create(ctx, Record{
		AssetID:     req.AssetID,
		Date:        date,
		Type:        req.Type,
		Description: req.Description,
		Cost:        req.Cost,
		PerformedBy: req.PerformedBy,
		Status:      StatusScheduled,
		CreatedBy:   actorID,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: aset tidak ditemukan", httpx.ErrNotFound)
		}
		return nil, fmt.Errorf("create maintenance record: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionCreate, id)
	return s.repo.Get(ctx, id)
}

// Complete closes a scheduled job and copies the resulting condition onto
// the asset. Completing twice is rejected.
func (s *Service) Complete(ctx context.Context, id int64, req CompleteRecordRequest, actorID int64) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == StatusCompleted {
		return nil, &httpx.ConflictError{Field: "status", Message: "Pemeliharaan sudah diselesaikan"}
	}

	if err := s.repo.Complete(ctx, id, req.ResultCondition, s.now()); err != nil {
		return nil, fmt.Errorf("complete maintenance record: %w", err)
	}
	if s.assets != nil {
		if err := s.assets.SetCondition(ctx, rec.AssetID, req.ResultCondition); err != nil {
			return nil, fmt.Errorf("update asset condition: %w", err)
		}
	}

	s.recordAudit(ctx, actorID, shared.AuditActionComplete, id)
	return s.repo.Get(ctx, id)
}

// Delete removes a record; completed history stays immutable.
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status == StatusCompleted {
		return &httpx.ConflictError{Field: "status", Message: "Riwayat pemeliharaan yang selesai tidak dapat dihapus"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete maintenance record: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionDelete, id)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, id int64) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "riwayat_pemeliharaan",
		EntityID: strconv.FormatInt(id, 10),
	})
}
