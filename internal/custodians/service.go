package custodians

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) List(ctx context.Context) ([]Custodian, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Custodian, error) {
	return s.repo.Get(ctx, id)
}

// Exists reports whether a custodian id refers to a stored custodian.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, httpx.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Create(ctx context.Context, req CreateCustodianRequest, actorID int64) (*Custodian, error) {
	existing, err := s.repo.GetByNIP(ctx, req.NIP)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check existing custodian: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: NIP sudah terdaftar", httpx.ErrDuplicate)
	}

	id, err := s.repo.Create(ctx, Custodian{
		NIP:       req.NIP,
		Name:      req.Name,
		Position:  req.Position,
		WorkUnit:  req.WorkUnit,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    req.Status,
		CreatedBy: actorID,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: NIP sudah terdaftar", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("create custodian: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionCreate, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustodianRequest, actorID int64) (*Custodian, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.NIP != nil {
		updates["nip"] = *req.NIP
	}
	if req.Name != nil {
		updates["nama"] = *req.Name
	}
	if req.Position != nil {
		updates["jabatan"] = *req.Position
	}
	if req.WorkUnit != nil {
		updates["unit_kerja"] = *req.WorkUnit
	}
	if req.Phone != nil {
		updates["telepon"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: NIP sudah terdaftar", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("update custodian: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionUpdate, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	assets, err := s.repo.CountAssets(ctx, id)
	if err != nil {
		return fmt.Errorf("count assets: %w", err)
	}
	if assets > 0 {
		return &httpx.ConflictError{Field: "aset", Message: "Penanggung jawab masih memegang aset"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return &httpx.ConflictError{Field: "aset", Message: "Penanggung jawab masih memegang aset"}
		}
		return fmt.Errorf("delete custodian: %w", err)
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
		Entity:   "penanggung_jawab_aset",
		EntityID: strconv.FormatInt(id, 10),
	})
}
