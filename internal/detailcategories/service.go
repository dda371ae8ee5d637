package detailcategories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// SubcategoryChecker verifies the parent subcategory exists before a detail
// category is attached to it.
type SubcategoryChecker interface {
	Exists(ctx context.Context, subcategoryID int64) (bool, error)
}

type Service struct {
	repo          RepositoryPort
	subcategories SubcategoryChecker
	audit         *shared.AuditLogger
}

func NewService(repo RepositoryPort, subcategories SubcategoryChecker, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, subcategories: subcategories, audit: audit}
}

func (s *Service) List(ctx context.Context, subcategoryID int64) ([]DetailCategory, error) {
	return s.repo.List(ctx, subcategoryID)
}

func (s *Service) Get(ctx context.Context, id int64) (*DetailCategory, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateDetailCategoryRequest, actorID int64) (*DetailCategory, error) {
	if s.subcategories != nil {
		ok, err := s.subcategories.Exists(ctx, req.SubcategoryID)
		if err != nil {
			return nil, fmt.Errorf("check parent subcategory: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: subkategori aset tidak ditemukan", httpx.ErrNotFound)
		}
	}

	existing, err := s.repo.GetByCode(ctx, req.SubcategoryID, req.Code)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check existing detail category: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: kode detail sudah digunakan", httpx.ErrDuplicate)
	}

	id, err := s.repo.Create(ctx, DetailCategory{
		SubcategoryID: req.SubcategoryID,
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		Status:        req.Status,
		CreatedBy:     actorID,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: kode detail sudah digunakan", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("create detail category: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionCreate, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateDetailCategoryRequest, actorID int64) (*DetailCategory, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Code != nil {
		updates["kode_detail"] = *req.Code
	}
	if req.Name != nil {
		updates["nama_detail"] = *req.Name
	}
	if req.Description != nil {
		updates["deskripsi"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: kode detail sudah digunakan", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("update detail category: %w", err)
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
		return &httpx.ConflictError{Field: "aset", Message: "Detail kategori masih digunakan oleh aset"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return &httpx.ConflictError{Field: "aset", Message: "Detail kategori masih digunakan oleh aset"}
		}
		return fmt.Errorf("delete detail category: %w", err)
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
		Entity:   "detail_kategori_aset",
		EntityID: strconv.FormatInt(id, 10),
	})
}
