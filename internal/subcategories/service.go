package subcategories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// CategoryChecker verifies the parent category exists before a subcategory
// is attached to it.
type CategoryChecker interface {
	Exists(ctx context.Context, categoryID int64) (bool, error)
}

type Service struct {
	repo       RepositoryPort
	categories CategoryChecker
	audit      *shared.AuditLogger
}

func NewService(repo RepositoryPort, categories CategoryChecker, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, categories: categories, audit: audit}
}

func (s *Service) List(ctx context.Context, categoryID int64) ([]Subcategory, error) {
	return s.repo.List(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Subcategory, error) {
	return s.repo.Get(ctx, id)
}

// Exists reports whether a subcategory id refers to a stored subcategory.
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

func (s *Service) Create(ctx context.Context, req CreateSubcategoryRequest, actorID int64) (*Subcategory, error) {
	if s.categories != nil {
		ok, err := s.categories.Exists(ctx, req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("check parent category: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: kategori aset tidak ditemukan", httpx.ErrNotFound)
		}
	}

	existing, err := s.repo.GetByCode(ctx, req.CategoryID, req.Code)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check existing subcategory: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: kode subkategori sudah digunakan", httpx.ErrDuplicate)
	}

	id, err := s.repo.Create(ctx, Subcategory{
		CategoryID:  req.CategoryID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		CreatedBy:   actorID,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: kode subkategori sudah digunakan", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("create subcategory: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionCreate, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSubcategoryRequest, actorID int64) (*Subcategory, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Code != nil {
		updates["kode_subkategori"] = *req.Code
	}
	if req.Name != nil {
		updates["nama_subkategori"] = *req.Name
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
			return nil, fmt.Errorf("%w: kode subkategori sudah digunakan", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("update subcategory: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionUpdate, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	details, err := s.repo.CountDetails(ctx, id)
	if err != nil {
		return fmt.Errorf("count detail categories: %w", err)
	}
	if details > 0 {
		return &httpx.ConflictError{Field: "detail_kategori", Message: "Subkategori masih memiliki detail kategori"}
	}

	assets, err := s.repo.CountAssets(ctx, id)
	if err != nil {
		return fmt.Errorf("count assets: %w", err)
	}
	if assets > 0 {
		return &httpx.ConflictError{Field: "aset", Message: "Subkategori masih digunakan oleh aset"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return &httpx.ConflictError{Field: "aset", Message: "Subkategori masih digunakan oleh aset"}
		}
		return fmt.Errorf("delete subcategory: %w", err)
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
		Entity:   "subkategori_aset",
		EntityID: strconv.FormatInt(id, 10),
	})
}
