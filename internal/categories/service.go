package categories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// Service handles kategori aset business logic. Mutations take the acting
// user's id explicitly; the service never reads ambient auth state.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.Get(ctx, id)
}

// Exists reports whether a category id refers to a stored category.
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

func (s *Service) Create(ctx context.Context, req CreateCategoryRequest, actorID int64) (*Category, error) {
	existing, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check existing category: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: kode kategori sudah digunakan", httpx.ErrDuplicate)
	}

	category := Category{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		CreatedBy:   actorID,
	}

	id, err := s.repo.Create(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: kode kategori sudah digunakan", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	category.ID = id

	s.recordAudit(ctx, actorID, shared.AuditActionCreate, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCategoryRequest, actorID int64) (*Category, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Code != nil {
		updates["kode_kategori"] = *req.Code
	}
	if req.Name != nil {
		updates["nama_kategori"] = *req.Name
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
			return nil, fmt.Errorf("%w: kode kategori sudah digunakan", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionUpdate, id)
	return s.repo.Get(ctx, id)
}

// Delete removes a category unless subcategories or assets still reference
// it; the conflict carries the specific message shown to the user.
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	subs, err := s.repo.CountSubcategories(ctx, id)
	if err != nil {
		return fmt.Errorf("count subcategories: %w", err)
	}
	if subs > 0 {
		return &httpx.ConflictError{Field: "subkategori", Message: "Kategori masih digunakan oleh subkategori aset"}
	}

	assets, err := s.repo.CountAssets(ctx, id)
	if err != nil {
		return fmt.Errorf("count assets: %w", err)
	}
	if assets > 0 {
		return &httpx.ConflictError{Field: "aset", Message: "Kategori masih digunakan oleh aset"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return &httpx.ConflictError{Field: "aset", Message: "Kategori masih digunakan oleh aset"}
		}
		return fmt.Errorf("delete category: %w", err)
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
		Entity:   "kategori_aset",
		EntityID: strconv.FormatInt(id, 10),
	})
}
