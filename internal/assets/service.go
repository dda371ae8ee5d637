package assets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// ReferenceChecker verifies that an id refers to a stored record in one of
// the classification tables.
type ReferenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service handles aset business logic.
type Service struct {
	repo          RepositoryPort
	subcategories ReferenceChecker
	custodians    ReferenceChecker
	audit         *shared.AuditLogger
	defaultPage   int
}

func NewService(repo RepositoryPort, subcategories, custodians ReferenceChecker, audit *shared.AuditLogger, defaultPerPage int) *Service {
	if defaultPerPage <= 0 {
		defaultPerPage = 10
	}
	return &Service{
		repo:          repo,
		subcategories: subcategories,
		custodians:    custodians,
		audit:         audit,
		defaultPage:   defaultPerPage,
	}
}

// List returns one server-side page with its pagination metadata.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Asset, shared.Pagination, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = s.defaultPage
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	p := shared.NewPagination(filter.Page, filter.PerPage, 0)
	items, total, err := s.repo.List(ctx, filter, p)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Asset, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*Statistics, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateAssetRequest, actorID int64) (*Asset, error) {
	existing, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check existing asset: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: kode aset sudah digunakan", httpx.ErrDuplicate)
	}

	if err := s.checkReferences(ctx, req.SubcategoryID, req.CustodianID); err != nil {
		return nil, err
	}

	acquired, err := parseAcquisitionDate(req.AcquisitionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: tanggal perolehan tidak valid", httpx.ErrValidation)
	}
	if req.ResidualValue > req.AcquisitionValue {
		return nil, fmt.Errorf("%w: nilai residu melebihi nilai perolehan", httpx.ErrValidation)
	}

	asset := Asset{
		Code:             req.Code,
		Name:             req.Name,
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		DetailCategoryID: req.DetailCategoryID,
		CustodianID:      req.CustodianID,
		Status:           req.Status,
		Condition:        req.Condition,
		AcquisitionDate:  acquired,
		AcquisitionValue: req.AcquisitionValue,
		ResidualValue:    req.ResidualValue,
		UsefulLifeMonths: req.UsefulLifeMonths,
		BookValue:        req.AcquisitionValue,
		Location:         req.Location,
		Description:      req.Description,
		CreatedBy:        actorID,
	}

	id, err := s.repo.Create(ctx, asset)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: kode aset sudah digunakan", httpx.ErrDuplicate)
		}
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: referensi kategori atau penanggung jawab tidak valid", httpx.ErrValidation)
		}
		return nil, fmt.Errorf("create asset: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionCreate, id)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateAssetRequest, actorID int64) (*Asset, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Code != nil {
		updates["kode_aset"] = *req.Code
	}
	if req.Name != nil {
		updates["nama_aset"] = *req.Name
	}
	if req.CategoryID != nil {
		updates["kategori_aset_id"] = *req.CategoryID
	}
	if req.SubcategoryID != nil {
		ok, err := s.refExists(ctx, s.subcategories, *req.SubcategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: subkategori aset tidak ditemukan", httpx.ErrNotFound)
		}
		updates["subkategori_aset_id"] = *req.SubcategoryID
	}
	if req.DetailCategoryID != nil {
		updates["detail_kategori_aset_id"] = *req.DetailCategoryID
	}
	if req.CustodianID != nil {
		ok, err := s.refExists(ctx, s.custodians, *req.CustodianID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: penanggung jawab tidak ditemukan", httpx.ErrNotFound)
		}
		updates["penanggung_jawab_id"] = *req.CustodianID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Condition != nil {
		updates["kondisi_fisik"] = *req.Condition
	}
	if req.AcquisitionDate != nil {
		acquired, err := parseAcquisitionDate(*req.AcquisitionDate)
		if err != nil {
			return nil, fmt.Errorf("%w: tanggal perolehan tidak valid", httpx.ErrValidation)
		}
		updates["tanggal_perolehan"] = acquired
	}
	if req.AcquisitionValue != nil {
		updates["nilai_perolehan"] = *req.AcquisitionValue
	}
	if req.ResidualValue != nil {
		updates["nilai_residu"] = *req.ResidualValue
	}
	if req.UsefulLifeMonths != nil {
		updates["umur_manfaat_bulan"] = *req.UsefulLifeMonths
	}
	if req.Location != nil {
		updates["lokasi"] = *req.Location
	}
	if req.Description != nil {
		updates["deskripsi"] = *req.Description
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: kode aset sudah digunakan", httpx.ErrDuplicate)
		}
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: referensi kategori atau penanggung jawab tidak valid", httpx.ErrValidation)
		}
		return nil, fmt.Errorf("update asset: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionUpdate, id)
	return s.repo.Get(ctx, id)
}

// Delete removes an asset unless maintenance history still references it.
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	history, err := s.repo.CountMaintenance(ctx, id)
	if err != nil {
		return fmt.Errorf("count maintenance: %w", err)
	}
	if history > 0 {
		return &httpx.ConflictError{Field: "riwayat_pemeliharaan", Message: "Aset masih memiliki riwayat pemeliharaan"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return &httpx.ConflictError{Field: "riwayat_pemeliharaan", Message: "Aset masih memiliki riwayat pemeliharaan"}
		}
		return fmt.Errorf("delete asset: %w", err)
	}

	s.recordAudit(ctx, actorID, shared.AuditActionDelete, id)
	return nil
}

// SetCondition is invoked by the maintenance module after a completed job.
func (s *Service) SetCondition(ctx context.Context, id int64, condition string) error {
	return s.repo.SetCondition(ctx, id, condition)
}

// SetStatus is invoked by the disposal module after an approved proposal.
func (s *Service) SetStatus(ctx context.Context, id int64, status string, disposed bool) error {
	return s.repo.SetStatus(ctx, id, status, disposed)
}

// Exists reports whether an asset id refers to a stored asset.
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

func (s *Service) checkReferences(ctx context.Context, subcategoryID int64, custodianID *int64) error {
	ok, err := s.refExists(ctx, s.subcategories, subcategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: subkategori aset tidak ditemukan", httpx.ErrNotFound)
	}
	if custodianID != nil {
		ok, err := s.refExists(ctx, s.custodians, *custodianID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: penanggung jawab tidak ditemukan", httpx.ErrNotFound)
		}
	}
	return nil
}

func (s *Service) refExists(ctx context.Context, checker ReferenceChecker, id int64) (bool, error) {
	if checker == nil {
		return true, nil
	}
	return checker.Exists(ctx, id)
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, id int64) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "aset",
		EntityID: strconv.FormatInt(id, 10),
	})
}
