package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/simaset/simaset/internal/assets"
	"github.com/simaset/simaset/internal/categories"
	"github.com/simaset/simaset/internal/custodians"
	"github.com/simaset/simaset/internal/detailcategories"
	"github.com/simaset/simaset/internal/disposals"
	"github.com/simaset/simaset/internal/listview"
	"github.com/simaset/simaset/internal/maintenance"
	"github.com/simaset/simaset/internal/shared"
	"github.com/simaset/simaset/internal/subcategories"
)

var statusFilter = filterSpec{
	Key:   "status",
	Label: "Semua Status",
	Options: []filterOption{
		{Value: "aktif", Label: "Aktif"},
		{Value: "tidak_aktif", Label: "Tidak Aktif"},
	},
}

func (h *Handler) notifier(r *http.Request) listview.Notifier {
	return flashNotifier{sess: shared.SessionFromContext(r.Context())}
}

func (h *Handler) showCategories(w http.ResponseWriter, r *http.Request) {
	ctrl := listview.New(listview.Config[categories.Category]{
		Source: func(ctx context.Context, _ listview.Scope) ([]categories.Category, error) {
			return h.categories.List(ctx)
		},
		Fields: map[string]func(categories.Category) string{
			"status": func(c categories.Category) string { return c.Status },
		},
		SearchFields: func(c categories.Category) []string {
			return []string{c.Code, c.Name, deref(c.Description)}
		},
		Notifier: h.notifier(r),
	})
	renderList(h, w, r, ctrl, listSpec[categories.Category]{
		Title:    "Kategori Aset",
		Heading:  "Kategori Aset",
		BasePath: "/admin/kategori",
		Filters:  []filterSpec{statusFilter},
		Columns:  []string{"Kode", "Nama", "Deskripsi", "Status"},
		Row: func(c categories.Category) []string {
			return []string{c.Code, c.Name, deref(c.Description), statusLabel(c.Status)}
		},
	})
}

func (h *Handler) showSubcategories(w http.ResponseWriter, r *http.Request) {
	ctrl := listview.New(listview.Config[subcategories.Subcategory]{
		Source: func(ctx context.Context, scope listview.Scope) ([]subcategories.Subcategory, error) {
			return h.subcategories.List(ctx, scopeID(scope, "kategori_aset_id"))
		},
		Fields: map[string]func(subcategories.Subcategory) string{
			"status": func(s subcategories.Subcategory) string { return s.Status },
		},
		SearchFields: func(s subcategories.Subcategory) []string {
			fields := []string{s.Code, s.Name}
			if s.Category != nil {
				fields = append(fields, s.Category.Name)
			}
			return fields
		},
		Notifier: h.notifier(r),
	})
	renderList(h, w, r, ctrl, listSpec[subcategories.Subcategory]{
		Title:     "Subkategori Aset",
		Heading:   "Subkategori Aset",
		BasePath:  "/admin/subkategori",
		Filters:   []filterSpec{statusFilter},
		Columns:   []string{"Kode", "Nama", "Kategori", "Status"},
		ScopeKeys: []string{"kategori_aset_id"},
		Row: func(s subcategories.Subcategory) []string {
			parent := ""
			if s.Category != nil {
				parent = s.Category.Name
			}
			return []string{s.Code, s.Name, parent, statusLabel(s.Status)}
		},
	})
}

func (h *Handler) showDetailCategories(w http.ResponseWriter, r *http.Request) {
	ctrl := listview.New(listview.Config[detailcategories.DetailCategory]{
		Source: func(ctx context.Context, scope listview.Scope) ([]detailcategories.DetailCategory, error) {
			return h.detailCats.List(ctx, scopeID(scope, "subkategori_aset_id"))
		},
		Fields: map[string]func(detailcategories.DetailCategory) string{
			"status": func(d detailcategories.DetailCategory) string { return d.Status },
		},
		SearchFields: func(d detailcategories.DetailCategory) []string {
			fields := []string{d.Code, d.Name}
			if d.Subcategory != nil {
				fields = append(fields, d.Subcategory.Name, d.Subcategory.CategoryName)
			}
			return fields
		},
		Notifier: h.notifier(r),
	})
	renderList(h, w, r, ctrl, listSpec[detailcategories.DetailCategory]{
		Title:     "Detail Kategori Aset",
		Heading:   "Detail Kategori Aset",
		BasePath:  "/admin/detail-kategori",
		Filters:   []filterSpec{statusFilter},
		Columns:   []string{"Kode", "Nama", "Subkategori", "Kategori", "Status"},
		ScopeKeys: []string{"subkategori_aset_id"},
		Row: func(d detailcategories.DetailCategory) []string {
			sub, cat := "", ""
			if d.Subcategory != nil {
				sub, cat = d.Subcategory.Name, d.Subcategory.CategoryName
			}
			return []string{d.Code, d.Name, sub, cat, statusLabel(d.Status)}
		},
	})
}

func (h *Handler) showCustodians(w http.ResponseWriter, r *http.Request) {
	ctrl := listview.New(listview.Config[custodians.Custodian]{
		Source: func(ctx context.Context, _ listview.Scope) ([]custodians.Custodian, error) {
			return h.custodians.List(ctx)
		},
		Fields: map[string]func(custodians.Custodian) string{
			"status": func(c custodians.Custodian) string { return c.Status },
		},
		SearchFields: func(c custodians.Custodian) []string {
			return []string{c.NIP, c.Name, c.Position, c.WorkUnit}
		},
		Notifier: h.notifier(r),
	})
	renderList(h, w, r, ctrl, listSpec[custodians.Custodian]{
		Title:    "Penanggung Jawab",
		Heading:  "Penanggung Jawab Aset",
		BasePath: "/admin/penanggung-jawab",
		Filters:  []filterSpec{statusFilter},
		Columns:  []string{"NIP", "Nama", "Jabatan", "Unit Kerja", "Jumlah Aset", "Status"},
		Row: func(c custodians.Custodian) []string {
			return []string{c.NIP, c.Name, c.Position, c.WorkUnit, strconv.Itoa(c.AssetCount), statusLabel(c.Status)}
		},
	})
}

func (h *Handler) showAssets(w http.ResponseWriter, r *http.Request) {
	ctrl := listview.New(listview.Config[assets.Asset]{
		PagedSource: func(ctx context.Context, scope listview.Scope, page, perPage int) (listview.Page[assets.Asset], error) {
			filter := assets.ListFilter{
				Status:     scope["status"],
				Condition:  scope["kondisi_fisik"],
				CategoryID: scopeID(scope, "kategori_aset_id"),
				Search:     scope["search"],
				Page:       page,
				PerPage:    perPage,
			}
			items, pg, err := h.assets.List(ctx, filter)
			if err != nil {
				return listview.Page[assets.Asset]{}, err
			}
			return listview.Page[assets.Asset]{
				Items:       items,
				CurrentPage: pg.Page,
				PerPage:     pg.PerPage,
				Total:       pg.Total,
				LastPage:    pg.TotalPages,
			}, nil
		},
		PageSize: 10,
		Notifier: h.notifier(r),
	})
	renderList(h, w, r, ctrl, listSpec[assets.Asset]{
		Title:    "Aset",
		Heading:  "Daftar Aset",
		BasePath: "/admin/aset",
		Filters: []filterSpec{
			statusFilter,
			{
				Key:   "kondisi_fisik",
				Label: "Semua Kondisi",
				Options: []filterOption{
					{Value: assets.ConditionGood, Label: "Baik"},
					{Value: assets.ConditionLightDamage, Label: "Rusak Ringan"},
					{Value: assets.ConditionHeavyDamage, Label: "Rusak Berat"},
				},
			},
		},
		Columns:   []string{"Kode", "Nama", "Kategori", "Kondisi", "Nilai Buku", "Status"},
		ScopeKeys: []string{"status", "kondisi_fisik", "kategori_aset_id", "search"},
		Paged:     true,
		Row: func(a assets.Asset) []string {
			return []string{a.Code, a.Name, a.CategoryName, conditionLabel(a.Condition), rupiah(a.BookValue), statusLabel(a.Status)}
		},
	})
}

func (h *Handler) showMaintenance(w http.ResponseWriter, r *http.Request) {
	ctrl := listview.New(listview.Config[maintenance.Record]{
		Source: func(ctx context.Context, scope listview.Scope) ([]maintenance.Record, error) {
			return h.maintenance.List(ctx, scopeID(scope, "aset_id"))
		},
		Fields: map[string]func(maintenance.Record) string{
			"status":             func(m maintenance.Record) string { return m.Status },
			"jenis_pemeliharaan": func(m maintenance.Record) string { return m.Type },
		},
		SearchFields: func(m maintenance.Record) []string {
			return []string{m.AssetCode, m.AssetName, m.PerformedBy, m.Description}
		},
		Notifier: h.notifier(r),
	})
	renderList(h, w, r, ctrl, listSpec[maintenance.Record]{
		Title:    "Pemeliharaan",
		Heading:  "Riwayat Pemeliharaan",
		BasePath: "/admin/pemeliharaan",
		Filters: []filterSpec{
			{
				Key:   "status",
				Label: "Semua Status",
				Options: []filterOption{
					{Value: maintenance.StatusScheduled, Label: "Dijadwalkan"},
					{Value: maintenance.StatusCompleted, Label: "Selesai"},
				},
			},
			{
				Key:   "jenis_pemeliharaan",
				Label: "Semua Jenis",
				Options: []filterOption{
					{Value: maintenance.TypeRoutine, Label: "Rutin"},
					{Value: maintenance.TypeRepair, Label: "Perbaikan"},
				},
			},
		},
		Columns:   []string{"Aset", "Tanggal", "Jenis", "Pelaksana", "Biaya", "Status"},
		ScopeKeys: []string{"aset_id"},
		Row: func(m maintenance.Record) []string {
			return []string{
				m.AssetCode + " " + m.AssetName,
				m.Date.Format("02-01-2006"),
				maintenanceTypeLabel(m.Type),
				m.PerformedBy,
				rupiah(m.Cost),
				maintenanceStatusLabel(m.Status),
			}
		},
	})
}

func (h *Handler) showDisposals(w http.ResponseWriter, r *http.Request) {
	ctrl := listview.New(listview.Config[disposals.Proposal]{
		Source: func(ctx context.Context, _ listview.Scope) ([]disposals.Proposal, error) {
			return h.disposals.List(ctx, "")
		},
		Fields: map[string]func(disposals.Proposal) string{
			"status": func(p disposals.Proposal) string { return p.Status },
			"jenis":  func(p disposals.Proposal) string { return p.Type },
		},
		SearchFields: func(p disposals.Proposal) []string {
			return []string{p.AssetCode, p.AssetName, p.Reason, deref(p.Recipient)}
		},
		Notifier: h.notifier(r),
	})
	renderList(h, w, r, ctrl, listSpec[disposals.Proposal]{
		Title:    "Penghapusan",
		Heading:  "Penghapusan dan Pemindahtanganan",
		BasePath: "/admin/penghapusan",
		Filters: []filterSpec{
			{
				Key:   "status",
				Label: "Semua Status",
				Options: []filterOption{
					{Value: disposals.StatusProposed, Label: "Diajukan"},
					{Value: disposals.StatusApproved, Label: "Disetujui"},
					{Value: disposals.StatusRejected, Label: "Ditolak"},
				},
			},
			{
				Key:   "jenis",
				Label: "Semua Jenis",
				Options: []filterOption{
					{Value: disposals.TypeDisposal, Label: "Penghapusan"},
					{Value: disposals.TypeTransfer, Label: "Pemindahtanganan"},
				},
			},
		},
		Columns: []string{"Aset", "Jenis", "Alasan", "Penerima", "Diputuskan", "Status"},
		Row: func(p disposals.Proposal) []string {
			decided := ""
			if p.DecidedAt != nil {
				decided = p.DecidedAt.Format("02-01-2006")
			}
			return []string{
				p.AssetCode + " " + p.AssetName,
				disposalTypeLabel(p.Type),
				p.Reason,
				deref(p.Recipient),
				decided,
				disposalStatusLabel(p.Status),
			}
		},
	})
}

func scopeID(scope listview.Scope, key string) int64 {
	id, err := strconv.ParseInt(scope[key], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rupiah(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "Rp " + sign + b.String()
}

func statusLabel(status string) string {
	if status == "aktif" {
		return "Aktif"
	}
	return "Tidak Aktif"
}

func conditionLabel(condition string) string {
	switch condition {
	case assets.ConditionGood:
		return "Baik"
	case assets.ConditionLightDamage:
		return "Rusak Ringan"
	default:
		return "Rusak Berat"
	}
}

func maintenanceTypeLabel(t string) string {
	if t == maintenance.TypeRoutine {
		return "Rutin"
	}
	return "Perbaikan"
}

func maintenanceStatusLabel(status string) string {
	if status == maintenance.StatusCompleted {
		return "Selesai"
	}
	return "Dijadwalkan"
}

func disposalTypeLabel(t string) string {
	if t == disposals.TypeTransfer {
		return "Pemindahtanganan"
	}
	return "Penghapusan"
}

func disposalStatusLabel(status string) string {
	switch status {
	case disposals.StatusApproved:
		return "Disetujui"
	case disposals.StatusRejected:
		return "Ditolak"
	default:
		return "Diajukan"
	}
}
