package admin_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/simaset/simaset/internal/admin"
	"github.com/simaset/simaset/internal/assets"
	"github.com/simaset/simaset/internal/categories"
	"github.com/simaset/simaset/internal/dashboard"
	"github.com/simaset/simaset/internal/shared"
	"github.com/simaset/simaset/internal/view"
	_ "github.com/simaset/simaset/testing"
)

type stubCategories struct {
	items []categories.Category
}

func (s *stubCategories) List(ctx context.Context) ([]categories.Category, error) {
	return s.items, nil
}

type stubAssets struct {
	gotFilter assets.ListFilter
	items     []assets.Asset
	page      shared.Pagination
}

func (s *stubAssets) List(ctx context.Context, filter assets.ListFilter) ([]assets.Asset, shared.Pagination, error) {
	s.gotFilter = filter
	return s.items, s.page, nil
}

type stubDashboard struct {
	summary *dashboard.Summary
}

func (s *stubDashboard) Summary(ctx context.Context) (*dashboard.Summary, error) {
	return s.summary, nil
}

func newTestRouter(t *testing.T, p admin.HandlerParams) chi.Router {
	t.Helper()
	engine, err := view.NewEngine()
	require.NoError(t, err)
	p.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	p.Templates = engine
	r := chi.NewRouter()
	admin.NewHandler(p).MountRoutes(r)
	return r
}

func getPage(t *testing.T, r chi.Router, target string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func category(id int64, code, name, status string) categories.Category {
	return categories.Category{ID: id, Code: code, Name: name, Status: status}
}

func TestCategoriesPageRendersRows(t *testing.T) {
	r := newTestRouter(t, admin.HandlerParams{
		Categories: &stubCategories{items: []categories.Category{
			category(1, "KTG001", "Elektronik", "aktif"),
			category(2, "KTG002", "Meubelair", "tidak_aktif"),
		}},
	})

	body := getPage(t, r, "/kategori")
	require.Contains(t, body, "Elektronik")
	require.Contains(t, body, "Meubelair")
	require.Contains(t, body, "Total: 2")
}

func TestCategoriesPageStatusFilter(t *testing.T) {
	stub := &stubCategories{items: []categories.Category{
		category(1, "KTG001", "Elektronik", "aktif"),
		category(2, "KTG002", "Meubelair", "tidak_aktif"),
	}}
	r := newTestRouter(t, admin.HandlerParams{Categories: stub})

	body := getPage(t, r, "/kategori?status=aktif")
	require.Contains(t, body, "Elektronik")
	require.NotContains(t, body, "Meubelair")
	require.Contains(t, body, "Total: 1")

	// The sentinel option disables the filter again.
	body = getPage(t, r, "/kategori?status=-")
	require.Contains(t, body, "Meubelair")
}

func TestCategoriesPageSearch(t *testing.T) {
	stub := &stubCategories{items: []categories.Category{
		category(1, "KTG001", "Elektronik", "aktif"),
		category(2, "KTG002", "Kendaraan Dinas", "aktif"),
	}}
	r := newTestRouter(t, admin.HandlerParams{Categories: stub})

	body := getPage(t, r, "/kategori?search=kendaraan")
	require.NotContains(t, body, "Elektronik")
	require.Contains(t, body, "Kendaraan Dinas")
}

func TestCategoriesPagePagination(t *testing.T) {
	items := make([]categories.Category, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, category(int64(i+1), "KTG00"+string(rune('1'+i)), "Peralatan "+string(rune('A'+i)), "aktif"))
	}
	r := newTestRouter(t, admin.HandlerParams{Categories: &stubCategories{items: items}})

	body := getPage(t, r, "/kategori?page=2")
	require.NotContains(t, body, "Peralatan A")
	require.Contains(t, body, "Peralatan F")
	require.Contains(t, body, "Peralatan G")

	// Out-of-range pages clamp to the last window instead of rendering empty.
	body = getPage(t, r, "/kategori?page=9")
	require.Contains(t, body, "Peralatan G")
}

func TestCategoriesPaginationLinksKeepFilters(t *testing.T) {
	items := make([]categories.Category, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, category(int64(i+1), "KTG00"+string(rune('1'+i)), "Peralatan "+string(rune('A'+i)), "aktif"))
	}
	r := newTestRouter(t, admin.HandlerParams{Categories: &stubCategories{items: items}})

	body := getPage(t, r, "/kategori?status=aktif")
	require.Contains(t, body, `href="/admin/kategori?page=2&amp;status=aktif"`)
	require.NotContains(t, body, "status%3daktif")
}

func TestEmptyStatesAreDistinct(t *testing.T) {
	r := newTestRouter(t, admin.HandlerParams{Categories: &stubCategories{}})
	body := getPage(t, r, "/kategori")
	require.Contains(t, body, "Belum ada data")

	r = newTestRouter(t, admin.HandlerParams{Categories: &stubCategories{items: []categories.Category{
		category(1, "KTG001", "Elektronik", "aktif"),
	}}})
	body = getPage(t, r, "/kategori?search=tidak-cocok")
	require.Contains(t, body, "Tidak ada data yang cocok dengan pencarian")
}

func TestAssetsPageForwardsServerFilters(t *testing.T) {
	stub := &stubAssets{
		items: []assets.Asset{{
			ID: 1, Code: "AST001", Name: "Printer Epson", CategoryName: "Elektronik",
			Status: assets.StatusActive, Condition: assets.ConditionGood, BookValue: 1250000,
		}},
		page: shared.Pagination{Page: 2, PerPage: 10, Total: 25, TotalPages: 3},
	}
	r := newTestRouter(t, admin.HandlerParams{Assets: stub})

	body := getPage(t, r, "/aset?page=2&status=aktif&search=printer")
	require.Equal(t, assets.ListFilter{Status: "aktif", Search: "printer", Page: 2, PerPage: 10}, stub.gotFilter)
	require.Contains(t, body, "Printer Epson")
	require.Contains(t, body, "Rp 1.250.000")
	require.Contains(t, body, "Total: 25")
	require.Contains(t, body, "page=3")
}

func TestDashboardPage(t *testing.T) {
	r := newTestRouter(t, admin.HandlerParams{
		Dashboard: &stubDashboard{summary: &dashboard.Summary{
			Stats: &assets.Statistics{Total: 12, Active: 10, ConditionHeavy: 1, TotalBookValue: 750000},
			PerCategory: []dashboard.CategoryCount{
				{CategoryID: 1, Name: "Elektronik", Count: 8},
			},
		}},
	})

	body := getPage(t, r, "/")
	require.Contains(t, body, "Total Aset")
	require.Contains(t, body, "Elektronik")
	require.Contains(t, body, "Rp 750.000")
}
