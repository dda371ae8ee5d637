// Package admin serves the server-rendered management pages. Every listing
// page is driven by a listview.Controller so filtering, search and
// pagination behave identically across entities.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/simaset/simaset/internal/assets"
	"github.com/simaset/simaset/internal/categories"
	"github.com/simaset/simaset/internal/custodians"
	"github.com/simaset/simaset/internal/dashboard"
	"github.com/simaset/simaset/internal/detailcategories"
	"github.com/simaset/simaset/internal/disposals"
	"github.com/simaset/simaset/internal/listview"
	"github.com/simaset/simaset/internal/maintenance"
	"github.com/simaset/simaset/internal/shared"
	"github.com/simaset/simaset/internal/subcategories"
	"github.com/simaset/simaset/internal/view"
)

// Listing ports. Handlers pull read models through these so pages can be
// tested against stubs.
type (
	CategoryLister interface {
		List(ctx context.Context) ([]categories.Category, error)
	}
	SubcategoryLister interface {
		List(ctx context.Context, categoryID int64) ([]subcategories.Subcategory, error)
	}
	DetailCategoryLister interface {
		List(ctx context.Context, subcategoryID int64) ([]detailcategories.DetailCategory, error)
	}
	CustodianLister interface {
		List(ctx context.Context) ([]custodians.Custodian, error)
	}
	AssetLister interface {
		List(ctx context.Context, filter assets.ListFilter) ([]assets.Asset, shared.Pagination, error)
	}
	MaintenanceLister interface {
		List(ctx context.Context, assetID int64) ([]maintenance.Record, error)
	}
	DisposalLister interface {
		List(ctx context.Context, status string) ([]disposals.Proposal, error)
	}
	SummaryProvider interface {
		Summary(ctx context.Context) (*dashboard.Summary, error)
	}
)

// Handler renders the admin pages.
type Handler struct {
	logger        *slog.Logger
	templates     *view.Engine
	csrfManager   *shared.CSRFManager
	categories    CategoryLister
	subcategories SubcategoryLister
	detailCats    DetailCategoryLister
	custodians    CustodianLister
	assets        AssetLister
	maintenance   MaintenanceLister
	disposals     DisposalLister
	dashboard     SummaryProvider
}

// HandlerParams bundles the dependencies of NewHandler.
type HandlerParams struct {
	Logger        *slog.Logger
	Templates     *view.Engine
	CSRF          *shared.CSRFManager
	Categories    CategoryLister
	Subcategories SubcategoryLister
	DetailCats    DetailCategoryLister
	Custodians    CustodianLister
	Assets        AssetLister
	Maintenance   MaintenanceLister
	Disposals     DisposalLister
	Dashboard     SummaryProvider
}

func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		logger:        p.Logger,
		templates:     p.Templates,
		csrfManager:   p.CSRF,
		categories:    p.Categories,
		subcategories: p.Subcategories,
		detailCats:    p.DetailCats,
		custodians:    p.Custodians,
		assets:        p.Assets,
		maintenance:   p.Maintenance,
		disposals:     p.Disposals,
		dashboard:     p.Dashboard,
	}
}

// MountRoutes registers the admin pages on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
	r.Get("/kategori", h.showCategories)
	r.Get("/subkategori", h.showSubcategories)
	r.Get("/detail-kategori", h.showDetailCategories)
	r.Get("/penanggung-jawab", h.showCustodians)
	r.Get("/aset", h.showAssets)
	r.Get("/pemeliharaan", h.showMaintenance)
	r.Get("/penghapusan", h.showDisposals)
}

// flashNotifier queues listview notifications as session flashes so the
// next render pops them.
type flashNotifier struct {
	sess *shared.Session
}

func (n flashNotifier) Success(msg string) {
	if n.sess != nil {
		n.sess.AddFlash(shared.FlashMessage{Kind: "success", Message: msg})
	}
}

func (n flashNotifier) Error(msg string) {
	if n.sess != nil {
		n.sess.AddFlash(shared.FlashMessage{Kind: "error", Message: msg})
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	var (
		csrfToken string
		flash     *shared.FlashMessage
	)
	if sess != nil {
		if h.csrfManager != nil {
			csrfToken, _ = h.csrfManager.EnsureToken(r.Context(), sess)
		}
		flash = sess.PopFlash()
	}
	err := h.templates.Render(w, name, view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	})
	if err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type dashboardPageData struct {
	Summary *dashboard.Summary
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.logger.Error("load dashboard summary", slog.Any("error", err))
		if sess := shared.SessionFromContext(r.Context()); sess != nil {
			sess.AddFlash(shared.FlashMessage{Kind: "error", Message: "Gagal memuat ringkasan dashboard"})
		}
	}
	h.render(w, r, "pages/dashboard.html", "Dashboard", dashboardPageData{Summary: summary})
}

// filterOption is one choice of an enumerated filter dropdown.
type filterOption struct {
	Value string
	Label string
}

// filterSpec declares one enumerated filter of a listing page.
type filterSpec struct {
	Key     string
	Label   string
	Options []filterOption
}

// filterView is filterSpec plus the currently selected value, for rendering.
type filterView struct {
	Key      string
	Label    string
	Options  []filterOption
	Selected string
}

type rowView struct {
	Cells []string
}

// listPageData is the contract of pages/list.html.
type listPageData struct {
	Heading  string
	BasePath string
	Search   string
	Filters  []filterView
	Loading  bool
	Columns  []string
	Rows     []rowView
	Total    int
	// EmptyMessage distinguishes an empty collection from a filter that
	// matched nothing.
	EmptyMessage string

	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
	PageLinks  []pageLink
}

// pageLink is one numbered pagination link.
type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// listSpec binds a listing page to its entity type: where it lives, which
// filters it exposes and how one entity becomes a table row.
type listSpec[T any] struct {
	Title    string
	Heading  string
	BasePath string
	Filters  []filterSpec
	Columns  []string
	Row      func(T) []string
	// ScopeKeys name the query parameters forwarded into the fetch scope,
	// e.g. the parent id of a scoped listing or the server-side filters of
	// a paged one.
	ScopeKeys []string
	// Paged marks pages backed by a PagedSource, where a clamped page
	// number requires a refetch.
	Paged bool
}

const pageWindow = 5

// renderList drives one GET of a listing page through a fresh controller:
// query parameters become filter, search and page state, the collection is
// loaded, and the visible window is rendered.
func renderList[T any](h *Handler, w http.ResponseWriter, r *http.Request, ctrl *listview.Controller[T], spec listSpec[T]) {
	q := r.URL.Query()

	scope := listview.Scope{}
	for _, key := range spec.ScopeKeys {
		if v := q.Get(key); v != "" && v != listview.NoFilter {
			scope[key] = v
		}
	}

	for _, f := range spec.Filters {
		if v := q.Get(f.Key); v != "" {
			ctrl.SetFilter(f.Key, v)
		}
	}
	ctrl.SetSearch(q.Get("search"))
	requested := 1
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		requested = page
	}
	ctrl.SetPage(requested)

	if err := ctrl.Load(r.Context(), scope); err != nil {
		h.logger.Error("load listing", slog.String("path", spec.BasePath), slog.Any("error", err))
	}
	// A stale ?page= beyond the loaded page count lands on the last page. A
	// server-side source has then fetched past the end and needs a second
	// fetch at the clamped page.
	if clamped := ctrl.Page(); spec.Paged && clamped != requested {
		ctrl.SetPage(clamped)
		if err := ctrl.Load(r.Context(), scope); err != nil {
			h.logger.Error("load listing", slog.String("path", spec.BasePath), slog.Any("error", err))
		}
	}

	filters := make([]filterView, 0, len(spec.Filters))
	for _, f := range spec.Filters {
		filters = append(filters, filterView{
			Key:      f.Key,
			Label:    f.Label,
			Options:  f.Options,
			Selected: ctrl.Filter(f.Key),
		})
	}

	visible := ctrl.VisiblePage()
	rows := make([]rowView, 0, len(visible))
	for _, item := range visible {
		rows = append(rows, rowView{Cells: spec.Row(item)})
	}

	emptyMsg := "Belum ada data"
	if spec.Paged {
		if filterActive(ctrl, spec) {
			emptyMsg = "Tidak ada data yang cocok dengan pencarian"
		}
	} else if len(ctrl.Snapshot()) > 0 {
		emptyMsg = "Tidak ada data yang cocok dengan pencarian"
	}

	current := ctrl.Page()
	numbers := ctrl.PageNumbers(pageWindow)
	links := make([]pageLink, 0, len(numbers))
	for _, n := range numbers {
		links = append(links, pageLink{Number: n, URL: pageURL(spec.BasePath, q, n), Current: n == current})
	}

	data := listPageData{
		Heading:      spec.Heading,
		BasePath:     spec.BasePath,
		Search:       ctrl.Search(),
		Filters:      filters,
		Loading:      ctrl.Loading(),
		Columns:      spec.Columns,
		Rows:         rows,
		Total:        ctrl.Total(),
		EmptyMessage: emptyMsg,
		Page:         current,
		TotalPages:   ctrl.TotalPages(),
		PrevURL:      pageURL(spec.BasePath, q, current-1),
		NextURL:      pageURL(spec.BasePath, q, current+1),
		PageLinks:    links,
	}
	h.render(w, r, "pages/list.html", spec.Title, data)
}

// filterActive reports whether any filter, search term or scope narrows a
// server-paginated listing, where the snapshot alone cannot tell an empty
// collection from an empty result.
func filterActive[T any](ctrl *listview.Controller[T], spec listSpec[T]) bool {
	if ctrl.Search() != "" {
		return true
	}
	for _, f := range spec.Filters {
		if ctrl.Filter(f.Key) != listview.NoFilter {
			return true
		}
	}
	return false
}

// pageURL builds a complete link to one page of the listing, carrying the
// active filters and search term along. Building the whole URL here keeps
// html/template from re-escaping an interpolated query fragment.
func pageURL(basePath string, q url.Values, page int) string {
	sticky := url.Values{}
	for key, vals := range q {
		if key == "page" {
			continue
		}
		for _, v := range vals {
			if v != "" {
				sticky.Add(key, v)
			}
		}
	}
	sticky.Set("page", strconv.Itoa(page))
	return basePath + "?" + sticky.Encode()
}
