package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/simaset/simaset/internal/admin"
	"github.com/simaset/simaset/internal/assets"
	"github.com/simaset/simaset/internal/auth"
	"github.com/simaset/simaset/internal/categories"
	"github.com/simaset/simaset/internal/custodians"
	"github.com/simaset/simaset/internal/dashboard"
	"github.com/simaset/simaset/internal/detailcategories"
	"github.com/simaset/simaset/internal/disposals"
	"github.com/simaset/simaset/internal/maintenance"
	"github.com/simaset/simaset/internal/observability"
	"github.com/simaset/simaset/internal/shared"
	"github.com/simaset/simaset/internal/subcategories"
	"github.com/simaset/simaset/internal/users"
	"github.com/simaset/simaset/jobs"
	"github.com/simaset/simaset/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler           *auth.Handler
	AdminHandler          *admin.Handler
	CategoryHandler       *categories.Handler
	SubcategoryHandler    *subcategories.Handler
	DetailCategoryHandler *detailcategories.Handler
	CustodianHandler      *custodians.Handler
	AssetHandler          *assets.Handler
	MaintenanceHandler    *maintenance.Handler
	DisposalHandler       *disposals.Handler
	UsersHandler          *users.Handler
	DashboardHandler      *dashboard.Handler
	JobHandler            *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with SIMASET defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.User() == "" {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	if params.AdminHandler != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAuth)
			params.AdminHandler.MountRoutes(r)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireAuth)
		if params.CategoryHandler != nil {
			r.Route("/kategori-aset", params.CategoryHandler.MountRoutes)
		}
		if params.SubcategoryHandler != nil {
			r.Route("/subkategori-aset", params.SubcategoryHandler.MountRoutes)
		}
		if params.DetailCategoryHandler != nil {
			r.Route("/detail-kategori-aset", params.DetailCategoryHandler.MountRoutes)
		}
		if params.CustodianHandler != nil {
			r.Route("/penanggung-jawab", params.CustodianHandler.MountRoutes)
		}
		if params.AssetHandler != nil {
			r.Route("/aset", params.AssetHandler.MountRoutes)
		}
		if params.MaintenanceHandler != nil {
			r.Route("/riwayat-pemeliharaan", params.MaintenanceHandler.MountRoutes)
		}
		if params.DisposalHandler != nil {
			r.Route("/penghapusan", params.DisposalHandler.MountRoutes)
		}
		if params.UsersHandler != nil {
			// Account management is restricted to administrators.
			r.Route("/users", func(r chi.Router) {
				r.Use(RequireRole(users.RoleAdmin))
				params.UsersHandler.MountRoutes(r)
			})
		}
		if params.DashboardHandler != nil {
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		// Static assets skip session and CSRF handling upstream of them.
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with a one hour Cache-Control header.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
