package assets

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	events  shared.ChangePublisher
}

func NewHandler(logger *slog.Logger, service *Service, events shared.ChangePublisher) *Handler {
	if events == nil {
		events = shared.NopChangePublisher{}
	}
	return &Handler{logger: logger, service: service, events: events}
}

// List serves the server-paginated asset listing. All filters combine
// conjunctively and search matches code, name and location.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status:    q.Get("status"),
		Condition: q.Get("kondisi_fisik"),
		Search:    q.Get("search"),
	}
	if raw := q.Get("kategori_aset_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httpx.Message(w, http.StatusBadRequest, "ID kategori tidak valid")
			return
		}
		filter.CategoryID = id
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	items, p, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list assets failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Asset{}
	}
	httpx.Paginated(w, http.StatusOK, items, p.Page, p.PerPage, p.Total, p.TotalPages)
}

// Statistics serves the dashboard summary aggregates.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("asset statistics failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, stats)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID aset tidak valid")
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondValidationError(w, err)
		return
	}

	item, err := h.service.Create(r.Context(), req, shared.ActorID(r.Context()))
	if err != nil {
		h.logger.Error("create asset failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "aset")
	httpx.Data(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID aset tidak valid")
		return
	}

	var req UpdateAssetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondValidationError(w, err)
		return
	}

	item, err := h.service.Update(r.Context(), id, req, shared.ActorID(r.Context()))
	if err != nil {
		h.logger.Error("update asset failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "aset")
	httpx.Data(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID aset tidak valid")
		return
	}

	if err := h.service.Delete(r.Context(), id, shared.ActorID(r.Context())); err != nil {
		h.logger.Error("delete asset failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "aset")
	httpx.Message(w, http.StatusOK, "Aset berhasil dihapus")
}
