package detailcategories

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

// List returns detail categories, optionally scoped by ?subkategori_aset_id=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var subcategoryID int64
	if raw := r.URL.Query().Get("subkategori_aset_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			httpx.Message(w, http.StatusBadRequest, "ID subkategori tidak valid")
			return
		}
		subcategoryID = parsed
	}

	items, err := h.service.List(r.Context(), subcategoryID)
	if err != nil {
		h.logger.Error("list detail categories failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []DetailCategory{}
	}
	httpx.Data(w, http.StatusOK, items)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID detail kategori tidak valid")
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
	var req CreateDetailCategoryRequest
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
		h.logger.Error("create detail category failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "detail_kategori_aset")
	httpx.Data(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID detail kategori tidak valid")
		return
	}

	var req UpdateDetailCategoryRequest
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
		h.logger.Error("update detail category failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "detail_kategori_aset")
	httpx.Data(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID detail kategori tidak valid")
		return
	}

	if err := h.service.Delete(r.Context(), id, shared.ActorID(r.Context())); err != nil {
		h.logger.Error("delete detail category failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "detail_kategori_aset")
	httpx.Message(w, http.StatusOK, "Detail kategori berhasil dihapus")
}
