package categories

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
)

// Handler exposes the kategori-aset JSON API.
type Handler struct {
	logger  *slog.Logger
	service *Service
	events  shared.ChangePublisher
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, events shared.ChangePublisher) *Handler {
	if events == nil {
		events = shared.NopChangePublisher{}
	}
	return &Handler{logger: logger, service: service, events: events}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Category{}
	}
	httpx.Data(w, http.StatusOK, items)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID kategori tidak valid")
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, category)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondValidationError(w, err)
		return
	}

	category, err := h.service.Create(r.Context(), req, shared.ActorID(r.Context()))
	if err != nil {
		h.logger.Error("create category failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "kategori_aset")
	httpx.Data(w, http.StatusCreated, category)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID kategori tidak valid")
		return
	}

	var req UpdateCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondValidationError(w, err)
		return
	}

	category, err := h.service.Update(r.Context(), id, req, shared.ActorID(r.Context()))
	if err != nil {
		h.logger.Error("update category failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "kategori_aset")
	httpx.Data(w, http.StatusOK, category)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID kategori tidak valid")
		return
	}

	if err := h.service.Delete(r.Context(), id, shared.ActorID(r.Context())); err != nil {
		h.logger.Error("delete category failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "kategori_aset")
	httpx.Message(w, http.StatusOK, "Kategori berhasil dihapus")
}
