package disposals

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/simaset/simaset/internal/platform/httpx"
	"github.com/simaset/simaset/internal/shared"
	"github.com/simaset/simaset/internal/users"
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

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Propose)
	r.Get("/{id}", h.Show)
	r.Post("/{id}/setujui", h.Approve)
	r.Post("/{id}/tolak", h.Reject)
}

// List returns proposals, optionally filtered by ?status=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", StatusProposed, StatusApproved, StatusRejected:
	default:
		httpx.Message(w, http.StatusBadRequest, "Status pengajuan tidak valid")
		return
	}

	items, err := h.service.List(r.Context(), status)
	if err != nil {
		h.logger.Error("list disposals failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Proposal{}
	}
	httpx.Data(w, http.StatusOK, items)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID pengajuan tidak valid")
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, item)
}

func (h *Handler) Propose(w http.ResponseWriter, r *http.Request) {
	var req CreateProposalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Body permintaan tidak valid")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondValidationError(w, err)
		return
	}

	item, err := h.service.Propose(r.Context(), req, shared.ActorID(r.Context()))
	if err != nil {
		h.logger.Error("propose disposal failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "penghapusan_pemindahtanganan_aset")
	httpx.Data(w, http.StatusCreated, item)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "approve disposal failed", h.service.Approve)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "reject disposal failed", h.service.Reject)
}

type decideFunc func(ctx context.Context, id int64, req DecideProposalRequest, actorID int64) (*Proposal, error)

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, logMsg string, decide decideFunc) {
	// Anyone can propose, only administrators decide.
	if shared.ActorRole(r.Context()) != users.RoleAdmin {
		httpx.Message(w, http.StatusForbidden, "Hanya admin yang dapat memutuskan pengajuan")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "ID pengajuan tidak valid")
		return
	}

	var req DecideProposalRequest
	if r.ContentLength > 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Message(w, http.StatusBadRequest, "Body permintaan tidak valid")
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondValidationError(w, err)
			return
		}
	}

	item, err := decide(r.Context(), id, req, shared.ActorID(r.Context()))
	if err != nil {
		h.logger.Error(logMsg, slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	h.events.CollectionChanged(r.Context(), "penghapusan_pemindahtanganan_aset")
	h.events.CollectionChanged(r.Context(), "aset")
	httpx.Data(w, http.StatusOK, item)
}
