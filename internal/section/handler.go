package section

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"github.com/frahmantamala/warehouse-productivity/internal/transport"
	"github.com/frahmantamala/warehouse-productivity/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListSections(actor *auth.User) ([]*Section, error)
	CreateSection(actor *auth.User, input SectionInput) (*Section, error)
	UpdateSection(actor *auth.User, id int64, input SectionInput) (*Section, error)
	DeleteSection(actor *auth.User, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sections, err := h.Service.ListSections(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
}

func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input SectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.Service.CreateSection(actor, input)
	if err != nil {
		h.Logger.Error("CreateSection: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sec)
}

func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid section ID")
		return
	}

	var input SectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.Service.UpdateSection(actor, id, input)
	if err != nil {
		h.Logger.Error("UpdateSection: service error", "error", err, "section_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sec)
}

func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid section ID")
		return
	}

	if err := h.Service.DeleteSection(actor, id); err != nil {
		h.Logger.Error("DeleteSection: service error", "error", err, "section_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
