package entry

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
	List(actor *auth.User, filters Filters) (*Page, error)
	Get(actor *auth.User, id int64) (*Entry, error)
	Create(actor *auth.User, input EntryInput) (*Entry, error)
	Update(actor *auth.User, id int64, input EntryInput) (*Entry, error)
	PatchFields(actor *auth.User, id int64, fields map[string]string) (*Entry, error)
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

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query := r.URL.Query()
	filters := Filters{
		Section: query.Get("section"),
		Lead:    query.Get("lead"),
		Date:    query.Get("date"),
	}
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filters.Page = p
		}
	}

	page, err := h.Service.List(actor, filters)
	if err != nil {
		h.Logger.Error("ListEntries: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.entryID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	e, err := h.Service.Get(actor, id)
	if err != nil {
		h.Logger.Error("GetEntry: service error", "error", err, "entry_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Logger.Error("CreateEntry: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(actor, input)
	if err != nil {
		h.Logger.Error("CreateEntry: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEntry: entry created",
		"entry_id", e.ID,
		"lead_id", e.LeadID,
		"section_id", e.SectionID,
		"actor_id", actor.ID)

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.entryID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	var input EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Logger.Error("UpdateEntry: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(actor, id, input)
	if err != nil {
		h.Logger.Error("UpdateEntry: service error", "error", err, "entry_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

// PatchEntryFields handles the inline editor: a flat map of raw string
// values for the patchable fields.
func (h *Handler) PatchEntryFields(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.entryID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.Logger.Error("PatchEntryFields: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.PatchFields(actor, id, fields)
	if err != nil {
		h.Logger.Error("PatchEntryFields: service error", "error", err, "entry_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   e,
	})
}

func (h *Handler) entryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
