package people

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/httpx"
)

// Handler manages roster endpoints for one role.
type Handler struct {
	logger  *slog.Logger
	service *Service
	role    Role
}

// NewHandler builds a Handler bound to a roster role.
func NewHandler(logger *slog.Logger, service *Service, role Role) *Handler {
	return &Handler{logger: logger, service: service, role: role}
}

type createPersonInput struct {
	Name string `json:"nome"`
}

type personResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
}

// MountRoutes registers roster routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), h.role)
	if err != nil {
		h.respondError(w, "list people", err)
		return
	}
	out := make([]personResponse, 0, len(items))
	for _, p := range items {
		out = append(out, personResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input createPersonInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), h.role, input.Name)
	if err != nil {
		h.respondError(w, "create person", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, personResponse{ID: created.ID, Name: created.Name, CreatedAt: created.CreatedAt})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete person", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateName):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrEmptyName):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
