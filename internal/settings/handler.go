package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/httpx"
)

// Handler manages settings endpoints.
type Handler struct {
	logger *slog.Logger
	store  Store
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, store Store) *Handler {
	return &Handler{logger: logger, store: store}
}

type valueInput struct {
	Value string `json:"valor"`
}

type listResponse struct {
	List   string   `json:"lista"`
	Values []string `json:"valores"`
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{list}", h.get)
	r.Post("/{list}", h.add)
	r.Delete("/{list}", h.remove)
	r.Post("/{list}/reset", h.reset)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	list := List(chi.URLParam(r, "list"))
	values, err := h.store.Get(r.Context(), list)
	if err != nil {
		h.respondError(w, "get settings list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{List: string(list), Values: values})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	list := List(chi.URLParam(r, "list"))
	var input valueInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if input.Value == "" {
		httpx.ValidationProblem(w, map[string]string{"valor": "required"})
		return
	}
	values, err := h.store.Add(r.Context(), list, input.Value)
	if err != nil {
		h.respondError(w, "add settings value", err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{List: string(list), Values: values})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	list := List(chi.URLParam(r, "list"))
	var input valueInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	values, err := h.store.Remove(r.Context(), list, input.Value)
	if err != nil {
		h.respondError(w, "remove settings value", err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{List: string(list), Values: values})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	list := List(chi.URLParam(r, "list"))
	values, err := h.store.Reset(r.Context(), list)
	if err != nil {
		h.respondError(w, "reset settings list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{List: string(list), Values: values})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrUnknownList) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
