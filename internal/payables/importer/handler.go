package importer

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/httpx"
)

const maxUploadBytes = 5 << 20

// Handler exposes the spreadsheet import endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the import routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/previa", h.handlePreview)
	r.Post("/", h.handleImport)
	r.Get("/modelo.csv", h.handleTemplate)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	body, ok := h.spreadsheet(w, r)
	if !ok {
		return
	}
	defer body.Close()

	report, err := h.service.Preview(body)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Planilha inválida", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	body, ok := h.spreadsheet(w, r)
	if !ok {
		return
	}
	defer body.Close()

	report, err := h.service.Import(r.Context(), body)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Planilha inválida", err.Error())
		return
	}
	h.logger.Info("import finished",
		"batch", report.BatchID,
		"total", report.Total,
		"committed", report.Committed,
		"invalid", report.Invalid)
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleTemplate(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="modelo-despesas.csv"`)
	if err := WriteTemplateCSV(w); err != nil {
		h.logger.Error("write template", "error", err)
	}
}

// spreadsheet extracts the CSV payload, accepting either a multipart
// form with an "arquivo" field or a raw text/csv body.
func (h *Handler) spreadsheet(w http.ResponseWriter, r *http.Request) (io.ReadCloser, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("arquivo")
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Arquivo ausente", "envie a planilha no campo arquivo")
			return nil, false
		}
		return file, true
	}
	return r.Body, true
}
