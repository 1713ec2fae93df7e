package reporthttp

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/platform/httpx"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/reports"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/reports/export"
)

const requestTimeout = 2 * time.Second

// ReportService defines the dashboard data contract used by the handler.
type ReportService interface {
	ResolveQuery(q reports.PeriodQuery) reports.Period
	GetSummary(ctx context.Context, q reports.PeriodQuery) (reports.Summary, error)
	GetCashflow(ctx context.Context, q reports.PeriodQuery) (reports.Series, error)
	GetDRE(ctx context.Context, q reports.PeriodQuery) (reports.DRE, error)
	GetCommissions(ctx context.Context, role people.Role, q reports.PeriodQuery) ([]reports.CommissionEntry, error)
}

// Handler coordinates HTTP requests for the finance reports.
type Handler struct {
	logger  *slog.Logger
	service ReportService
	csvPool sync.Pool
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	h := &Handler{logger: logger, service: service}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

type dashboardResponse struct {
	Period   reports.Period  `json:"periodo"`
	Summary  reports.Summary `json:"resumo"`
	Cashflow reports.Series  `json:"fluxoCaixa"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := parsePeriodQuery(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var resp dashboardResponse
	resp.Period = h.service.ResolveQuery(q)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := h.service.GetSummary(ctx, q)
		if err != nil {
			return err
		}
		resp.Summary = summary
		return nil
	})
	g.Go(func() error {
		series, err := h.service.GetCashflow(ctx, q)
		if err != nil {
			return err
		}
		resp.Cashflow = series
		return nil
	})
	if err := g.Wait(); err != nil {
		h.serverError(w, "load dashboard", err)
		return
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context(), parsePeriodQuery(r))
	if err != nil {
		h.serverError(w, "load summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleCashflow(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.GetCashflow(r.Context(), parsePeriodQuery(r))
	if err != nil {
		h.serverError(w, "load cashflow", err)
		return
	}
	httpx.JSON(w, http.StatusOK, series)
}

func (h *Handler) handleDRE(w http.ResponseWriter, r *http.Request) {
	dre, err := h.service.GetDRE(r.Context(), parsePeriodQuery(r))
	if err != nil {
		h.serverError(w, "load dre", err)
		return
	}
	httpx.JSON(w, http.StatusOK, dre)
}

func (h *Handler) handleCommissions(role people.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.service.GetCommissions(r.Context(), role, parsePeriodQuery(r))
		if err != nil {
			h.serverError(w, "load commissions", err)
			return
		}
		httpx.JSON(w, http.StatusOK, entries)
	}
}

func (h *Handler) handleSummaryCSV(w http.ResponseWriter, r *http.Request) {
	q := parsePeriodQuery(r)
	summary, err := h.service.GetSummary(r.Context(), q)
	if err != nil {
		h.serverError(w, "export summary", err)
		return
	}
	h.writeCSV(w, "resumo.csv", func(buf *bytes.Buffer) error {
		return export.WriteSummaryCSV(buf, summary, h.service.ResolveQuery(q))
	})
}

func (h *Handler) handleCashflowCSV(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.GetCashflow(r.Context(), parsePeriodQuery(r))
	if err != nil {
		h.serverError(w, "export cashflow", err)
		return
	}
	h.writeCSV(w, "fluxo-caixa.csv", func(buf *bytes.Buffer) error {
		return export.WriteSeriesCSV(buf, series)
	})
}

func (h *Handler) handleDRECSV(w http.ResponseWriter, r *http.Request) {
	dre, err := h.service.GetDRE(r.Context(), parsePeriodQuery(r))
	if err != nil {
		h.serverError(w, "export dre", err)
		return
	}
	h.writeCSV(w, "dre.csv", func(buf *bytes.Buffer) error {
		return export.WriteDRECSV(buf, dre)
	})
}

func (h *Handler) handleCommissionsCSV(role people.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.service.GetCommissions(r.Context(), role, parsePeriodQuery(r))
		if err != nil {
			h.serverError(w, "export commissions", err)
			return
		}
		h.writeCSV(w, "comissoes.csv", func(buf *bytes.Buffer) error {
			return export.WriteCommissionCSV(buf, entries)
		})
	}
}

func (h *Handler) writeCSV(w http.ResponseWriter, filename string, write func(*bytes.Buffer) error) {
	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.csvPool.Put(buf)

	if err := write(buf); err != nil {
		h.serverError(w, "render csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

// parsePeriodQuery never fails: unparseable bounds are dropped and the
// resolver falls back to safe defaults.
func parsePeriodQuery(r *http.Request) reports.PeriodQuery {
	q := reports.PeriodQuery{Token: r.URL.Query().Get("periodo")}
	if raw := r.URL.Query().Get("inicio"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			q.Start = &t
		}
	}
	if raw := r.URL.Query().Get("fim"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			q.End = &t
		}
	}
	return q
}
