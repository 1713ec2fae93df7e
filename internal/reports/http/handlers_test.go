package reporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/reports"
)

type stubService struct {
	summary   reports.Summary
	series    reports.Series
	dre       reports.DRE
	entries   []reports.CommissionEntry
	err       error
	lastQuery reports.PeriodQuery
	lastRole  people.Role
}

func (s *stubService) ResolveQuery(q reports.PeriodQuery) reports.Period {
	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)
	return reports.Resolve(q.Token, q.Start, q.End, now)
}

func (s *stubService) GetSummary(ctx context.Context, q reports.PeriodQuery) (reports.Summary, error) {
	s.lastQuery = q
	return s.summary, s.err
}

func (s *stubService) GetCashflow(ctx context.Context, q reports.PeriodQuery) (reports.Series, error) {
	return s.series, s.err
}

func (s *stubService) GetDRE(ctx context.Context, q reports.PeriodQuery) (reports.DRE, error) {
	return s.dre, s.err
}

func (s *stubService) GetCommissions(ctx context.Context, role people.Role, q reports.PeriodQuery) ([]reports.CommissionEntry, error) {
	s.lastRole = role
	return s.entries, s.err
}

func newTestRouter(svc ReportService) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestDashboardCombinesSummaryAndCashflow(t *testing.T) {
	svc := &stubService{
		summary: reports.Summary{PeriodRevenue: 480},
		series:  reports.Series{Granularity: reports.GranularityDaily},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/dashboard?periodo=mes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Period  reports.Period  `json:"periodo"`
		Summary reports.Summary `json:"resumo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.InDelta(t, 480.0, body.Summary.PeriodRevenue, 1e-9)
	require.Equal(t, time.March, body.Period.Start.Month())
	require.Equal(t, "mes", svc.lastQuery.Token)
}

func TestDashboardServiceFailure(t *testing.T) {
	svc := &stubService{err: errors.New("boom")}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestPeriodQueryParsing(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/resumo?periodo=personalizado&inicio=2026-01-01&fim=2026-02-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "personalizado", svc.lastQuery.Token)
	require.NotNil(t, svc.lastQuery.Start)
	require.Equal(t, "2026-01-01", svc.lastQuery.Start.Format("2006-01-02"))
	require.NotNil(t, svc.lastQuery.End)
}

func TestPeriodQueryDropsBadBounds(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/resumo?periodo=personalizado&inicio=nonsense", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, svc.lastQuery.Start)
}

func TestCommissionRoutesSelectRole(t *testing.T) {
	svc := &stubService{entries: []reports.CommissionEntry{{Name: "Ana Souza"}}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comissoes/vendedores", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, people.RoleSalesperson, svc.lastRole)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comissoes/supervisores", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, people.RoleSupervisor, svc.lastRole)
}

func TestSummaryCSVExport(t *testing.T) {
	svc := &stubService{summary: reports.Summary{PeriodRevenue: 480}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/export/resumo.csv?periodo=mes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, rec.Header().Get("Content-Disposition"), "resumo.csv")
	require.True(t, strings.Contains(rec.Body.String(), "480"), "body: %s", rec.Body.String())
}
