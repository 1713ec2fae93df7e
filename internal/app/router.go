package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/contracts"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/observability"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables/importer"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/receivables"
	reporthttp "github.com/Lkfarinazzo7/fluxo-maestro/internal/reports/http"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/settings"
	"github.com/Lkfarinazzo7/fluxo-maestro/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	ContractsHandler   *contracts.Handler
	ReceivablesHandler *receivables.Handler
	PayablesHandler    *payables.Handler
	ImportHandler      *importer.Handler
	SalespeopleHandler *people.Handler
	SupervisorsHandler *people.Handler
	SettingsHandler    *settings.Handler
	ReportsHandler     *reporthttp.Handler
	JobHandler         *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Fluxo defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/contratos", params.ContractsHandler.MountRoutes)
	r.Route("/receitas", params.ReceivablesHandler.MountRoutes)
	r.Route("/despesas", params.PayablesHandler.MountRoutes)
	if params.ImportHandler != nil {
		r.Route("/importacao/despesas", params.ImportHandler.MountRoutes)
	}
	r.Route("/vendedores", params.SalespeopleHandler.MountRoutes)
	r.Route("/supervisores", params.SupervisorsHandler.MountRoutes)
	r.Route("/configuracoes", params.SettingsHandler.MountRoutes)
	r.Route("/relatorios", params.ReportsHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
