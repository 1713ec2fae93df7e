package reporthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
)

// MountRoutes registers report endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/dashboard", h.handleDashboard)
	r.Get("/resumo", h.handleSummary)
	r.Get("/fluxo-caixa", h.handleCashflow)
	r.Get("/dre", h.handleDRE)
	r.Get("/comissoes/vendedores", h.handleCommissions(people.RoleSalesperson))
	r.Get("/comissoes/supervisores", h.handleCommissions(people.RoleSupervisor))

	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/export/resumo.csv", h.handleSummaryCSV)
		gr.Get("/export/fluxo-caixa.csv", h.handleCashflowCSV)
		gr.Get("/export/dre.csv", h.handleDRECSV)
		gr.Get("/export/comissoes/vendedores.csv", h.handleCommissionsCSV(people.RoleSalesperson))
		gr.Get("/export/comissoes/supervisores.csv", h.handleCommissionsCSV(people.RoleSupervisor))
	})
}
