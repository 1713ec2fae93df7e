package reports

import (
	"context"
	"time"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/contracts"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/receivables"
)

// Repository exposes the entity collections the aggregations consume.
type Repository interface {
	AllContracts(ctx context.Context) ([]contracts.Contract, error)
	AllReceivables(ctx context.Context) ([]receivables.Receivable, error)
	AllPayables(ctx context.Context) ([]payables.Payable, error)
	Roster(ctx context.Context, role people.Role) ([]people.Person, error)
}

// PeriodQuery names a reporting window before resolution.
type PeriodQuery struct {
	Token string
	Start *time.Time
	End   *time.Time
}

// Service coordinates report computation with the cache layer.
type Service struct {
	repo    Repository
	cache   *Cache
	taxRate float64
	now     func() time.Time
}

// NewService wires a Repository with a Cache helper. taxRate is the
// simplified DRE tax percentage.
func NewService(repo Repository, cache *Cache, taxRate float64) *Service {
	return &Service{repo: repo, cache: cache, taxRate: taxRate, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// ResolveQuery turns a period query into a concrete interval.
func (s *Service) ResolveQuery(q PeriodQuery) Period {
	return Resolve(q.Token, q.Start, q.End, s.now())
}

// Cache exposes the cache helper for invalidation wiring.
func (s *Service) Cache() *Cache {
	return s.cache
}

// GetSummary resolves the dashboard KPI card using cache-aware lookups.
func (s *Service) GetSummary(ctx context.Context, q PeriodQuery) (Summary, error) {
	period := s.ResolveQuery(q)
	loader := func(ctx context.Context) (interface{}, error) {
		cs, err := s.repo.AllContracts(ctx)
		if err != nil {
			return Summary{}, err
		}
		rs, err := s.repo.AllReceivables(ctx)
		if err != nil {
			return Summary{}, err
		}
		ps, err := s.repo.AllPayables(ctx)
		if err != nil {
			return Summary{}, err
		}
		return Summarize(cs, rs, ps, period), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Summary{}, err
		}
		return value.(Summary), nil
	}

	key, err := s.cache.BuildKey(ctx, keySummary(period))
	if err != nil {
		return Summary{}, err
	}
	var summary Summary
	if err := s.cache.FetchJSON(ctx, key, &summary, loader); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// GetCashflow computes the bucketed cash-flow series for the interval.
func (s *Service) GetCashflow(ctx context.Context, q PeriodQuery) (Series, error) {
	period := s.ResolveQuery(q)
	loader := func(ctx context.Context) (interface{}, error) {
		rs, err := s.repo.AllReceivables(ctx)
		if err != nil {
			return Series{}, err
		}
		ps, err := s.repo.AllPayables(ctx)
		if err != nil {
			return Series{}, err
		}
		return BuildSeries(rs, ps, period), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Series{}, err
		}
		return value.(Series), nil
	}

	key, err := s.cache.BuildKey(ctx, keyCashflow(period))
	if err != nil {
		return Series{}, err
	}
	var series Series
	if err := s.cache.FetchJSON(ctx, key, &series, loader); err != nil {
		return Series{}, err
	}
	return series, nil
}

// GetDRE computes the simplified income statement for the interval.
func (s *Service) GetDRE(ctx context.Context, q PeriodQuery) (DRE, error) {
	period := s.ResolveQuery(q)
	loader := func(ctx context.Context) (interface{}, error) {
		rs, err := s.repo.AllReceivables(ctx)
		if err != nil {
			return DRE{}, err
		}
		ps, err := s.repo.AllPayables(ctx)
		if err != nil {
			return DRE{}, err
		}
		return BuildDRE(rs, ps, period, s.taxRate), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return DRE{}, err
		}
		return value.(DRE), nil
	}

	key, err := s.cache.BuildKey(ctx, keyDRE(period))
	if err != nil {
		return DRE{}, err
	}
	var dre DRE
	if err := s.cache.FetchJSON(ctx, key, &dre, loader); err != nil {
		return DRE{}, err
	}
	return dre, nil
}

// GetCommissions computes the per-person commission report for a role.
func (s *Service) GetCommissions(ctx context.Context, role people.Role, q PeriodQuery) ([]CommissionEntry, error) {
	period := s.ResolveQuery(q)
	loader := func(ctx context.Context) (interface{}, error) {
		roster, err := s.repo.Roster(ctx, role)
		if err != nil {
			return nil, err
		}
		cs, err := s.repo.AllContracts(ctx)
		if err != nil {
			return nil, err
		}
		ps, err := s.repo.AllPayables(ctx)
		if err != nil {
			return nil, err
		}
		return CommissionReport(roster, cs, ps, period), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]CommissionEntry), nil
	}

	key, err := s.cache.BuildKey(ctx, keyCommission(string(role), period))
	if err != nil {
		return nil, err
	}
	var entries []CommissionEntry
	if err := s.cache.FetchJSON(ctx, key, &entries, loader); err != nil {
		return nil, err
	}
	return entries, nil
}
