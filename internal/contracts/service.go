package contracts

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidInput indicates a payload that failed domain checks.
var ErrInvalidInput = errors.New("contracts: invalid input")

// Store abstracts contract persistence.
type Store interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	Get(ctx context.Context, id int64) (Contract, error)
	List(ctx context.Context, filter ListFilter) ([]Contract, error)
	Update(ctx context.Context, c Contract) (Contract, error)
	Delete(ctx context.Context, id int64) error
}

// CacheBumper invalidates derived report caches after mutations.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service coordinates contract operations.
type Service struct {
	store Store
	cache CacheBumper
}

// NewService constructs a Service.
func NewService(store Store, cache CacheBumper) *Service {
	return &Service{store: store, cache: cache}
}

// Create validates and stores a new contract.
func (s *Service) Create(ctx context.Context, input CreateContractInput) (Contract, error) {
	c, err := fromCreateInput(input)
	if err != nil {
		return Contract{}, err
	}
	created, err := s.store.Create(ctx, c)
	if err != nil {
		return Contract{}, err
	}
	s.bump(ctx)
	return created, nil
}

// Get returns a contract by id.
func (s *Service) Get(ctx context.Context, id int64) (Contract, error) {
	return s.store.Get(ctx, id)
}

// List returns contracts newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Contract, error) {
	return s.store.List(ctx, filter)
}

// Update replaces a contract in full.
func (s *Service) Update(ctx context.Context, id int64, input UpdateContractInput) (Contract, error) {
	c, err := fromCreateInput(CreateContractInput(input))
	if err != nil {
		return Contract{}, err
	}
	c.ID = id
	updated, err := s.store.Update(ctx, c)
	if err != nil {
		return Contract{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Patch applies a partial update on top of the stored row.
func (s *Service) Patch(ctx context.Context, id int64, input PatchContractInput) (Contract, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return Contract{}, err
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Carrier != nil {
		c.Carrier = *input.Carrier
	}
	if input.Category != nil {
		c.Category = *input.Category
	}
	if input.Type != nil {
		c.Type = Type(*input.Type)
	}
	if input.MonthlyFee != nil {
		c.MonthlyFee = *input.MonthlyFee
	}
	if input.CommissionPct != nil {
		c.CommissionPct = *input.CommissionPct
	}
	if input.PerLifeBonus != nil {
		c.PerLifeBonus = *input.PerLifeBonus
	}
	if input.Lives != nil {
		c.Lives = *input.Lives
	}
	if input.ImplementationDate != nil {
		d, err := time.Parse("2006-01-02", *input.ImplementationDate)
		if err != nil {
			return Contract{}, ErrInvalidInput
		}
		c.ImplementationDate = d
	}
	if input.ProjectedReceiptDates != nil {
		dates, err := parseDates(input.ProjectedReceiptDates)
		if err != nil {
			return Contract{}, ErrInvalidInput
		}
		c.ProjectedReceiptDates = dates
	}
	if input.Salesperson != nil {
		c.Salesperson = *input.Salesperson
	}
	if input.Supervisor != nil {
		c.Supervisor = *input.Supervisor
	}
	if input.Status != nil {
		c.Status = Status(*input.Status)
	}
	updated, err := s.store.Update(ctx, c)
	if err != nil {
		return Contract{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Delete removes a contract permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
}

func fromCreateInput(input CreateContractInput) (Contract, error) {
	impl, err := time.Parse("2006-01-02", input.ImplementationDate)
	if err != nil {
		return Contract{}, ErrInvalidInput
	}
	dates, err := parseDates(input.ProjectedReceiptDates)
	if err != nil {
		return Contract{}, ErrInvalidInput
	}
	status := Status(input.Status)
	if status == "" {
		status = StatusActive
	}
	return Contract{
		Name:                  input.Name,
		Carrier:               input.Carrier,
		Category:              input.Category,
		Type:                  Type(input.Type),
		MonthlyFee:            input.MonthlyFee,
		CommissionPct:         input.CommissionPct,
		PerLifeBonus:          input.PerLifeBonus,
		Lives:                 input.Lives,
		ImplementationDate:    impl,
		ProjectedReceiptDates: dates,
		Salesperson:           input.Salesperson,
		Supervisor:            input.Supervisor,
		Status:                status,
	}, nil
}

func parseDates(values []string) ([]time.Time, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
