package payables

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidInput indicates a payload that failed domain checks.
	ErrInvalidInput = errors.New("payables: invalid input")
	// ErrSettlementIncomplete indicates a paid status without an actual date.
	ErrSettlementIncomplete = errors.New("payables: paid status requires a paid date")
)

// Store abstracts payable persistence.
type Store interface {
	Create(ctx context.Context, p Payable) (Payable, error)
	Get(ctx context.Context, id int64) (Payable, error)
	List(ctx context.Context) ([]Payable, error)
	Update(ctx context.Context, p Payable) (Payable, error)
	Delete(ctx context.Context, id int64) error
}

// CacheBumper invalidates derived report caches after mutations.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service coordinates payable operations.
type Service struct {
	store Store
	cache CacheBumper
}

// NewService constructs a Service.
func NewService(store Store, cache CacheBumper) *Service {
	return &Service{store: store, cache: cache}
}

// Create validates and stores a new payable.
func (s *Service) Create(ctx context.Context, input CreatePayableInput) (Payable, error) {
	p, err := fromCreateInput(input)
	if err != nil {
		return Payable{}, err
	}
	created, err := s.store.Create(ctx, p)
	if err != nil {
		return Payable{}, err
	}
	s.bump(ctx)
	return created, nil
}

// Get returns a payable by id.
func (s *Service) Get(ctx context.Context, id int64) (Payable, error) {
	return s.store.Get(ctx, id)
}

// List returns payables anchored newest first.
func (s *Service) List(ctx context.Context) ([]Payable, error) {
	return s.store.List(ctx)
}

// Update replaces a payable in full.
func (s *Service) Update(ctx context.Context, id int64, input UpdatePayableInput) (Payable, error) {
	p, err := fromCreateInput(CreatePayableInput(input))
	if err != nil {
		return Payable{}, err
	}
	p.ID = id
	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return Payable{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Patch applies a partial update on top of the stored row.
func (s *Service) Patch(ctx context.Context, id int64, input PatchPayableInput) (Payable, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Payable{}, err
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Amount != nil {
		p.Amount = *input.Amount
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.ExpenseType != nil {
		p.ExpenseType = ExpenseType(*input.ExpenseType)
	}
	if input.Supplier != nil {
		p.Supplier = *input.Supplier
	}
	if input.PersonID != nil {
		p.PersonID = input.PersonID
	}
	if input.Recurrent != nil {
		p.Recurrent = *input.Recurrent
	}
	if input.RecurrenceMonths != nil {
		p.RecurrenceMonths = input.RecurrenceMonths
	}
	if input.ProjectedDate != nil {
		d, err := time.Parse("2006-01-02", *input.ProjectedDate)
		if err != nil {
			return Payable{}, ErrInvalidInput
		}
		p.ProjectedDate = d
	}
	if input.PaidDate != nil {
		d, err := time.Parse("2006-01-02", *input.PaidDate)
		if err != nil {
			return Payable{}, ErrInvalidInput
		}
		p.PaidDate = &d
	}
	if input.Method != nil {
		p.Method = *input.Method
	}
	if input.ReceiptRef != nil {
		p.ReceiptRef = input.ReceiptRef
	}
	if input.Status != nil {
		p.Status = Status(*input.Status)
	}
	if err := checkSettlement(p); err != nil {
		return Payable{}, err
	}
	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return Payable{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Pay marks a payable as paid on the given date.
func (s *Service) Pay(ctx context.Context, id int64, input PayInput) (Payable, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Payable{}, err
	}
	d, err := time.Parse("2006-01-02", input.PaidDate)
	if err != nil {
		return Payable{}, ErrInvalidInput
	}
	p.Status = StatusPaid
	p.PaidDate = &d
	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return Payable{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Delete removes a payable permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// MaterializeRecurring clones recurrent payables into the month of refDate
// when their recurrence window still covers it. Instances are created in
// projected status; an instance already present for the month is skipped.
func (s *Service) MaterializeRecurring(ctx context.Context, refDate time.Time) (int, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	targetYear, targetMonth, _ := refDate.Date()
	created := 0
	for _, p := range all {
		if !p.Recurrent {
			continue
		}
		if sameMonth(p.ProjectedDate, refDate) {
			continue
		}
		months := monthsBetween(p.ProjectedDate, refDate)
		if months <= 0 {
			continue
		}
		if p.RecurrenceMonths != nil && months > *p.RecurrenceMonths {
			continue
		}
		if hasInstanceInMonth(all, p, targetYear, targetMonth) {
			continue
		}
		day := p.ProjectedDate.Day()
		instance := Payable{
			Name:          p.Name,
			Amount:        p.Amount,
			Category:      p.Category,
			ExpenseType:   p.ExpenseType,
			Supplier:      p.Supplier,
			PersonID:      p.PersonID,
			ProjectedDate: clampDay(targetYear, targetMonth, day),
			Method:        p.Method,
			Status:        StatusProjected,
		}
		if _, err := s.store.Create(ctx, instance); err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		s.bump(ctx)
	}
	return created, nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
}

func fromCreateInput(input CreatePayableInput) (Payable, error) {
	projected, err := time.Parse("2006-01-02", input.ProjectedDate)
	if err != nil {
		return Payable{}, ErrInvalidInput
	}
	p := Payable{
		Name:             input.Name,
		Amount:           input.Amount,
		Category:         input.Category,
		ExpenseType:      ExpenseType(input.ExpenseType),
		Supplier:         input.Supplier,
		PersonID:         input.PersonID,
		Recurrent:        input.Recurrent,
		RecurrenceMonths: input.RecurrenceMonths,
		ProjectedDate:    projected,
		Method:           input.Method,
		ReceiptRef:       input.ReceiptRef,
		Status:           Status(input.Status),
	}
	if p.Status == "" {
		p.Status = StatusProjected
	}
	if p.ExpenseType == "" {
		p.ExpenseType = ExpenseVariable
	}
	if input.PaidDate != nil {
		d, err := time.Parse("2006-01-02", *input.PaidDate)
		if err != nil {
			return Payable{}, ErrInvalidInput
		}
		p.PaidDate = &d
	}
	if err := checkSettlement(p); err != nil {
		return Payable{}, err
	}
	return p, nil
}

func checkSettlement(p Payable) error {
	if p.Status == StatusPaid && p.PaidDate == nil {
		return ErrSettlementIncomplete
	}
	return nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func hasInstanceInMonth(all []Payable, template Payable, year int, month time.Month) bool {
	for _, p := range all {
		if p.ID == template.ID {
			continue
		}
		if p.Name == template.Name && p.ProjectedDate.Year() == year && p.ProjectedDate.Month() == month {
			return true
		}
	}
	return false
}

func clampDay(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
