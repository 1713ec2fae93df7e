package receivables

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidInput indicates a payload that failed domain checks.
	ErrInvalidInput = errors.New("receivables: invalid input")
	// ErrSettlementIncomplete indicates a received status without actual fields.
	ErrSettlementIncomplete = errors.New("receivables: received status requires date and amount")
)

// Store abstracts receivable persistence.
type Store interface {
	Create(ctx context.Context, rcv Receivable) (Receivable, error)
	Get(ctx context.Context, id int64) (Receivable, error)
	List(ctx context.Context) ([]Receivable, error)
	Update(ctx context.Context, rcv Receivable) (Receivable, error)
	Delete(ctx context.Context, id int64) error
}

// CacheBumper invalidates derived report caches after mutations.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service coordinates receivable operations.
type Service struct {
	store Store
	cache CacheBumper
}

// NewService constructs a Service.
func NewService(store Store, cache CacheBumper) *Service {
	return &Service{store: store, cache: cache}
}

// Create validates and stores a new receivable.
func (s *Service) Create(ctx context.Context, input CreateReceivableInput) (Receivable, error) {
	rcv, err := fromCreateInput(input)
	if err != nil {
		return Receivable{}, err
	}
	created, err := s.store.Create(ctx, rcv)
	if err != nil {
		return Receivable{}, err
	}
	s.bump(ctx)
	return created, nil
}

// Get returns a receivable by id.
func (s *Service) Get(ctx context.Context, id int64) (Receivable, error) {
	return s.store.Get(ctx, id)
}

// List returns receivables anchored newest first.
func (s *Service) List(ctx context.Context) ([]Receivable, error) {
	return s.store.List(ctx)
}

// Update replaces a receivable in full.
func (s *Service) Update(ctx context.Context, id int64, input UpdateReceivableInput) (Receivable, error) {
	rcv, err := fromCreateInput(CreateReceivableInput(input))
	if err != nil {
		return Receivable{}, err
	}
	rcv.ID = id
	updated, err := s.store.Update(ctx, rcv)
	if err != nil {
		return Receivable{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Patch applies a partial update on top of the stored row.
func (s *Service) Patch(ctx context.Context, id int64, input PatchReceivableInput) (Receivable, error) {
	rcv, err := s.store.Get(ctx, id)
	if err != nil {
		return Receivable{}, err
	}
	if input.Kind != nil {
		rcv.Kind = Kind(*input.Kind)
	}
	if input.ContractID != nil {
		rcv.ContractID = input.ContractID
	}
	if input.ProjectedAmount != nil {
		rcv.ProjectedAmount = *input.ProjectedAmount
	}
	if input.ReceivedAmount != nil {
		rcv.ReceivedAmount = input.ReceivedAmount
	}
	if input.ProjectedDate != nil {
		d, err := time.Parse("2006-01-02", *input.ProjectedDate)
		if err != nil {
			return Receivable{}, ErrInvalidInput
		}
		rcv.ProjectedDate = d
	}
	if input.ReceivedDate != nil {
		d, err := time.Parse("2006-01-02", *input.ReceivedDate)
		if err != nil {
			return Receivable{}, ErrInvalidInput
		}
		rcv.ReceivedDate = &d
	}
	if input.Category != nil {
		rcv.Category = *input.Category
	}
	if input.Method != nil {
		rcv.Method = *input.Method
	}
	if input.Recurrence != nil {
		rcv.Recurrence = *input.Recurrence
	}
	if input.Status != nil {
		rcv.Status = Status(*input.Status)
	}
	if err := checkSettlement(rcv); err != nil {
		return Receivable{}, err
	}
	updated, err := s.store.Update(ctx, rcv)
	if err != nil {
		return Receivable{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Settle marks a receivable as received with actual date and amount.
func (s *Service) Settle(ctx context.Context, id int64, input SettleInput) (Receivable, error) {
	rcv, err := s.store.Get(ctx, id)
	if err != nil {
		return Receivable{}, err
	}
	d, err := time.Parse("2006-01-02", input.ReceivedDate)
	if err != nil {
		return Receivable{}, ErrInvalidInput
	}
	amount := input.ReceivedAmount
	if amount == 0 {
		amount = rcv.ProjectedAmount
	}
	rcv.Status = StatusReceived
	rcv.ReceivedDate = &d
	rcv.ReceivedAmount = &amount
	updated, err := s.store.Update(ctx, rcv)
	if err != nil {
		return Receivable{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Delete removes a receivable permanently.
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

func fromCreateInput(input CreateReceivableInput) (Receivable, error) {
	projected, err := time.Parse("2006-01-02", input.ProjectedDate)
	if err != nil {
		return Receivable{}, ErrInvalidInput
	}
	rcv := Receivable{
		Kind:            Kind(input.Kind),
		ContractID:      input.ContractID,
		ProjectedAmount: input.ProjectedAmount,
		ReceivedAmount:  input.ReceivedAmount,
		ProjectedDate:   projected,
		Category:        input.Category,
		Method:          input.Method,
		Recurrence:      input.Recurrence,
		Status:          Status(input.Status),
	}
	if rcv.Status == "" {
		rcv.Status = StatusProjected
	}
	if input.ReceivedDate != nil {
		d, err := time.Parse("2006-01-02", *input.ReceivedDate)
		if err != nil {
			return Receivable{}, ErrInvalidInput
		}
		rcv.ReceivedDate = &d
	}
	if err := checkSettlement(rcv); err != nil {
		return Receivable{}, err
	}
	return rcv, nil
}

func checkSettlement(rcv Receivable) error {
	if rcv.Status == StatusReceived && (rcv.ReceivedDate == nil || rcv.ReceivedAmount == nil) {
		return ErrSettlementIncomplete
	}
	return nil
}
