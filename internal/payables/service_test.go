package payables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "github.com/Lkfarinazzo7/fluxo-maestro/internal/testing/guard"
)

type memoryStore struct {
	rows   map[int64]Payable
	nextID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[int64]Payable)}
}

func (s *memoryStore) Create(ctx context.Context, p Payable) (Payable, error) {
	s.nextID++
	p.ID = s.nextID
	s.rows[p.ID] = p
	return p, nil
}

func (s *memoryStore) Get(ctx context.Context, id int64) (Payable, error) {
	p, ok := s.rows[id]
	if !ok {
		return Payable{}, ErrNotFound
	}
	return p, nil
}

func (s *memoryStore) List(ctx context.Context) ([]Payable, error) {
	var out []Payable
	for _, p := range s.rows {
		out = append(out, p)
	}
	return out, nil
}

func (s *memoryStore) Update(ctx context.Context, p Payable) (Payable, error) {
	if _, ok := s.rows[p.ID]; !ok {
		return Payable{}, ErrNotFound
	}
	s.rows[p.ID] = p
	return p, nil
}

func (s *memoryStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)

	p, err := svc.Create(context.Background(), CreatePayableInput{
		Name:          "Aluguel",
		Amount:        2500,
		ProjectedDate: "2026-03-05",
	})
	require.NoError(t, err)
	require.Equal(t, StatusProjected, p.Status)
	require.Equal(t, ExpenseVariable, p.ExpenseType)
}

func TestCreatePaidRequiresPaidDate(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)

	_, err := svc.Create(context.Background(), CreatePayableInput{
		Name:          "Aluguel",
		Amount:        2500,
		ProjectedDate: "2026-03-05",
		Status:        "pago",
	})
	require.ErrorIs(t, err, ErrSettlementIncomplete)
}

func TestPaySetsStatusAndDate(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreatePayableInput{
		Name:          "Aluguel",
		Amount:        2500,
		ProjectedDate: "2026-03-05",
	})
	require.NoError(t, err)

	paid, err := svc.Pay(ctx, p.ID, PayInput{PaidDate: "2026-03-06"})
	require.NoError(t, err)
	require.Equal(t, StatusPaid, paid.Status)
	require.Equal(t, "2026-03-06", paid.PaidDate.Format("2006-01-02"))
	require.True(t, paid.Settled())
	require.InDelta(t, 2500.0, paid.SettledAmount(), 1e-9)
	require.Equal(t, "2026-03-06", paid.AnchorDate().Format("2006-01-02"))
}

func TestMaterializeRecurringCreatesMissingInstance(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePayableInput{
		Name:          "Aluguel",
		Amount:        2500,
		ExpenseType:   "fixa",
		Recurrent:     true,
		ProjectedDate: "2026-01-05",
	})
	require.NoError(t, err)

	created, err := svc.MaterializeRecurring(ctx, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, created)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	var instance Payable
	for _, p := range all {
		if p.ProjectedDate.Month() == time.March {
			instance = p
		}
	}
	require.Equal(t, "2026-03-05", instance.ProjectedDate.Format("2006-01-02"))
	require.Equal(t, StatusProjected, instance.Status)
	require.False(t, instance.Recurrent, "instances must not recur themselves")
}

func TestMaterializeRecurringIsIdempotentPerMonth(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePayableInput{
		Name:          "Aluguel",
		Amount:        2500,
		Recurrent:     true,
		ProjectedDate: "2026-01-05",
	})
	require.NoError(t, err)

	ref := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.MaterializeRecurring(ctx, ref)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	created, err = svc.MaterializeRecurring(ctx, ref)
	require.NoError(t, err)
	require.Zero(t, created)
}

func TestMaterializeRecurringHonorsWindow(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	months := 2
	_, err := svc.Create(ctx, CreatePayableInput{
		Name:             "Consultoria",
		Amount:           900,
		Recurrent:        true,
		RecurrenceMonths: &months,
		ProjectedDate:    "2026-01-10",
	})
	require.NoError(t, err)

	created, err := svc.MaterializeRecurring(ctx, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, created, "second month still inside the window")

	created, err = svc.MaterializeRecurring(ctx, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Zero(t, created, "past the recurrence window")
}

func TestMaterializeRecurringClampsDayToMonthEnd(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePayableInput{
		Name:          "Licença",
		Amount:        300,
		Recurrent:     true,
		ProjectedDate: "2026-01-31",
	})
	require.NoError(t, err)

	created, err := svc.MaterializeRecurring(ctx, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, created)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	for _, p := range all {
		if p.ProjectedDate.Month() == time.February {
			require.Equal(t, "2026-02-28", p.ProjectedDate.Format("2006-01-02"))
		}
	}
}

func TestMaterializeRecurringSkipsFutureTemplates(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePayableInput{
		Name:          "Evento",
		Amount:        100,
		Recurrent:     true,
		ProjectedDate: "2026-06-01",
	})
	require.NoError(t, err)

	created, err := svc.MaterializeRecurring(ctx, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Zero(t, created)
}
