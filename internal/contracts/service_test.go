package contracts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	rows   map[int64]Contract
	nextID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[int64]Contract)}
}

func (s *memoryStore) Create(ctx context.Context, c Contract) (Contract, error) {
	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = c
	return c, nil
}

func (s *memoryStore) Get(ctx context.Context, id int64) (Contract, error) {
	c, ok := s.rows[id]
	if !ok {
		return Contract{}, ErrNotFound
	}
	return c, nil
}

func (s *memoryStore) List(ctx context.Context, filter ListFilter) ([]Contract, error) {
	var out []Contract
	for _, c := range s.rows {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *memoryStore) Update(ctx context.Context, c Contract) (Contract, error) {
	if _, ok := s.rows[c.ID]; !ok {
		return Contract{}, ErrNotFound
	}
	s.rows[c.ID] = c
	return c, nil
}

func (s *memoryStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type countingBumper struct {
	bumps int
}

func (b *countingBumper) Bump(ctx context.Context) error {
	b.bumps++
	return nil
}

func validInput() CreateContractInput {
	return CreateContractInput{
		Name:               "Empresa Alfa Ltda",
		Carrier:            "Amil",
		Category:           "Saúde",
		Type:               "pj",
		MonthlyFee:         4800,
		CommissionPct:      10,
		PerLifeBonus:       5,
		Lives:              32,
		ImplementationDate: "2026-03-01",
		Salesperson:        "Ana Souza",
		Supervisor:         "Carla Mendes",
	}
}

func TestCreateDefaultsToActive(t *testing.T) {
	bumper := &countingBumper{}
	svc := NewService(newMemoryStore(), bumper)

	c, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, StatusActive, c.Status)
	require.Equal(t, int64(1), c.ID)
	require.Equal(t, 1, bumper.bumps)
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)

	input := validInput()
	input.ImplementationDate = "01/03/2026"
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateParsesProjectedReceiptDates(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)

	input := validInput()
	input.ProjectedReceiptDates = []string{"2026-04-10", "2026-05-10"}
	c, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, c.ProjectedReceiptDates, 2)
	require.Equal(t, "2026-04-10", c.ProjectedReceiptDates[0].Format("2006-01-02"))
}

func TestPatchMergesOnlyProvidedFields(t *testing.T) {
	bumper := &countingBumper{}
	svc := NewService(newMemoryStore(), bumper)
	ctx := context.Background()

	c, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	fee := 5200.0
	status := "cancelado"
	patched, err := svc.Patch(ctx, c.ID, PatchContractInput{MonthlyFee: &fee, Status: &status})
	require.NoError(t, err)
	require.Equal(t, 5200.0, patched.MonthlyFee)
	require.Equal(t, StatusCancelled, patched.Status)
	require.Equal(t, "Empresa Alfa Ltda", patched.Name)
	require.Equal(t, 32, patched.Lives)
	require.Equal(t, 2, bumper.bumps)
}

func TestPatchUnknownIDFails(t *testing.T) {
	svc := NewService(newMemoryStore(), nil)

	name := "x"
	_, err := svc.Patch(context.Background(), 42, PatchContractInput{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBumpsCache(t *testing.T) {
	bumper := &countingBumper{}
	svc := NewService(newMemoryStore(), bumper)
	ctx := context.Background()

	c, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, c.ID))
	require.Equal(t, 2, bumper.bumps)

	require.ErrorIs(t, svc.Delete(ctx, c.ID), ErrNotFound)
	require.Equal(t, 2, bumper.bumps, "failed delete must not bump")
}

func TestMonthlyCommissionAndBonus(t *testing.T) {
	c := Contract{MonthlyFee: 1000, CommissionPct: 10, PerLifeBonus: 2, Lives: 5}
	require.InDelta(t, 100.0, c.MonthlyCommission(), 1e-9)
	require.InDelta(t, 10.0, c.BonusRevenue(), 1e-9)
}

func TestValidateInputFlattensFieldErrors(t *testing.T) {
	fields := ValidateInput(CreateContractInput{Type: "ltda", Lives: 0})
	require.NotEmpty(t, fields)
	require.Contains(t, fields, "Name")
	require.Contains(t, fields, "Type")
	require.Contains(t, fields, "Lives")

	require.Nil(t, ValidateInput(validInput()))
}
