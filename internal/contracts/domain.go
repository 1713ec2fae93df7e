package contracts

import (
	"time"
)

// Status enumerates contract statuses.
type Status string

const (
	StatusActive    Status = "ativo"
	StatusCancelled Status = "cancelado"
)

// Type distinguishes individual (PF) from corporate (PJ) contracts.
type Type string

const (
	TypePF Type = "pf"
	TypePJ Type = "pj"
)

// Contract is an insurance policy sold through the brokerage, the unit
// generating recurring commission and bonus revenue.
type Contract struct {
	ID                    int64
	Name                  string
	Carrier               string
	Category              string
	Type                  Type
	MonthlyFee            float64
	CommissionPct         float64
	PerLifeBonus          float64
	Lives                 int
	ImplementationDate    time.Time
	ProjectedReceiptDates []time.Time
	Salesperson           string
	Supervisor            string
	Status                Status
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// MonthlyCommission returns the recurring commission revenue: fee x pct/100.
func (c Contract) MonthlyCommission() float64 {
	return c.MonthlyFee * (c.CommissionPct / 100)
}

// BonusRevenue returns the per-life bonus revenue: bonus x lives.
func (c Contract) BonusRevenue() float64 {
	return c.PerLifeBonus * float64(c.Lives)
}
