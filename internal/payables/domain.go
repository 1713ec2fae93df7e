package payables

import (
	"time"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/shared"
)

// Status enumerates payable statuses.
type Status string

const (
	StatusProjected Status = "previsto"
	StatusPaid      Status = "pago"
)

// ExpenseType distinguishes fixed from variable expenses.
type ExpenseType string

const (
	ExpenseFixed    ExpenseType = "fixa"
	ExpenseVariable ExpenseType = "variavel"
)

// SalaryCategory labels commission payouts to salespeople and supervisors.
const SalaryCategory = "Salários"

// Payable is an expected or realized outgoing payment.
type Payable struct {
	ID               int64
	Name             string
	Amount           float64
	Category         string
	ExpenseType      ExpenseType
	Supplier         string
	PersonID         *int64
	Recurrent        bool
	RecurrenceMonths *int
	ProjectedDate    time.Time
	PaidDate         *time.Time
	Method           string
	ReceiptRef       *string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Settled reports whether the payable has been paid.
func (p Payable) Settled() bool {
	return p.Status == StatusPaid
}

// AnchorDate is the date used to test period membership.
func (p Payable) AnchorDate() time.Time {
	return shared.AnchorDate(p.Settled(), p.PaidDate, p.ProjectedDate)
}

// SettledAmount is the paid amount, or zero while still projected.
// Payables carry a single amount column, so settling does not change it.
func (p Payable) SettledAmount() float64 {
	if p.Settled() {
		return p.Amount
	}
	return 0
}
