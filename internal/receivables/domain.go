package receivables

import (
	"time"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/shared"
)

// Status enumerates receivable statuses.
type Status string

const (
	StatusProjected Status = "previsto"
	StatusReceived  Status = "recebido"
)

// Kind enumerates receivable kinds.
type Kind string

const (
	KindCommission Kind = "comissao"
	KindBonus      Kind = "bonificacao"
	KindAdHoc      Kind = "avulsa"
)

// Receivable is an expected or realized incoming payment.
type Receivable struct {
	ID              int64
	Kind            Kind
	ContractID      *int64
	ProjectedAmount float64
	ReceivedAmount  *float64
	ProjectedDate   time.Time
	ReceivedDate    *time.Time
	Category        string
	Method          string
	Recurrence      string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Settled reports whether the receivable has been received.
func (r Receivable) Settled() bool {
	return r.Status == StatusReceived
}

// AnchorDate is the date used to test period membership.
func (r Receivable) AnchorDate() time.Time {
	return shared.AnchorDate(r.Settled(), r.ReceivedDate, r.ProjectedDate)
}

// SettledAmount is the received amount, or zero while still projected.
func (r Receivable) SettledAmount() float64 {
	return shared.SettledAmount(r.Settled(), r.ReceivedAmount)
}
