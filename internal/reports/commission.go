package reports

import (
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/contracts"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
)

// CommissionEntry is the per-person rollup for the commission report.
type CommissionEntry struct {
	Name                string  `json:"nome"`
	ContractCount       int     `json:"quantidadeContratos"`
	ContractValue       float64 `json:"valorContratos"`
	AverageTicket       float64 `json:"ticketMedio"`
	TotalLives          int     `json:"totalVidas"`
	AverageLives        float64 `json:"mediaVidas"`
	PaidCommission      float64 `json:"comissaoPaga"`
	ProjectedCommission float64 `json:"comissaoPrevista"`
	TotalCommission     float64 `json:"totalComissao"`
}

// CommissionReport builds one entry per roster member. Contracts are
// matched on the responsible-party field for the member's role with the
// implementation date in range. Commission expenses are matched by the
// person foreign key when linked, falling back to exact supplier-name
// equality under the salary category for rows created before the relation
// existed, with the anchor date in range.
func CommissionReport(roster []people.Person, cs []contracts.Contract, ps []payables.Payable, period Period) []CommissionEntry {
	entries := make([]CommissionEntry, 0, len(roster))
	for _, person := range roster {
		entry := CommissionEntry{Name: person.Name}

		for _, c := range cs {
			if responsibleFor(c, person.Role) != person.Name {
				continue
			}
			if !period.ContainsDate(c.ImplementationDate) {
				continue
			}
			entry.ContractCount++
			entry.ContractValue += c.MonthlyFee
			entry.TotalLives += c.Lives
		}
		count := float64(entry.ContractCount)
		entry.AverageTicket = safeDiv(entry.ContractValue, count)
		entry.AverageLives = safeDiv(float64(entry.TotalLives), count)

		for _, p := range ps {
			if !matchesPerson(p, person) {
				continue
			}
			if !period.ContainsDate(p.AnchorDate()) {
				continue
			}
			if p.Settled() {
				entry.PaidCommission += p.Amount
			} else {
				entry.ProjectedCommission += p.Amount
			}
		}
		entry.TotalCommission = entry.PaidCommission + entry.ProjectedCommission

		entries = append(entries, entry)
	}
	return entries
}

func responsibleFor(c contracts.Contract, role people.Role) string {
	if role == people.RoleSupervisor {
		return c.Supervisor
	}
	return c.Salesperson
}

func matchesPerson(p payables.Payable, person people.Person) bool {
	if p.PersonID != nil {
		return *p.PersonID == person.ID
	}
	return p.Supplier == person.Name && p.Category == payables.SalaryCategory
}
