package reports

import (
	"testing"
	"time"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/contracts"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/people"
)

func ptrI(v int64) *int64 { return &v }

func TestCommissionReportMatchesByPersonID(t *testing.T) {
	period := marchPeriod()
	roster := []people.Person{{ID: 1, Name: "Ana Souza", Role: people.RoleSalesperson}}
	cs := []contracts.Contract{
		{Salesperson: "Ana Souza", MonthlyFee: 1200, Lives: 4, ImplementationDate: date(2026, time.March, 3)},
		{Salesperson: "Outra Pessoa", MonthlyFee: 900, Lives: 2, ImplementationDate: date(2026, time.March, 5)},
	}
	ps := []payables.Payable{
		{PersonID: ptrI(1), Amount: 200, Status: payables.StatusPaid, PaidDate: ptrT(date(2026, time.March, 8)), ProjectedDate: date(2026, time.March, 8)},
		{PersonID: ptrI(1), Amount: 150, Status: payables.StatusProjected, ProjectedDate: date(2026, time.March, 25)},
		{PersonID: ptrI(2), Amount: 999, Status: payables.StatusPaid, PaidDate: ptrT(date(2026, time.March, 9)), ProjectedDate: date(2026, time.March, 9)},
	}

	entries := CommissionReport(roster, cs, ps, period)
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	e := entries[0]
	if e.ContractCount != 1 || !approx(e.ContractValue, 1200) {
		t.Fatalf("contracts = %+v", e)
	}
	if !approx(e.PaidCommission, 200) {
		t.Fatalf("paid = %.2f", e.PaidCommission)
	}
	if !approx(e.ProjectedCommission, 150) {
		t.Fatalf("projected = %.2f", e.ProjectedCommission)
	}
	if !approx(e.TotalCommission, 350) {
		t.Fatalf("total = %.2f", e.TotalCommission)
	}
}

func TestCommissionReportLegacyNameFallback(t *testing.T) {
	period := marchPeriod()
	roster := []people.Person{{ID: 7, Name: "Ana Souza", Role: people.RoleSalesperson}}
	ps := []payables.Payable{
		// No person link; matches on supplier name under the salary category.
		{Supplier: "Ana Souza", Category: payables.SalaryCategory, Amount: 200, Status: payables.StatusPaid, PaidDate: ptrT(date(2026, time.March, 8)), ProjectedDate: date(2026, time.March, 8)},
		// Same supplier, wrong category: a regular purchase, not commission.
		{Supplier: "Ana Souza", Category: "Material", Amount: 50, Status: payables.StatusPaid, PaidDate: ptrT(date(2026, time.March, 9)), ProjectedDate: date(2026, time.March, 9)},
		// Linked to a different person entirely, name coincidence must not win.
		{PersonID: ptrI(99), Supplier: "Ana Souza", Category: payables.SalaryCategory, Amount: 80, Status: payables.StatusPaid, PaidDate: ptrT(date(2026, time.March, 10)), ProjectedDate: date(2026, time.March, 10)},
	}

	entries := CommissionReport(roster, nil, ps, period)
	if !approx(entries[0].PaidCommission, 200) {
		t.Fatalf("paid = %.2f", entries[0].PaidCommission)
	}
}

func TestCommissionReportSupervisorUsesSupervisorField(t *testing.T) {
	period := marchPeriod()
	roster := []people.Person{{ID: 3, Name: "Carla Mendes", Role: people.RoleSupervisor}}
	cs := []contracts.Contract{
		{Salesperson: "Carla Mendes", Supervisor: "Outro", MonthlyFee: 500, Lives: 1, ImplementationDate: date(2026, time.March, 4)},
		{Salesperson: "Ana", Supervisor: "Carla Mendes", MonthlyFee: 800, Lives: 6, ImplementationDate: date(2026, time.March, 6)},
	}

	entries := CommissionReport(roster, cs, nil, period)
	e := entries[0]
	if e.ContractCount != 1 || !approx(e.ContractValue, 800) || e.TotalLives != 6 {
		t.Fatalf("supervisor entry = %+v", e)
	}
}

func TestCommissionReportUsesAnchorDate(t *testing.T) {
	period := marchPeriod()
	roster := []people.Person{{ID: 1, Name: "Ana Souza", Role: people.RoleSalesperson}}
	ps := []payables.Payable{
		// Projected for February but paid in March: in range via paid date.
		{PersonID: ptrI(1), Amount: 100, Status: payables.StatusPaid, ProjectedDate: date(2026, time.February, 25), PaidDate: ptrT(date(2026, time.March, 2))},
		// Projected for March but paid in April: out of range.
		{PersonID: ptrI(1), Amount: 300, Status: payables.StatusPaid, ProjectedDate: date(2026, time.March, 25), PaidDate: ptrT(date(2026, time.April, 2))},
	}

	entries := CommissionReport(roster, nil, ps, period)
	if !approx(entries[0].PaidCommission, 100) {
		t.Fatalf("paid = %.2f", entries[0].PaidCommission)
	}
}

func TestCommissionReportEmptyRosterMemberIsZeroed(t *testing.T) {
	entries := CommissionReport([]people.Person{{ID: 5, Name: "Sem Carteira", Role: people.RoleSalesperson}}, nil, nil, marchPeriod())
	e := entries[0]
	if e.ContractCount != 0 || e.AverageTicket != 0 || e.TotalCommission != 0 {
		t.Fatalf("expected zeroed entry, got %+v", e)
	}
}
