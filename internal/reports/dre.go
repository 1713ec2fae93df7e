package reports

import (
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/receivables"
)

// DRE is the simplified income statement: revenue minus variable costs
// minus fixed costs minus taxes.
type DRE struct {
	Revenue            float64 `json:"receita"`
	VariableCosts      float64 `json:"custosVariaveis"`
	FixedCosts         float64 `json:"custosFixos"`
	Taxes              float64 `json:"impostos"`
	ContributionMargin float64 `json:"margemContribuicao"`
	NetResult          float64 `json:"resultadoLiquido"`
	BreakEven          float64 `json:"pontoEquilibrio"`
}

// BuildDRE computes the income statement over settled records in the
// interval. taxRate is a percentage applied on revenue. Break-even is the
// revenue level at which contribution margin covers fixed costs and taxes
// exactly, zero when there is no contribution margin.
func BuildDRE(rs []receivables.Receivable, ps []payables.Payable, period Period, taxRate float64) DRE {
	var dre DRE

	for _, r := range rs {
		if !r.Settled() || r.ReceivedDate == nil {
			continue
		}
		if period.ContainsDate(*r.ReceivedDate) {
			dre.Revenue += r.SettledAmount()
		}
	}

	for _, p := range ps {
		if !p.Settled() || p.PaidDate == nil {
			continue
		}
		if !period.ContainsDate(*p.PaidDate) {
			continue
		}
		if p.ExpenseType == payables.ExpenseFixed {
			dre.FixedCosts += p.Amount
		} else {
			dre.VariableCosts += p.Amount
		}
	}

	dre.Taxes = dre.Revenue * (taxRate / 100)
	dre.ContributionMargin = dre.Revenue - dre.VariableCosts
	dre.NetResult = dre.Revenue - dre.VariableCosts - dre.FixedCosts - dre.Taxes

	marginRatio := safeDiv(dre.ContributionMargin, dre.Revenue)
	dre.BreakEven = safeDiv(dre.FixedCosts+dre.Taxes, marginRatio)

	return dre
}
