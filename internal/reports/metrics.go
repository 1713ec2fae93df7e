package reports

import (
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/contracts"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/receivables"
)

// TypeSplit partitions in-range contracts between individual (PF) and
// corporate (PJ), with each side expressed as a percentage of the total.
type TypeSplit struct {
	PFCount    int     `json:"quantidadePF"`
	PJCount    int     `json:"quantidadePJ"`
	PFValue    float64 `json:"valorPF"`
	PJValue    float64 `json:"valorPJ"`
	PFCountPct float64 `json:"percentualQuantidadePF"`
	PJCountPct float64 `json:"percentualQuantidadePJ"`
	PFValuePct float64 `json:"percentualValorPF"`
	PJValuePct float64 `json:"percentualValorPJ"`
}

// Summary contains the scalar KPIs surfaced on the dashboard.
type Summary struct {
	PeriodRevenue     float64   `json:"receitaPeriodo"`
	ProjectedRevenue  float64   `json:"receitaPrevista"`
	PeriodExpense     float64   `json:"despesaPeriodo"`
	ProjectedExpense  float64   `json:"despesaPrevista"`
	NetResult         float64   `json:"resultadoLiquido"`
	CommissionRevenue float64   `json:"receitaComissoes"`
	ContractCount     int       `json:"quantidadeContratos"`
	ContractValue     float64   `json:"valorContratos"`
	AverageTicket     float64   `json:"ticketMedio"`
	TotalLives        int       `json:"totalVidas"`
	AverageLives      float64   `json:"mediaVidas"`
	AverageProportion float64   `json:"proporcaoMediaContrato"`
	Split             TypeSplit `json:"divisaoPFPJ"`
}

// Summarize aggregates the three entity collections over the resolved
// interval. It is a total function: empty inputs yield all zeros, missing
// optional fields count as zero, and every division is zero-guarded.
func Summarize(cs []contracts.Contract, rs []receivables.Receivable, ps []payables.Payable, period Period) Summary {
	var sum Summary

	for _, r := range rs {
		switch {
		case r.Settled():
			if r.ReceivedDate != nil && period.ContainsDate(*r.ReceivedDate) {
				sum.PeriodRevenue += r.SettledAmount()
			}
		default:
			if period.ContainsDate(r.ProjectedDate) {
				sum.ProjectedRevenue += r.ProjectedAmount
			}
		}
	}

	for _, p := range ps {
		switch {
		case p.Settled():
			if p.PaidDate != nil && period.ContainsDate(*p.PaidDate) {
				sum.PeriodExpense += p.Amount
			}
		default:
			if period.ContainsDate(p.ProjectedDate) {
				sum.ProjectedExpense += p.Amount
			}
		}
	}

	sum.NetResult = sum.PeriodRevenue - sum.PeriodExpense

	var proportionTotal float64
	for _, c := range cs {
		if !period.ContainsDate(c.ImplementationDate) {
			continue
		}
		sum.ContractCount++
		sum.ContractValue += c.MonthlyFee
		sum.CommissionRevenue += c.MonthlyCommission() + c.BonusRevenue()
		sum.TotalLives += c.Lives
		proportionTotal += safeDiv(c.MonthlyCommission()+c.BonusRevenue(), c.MonthlyFee)

		switch c.Type {
		case contracts.TypePF:
			sum.Split.PFCount++
			sum.Split.PFValue += c.MonthlyFee
		case contracts.TypePJ:
			sum.Split.PJCount++
			sum.Split.PJValue += c.MonthlyFee
		}
	}

	count := float64(sum.ContractCount)
	sum.AverageTicket = safeDiv(sum.ContractValue, count)
	sum.AverageLives = safeDiv(float64(sum.TotalLives), count)
	sum.AverageProportion = safeDiv(proportionTotal, count)

	totalSplitCount := float64(sum.Split.PFCount + sum.Split.PJCount)
	totalSplitValue := sum.Split.PFValue + sum.Split.PJValue
	sum.Split.PFCountPct = safeDiv(float64(sum.Split.PFCount)*100, totalSplitCount)
	sum.Split.PJCountPct = safeDiv(float64(sum.Split.PJCount)*100, totalSplitCount)
	sum.Split.PFValuePct = safeDiv(sum.Split.PFValue*100, totalSplitValue)
	sum.Split.PJValuePct = safeDiv(sum.Split.PJValue*100, totalSplitValue)

	return sum
}

// safeDiv divides a by b, defining division by zero as zero.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
