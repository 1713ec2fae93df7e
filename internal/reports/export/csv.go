// Package export serialises report payloads to CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/reports"
)

// WriteSummaryCSV serialises dashboard KPI metrics to a CSV representation.
func WriteSummaryCSV(w io.Writer, summary reports.Summary, period reports.Period) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Métrica", "Valor"}); err != nil {
		return err
	}
	records := [][]string{
		{"Início", period.Start.Format("2006-01-02")},
		{"Fim", period.End.Format("2006-01-02")},
		{"Receita do Período", formatFloat(summary.PeriodRevenue)},
		{"Receita Prevista", formatFloat(summary.ProjectedRevenue)},
		{"Despesa do Período", formatFloat(summary.PeriodExpense)},
		{"Despesa Prevista", formatFloat(summary.ProjectedExpense)},
		{"Resultado Líquido", formatFloat(summary.NetResult)},
		{"Receita de Comissões", formatFloat(summary.CommissionRevenue)},
		{"Contratos", strconv.Itoa(summary.ContractCount)},
		{"Valor dos Contratos", formatFloat(summary.ContractValue)},
		{"Ticket Médio", formatFloat(summary.AverageTicket)},
		{"Total de Vidas", strconv.Itoa(summary.TotalLives)},
		{"Média de Vidas", formatFloat(summary.AverageLives)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSeriesCSV emits the bucketed cash movement as CSV.
func WriteSeriesCSV(w io.Writer, series reports.Series) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Período", "Entradas", "Saídas", "Saldo Acumulado"}); err != nil {
		return err
	}
	for _, point := range series.Points {
		if err := writer.Write([]string{
			point.Key,
			formatFloat(point.In),
			formatFloat(point.Out),
			formatFloat(point.Balance),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDRECSV prints the simplified income statement to CSV.
func WriteDRECSV(w io.Writer, dre reports.DRE) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Linha", "Valor"}); err != nil {
		return err
	}
	records := [][]string{
		{"Receita", formatFloat(dre.Revenue)},
		{"Custos Variáveis", formatFloat(dre.VariableCosts)},
		{"Custos Fixos", formatFloat(dre.FixedCosts)},
		{"Impostos", formatFloat(dre.Taxes)},
		{"Margem de Contribuição", formatFloat(dre.ContributionMargin)},
		{"Resultado Líquido", formatFloat(dre.NetResult)},
		{"Ponto de Equilíbrio", formatFloat(dre.BreakEven)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCommissionCSV prints the per-person commission rollup to CSV.
func WriteCommissionCSV(w io.Writer, entries []reports.CommissionEntry) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	header := []string{"Nome", "Contratos", "Valor", "Ticket Médio", "Vidas", "Média de Vidas", "Comissão Paga", "Comissão Prevista", "Total"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writer.Write([]string{
			e.Name,
			strconv.Itoa(e.ContractCount),
			formatFloat(e.ContractValue),
			formatFloat(e.AverageTicket),
			strconv.Itoa(e.TotalLives),
			formatFloat(e.AverageLives),
			formatFloat(e.PaidCommission),
			formatFloat(e.ProjectedCommission),
			formatFloat(e.TotalCommission),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
