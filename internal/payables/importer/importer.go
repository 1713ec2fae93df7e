// Package importer reads tabular payable spreadsheets, validating each
// row independently and committing the valid ones one by one.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
)

// Canonical column names after header normalization.
const (
	colName     = "nome"
	colAmount   = "valor"
	colCategory = "categoria"
	colType     = "tipo"
	colSupplier = "fornecedor"
	colDate     = "data"
	colPaidDate = "data_paga"
	colMethod   = "forma_pagamento"
	colStatus   = "status"
)

// headerAliases maps normalized header variants (English and Portuguese,
// accents already folded) to canonical columns.
var headerAliases = map[string]string{
	"nome":            colName,
	"name":            colName,
	"descricao":       colName,
	"description":     colName,
	"despesa":         colName,
	"expense":         colName,
	"valor":           colAmount,
	"value":           colAmount,
	"amount":          colAmount,
	"montante":        colAmount,
	"categoria":       colCategory,
	"category":        colCategory,
	"tipo":            colType,
	"type":            colType,
	"fornecedor":      colSupplier,
	"supplier":        colSupplier,
	"vendor":          colSupplier,
	"data":            colDate,
	"date":            colDate,
	"data_prevista":   colDate,
	"due_date":        colDate,
	"vencimento":      colDate,
	"data_paga":       colPaidDate,
	"data_pagamento":  colPaidDate,
	"paid_date":       colPaidDate,
	"payment_date":    colPaidDate,
	"forma_pagamento": colMethod,
	"payment_method":  colMethod,
	"metodo":          colMethod,
	"method":          colMethod,
	"status":          colStatus,
	"situacao":        colStatus,
}

// RowResult is the validation outcome for one spreadsheet row.
type RowResult struct {
	Line    int      `json:"linha"`
	OK      bool     `json:"valida"`
	Reasons []string `json:"motivos,omitempty"`

	input *payables.CreatePayableInput
}

// Report summarises an import run.
type Report struct {
	BatchID   string      `json:"loteId"`
	Total     int         `json:"total"`
	Valid     int         `json:"validas"`
	Invalid   int         `json:"invalidas"`
	Committed int         `json:"gravadas"`
	Rows      []RowResult `json:"linhas"`
}

// PayableCreator commits one validated row.
type PayableCreator interface {
	Create(ctx context.Context, input payables.CreatePayableInput) (payables.Payable, error)
}

// Service parses and commits payable spreadsheets.
type Service struct {
	creator PayableCreator
}

// NewService constructs a Service.
func NewService(creator PayableCreator) *Service {
	return &Service{creator: creator}
}

// Preview parses and validates without committing anything.
func (s *Service) Preview(r io.Reader) (Report, error) {
	return parse(r)
}

// Import parses, validates, and commits every valid row individually.
// A row that fails to insert is flagged in the report; it does not stop
// the remaining rows.
func (s *Service) Import(ctx context.Context, r io.Reader) (Report, error) {
	report, err := parse(r)
	if err != nil {
		return Report{}, err
	}
	for i := range report.Rows {
		row := &report.Rows[i]
		if !row.OK || row.input == nil {
			continue
		}
		if _, err := s.creator.Create(ctx, *row.input); err != nil {
			row.OK = false
			row.Reasons = append(row.Reasons, fmt.Sprintf("gravação falhou: %v", err))
			report.Valid--
			report.Invalid++
			continue
		}
		report.Committed++
	}
	return report, nil
}

func parse(r io.Reader) (Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Report{}, fmt.Errorf("importer: read spreadsheet: %w", err)
	}
	report := Report{BatchID: uuid.NewString()}
	if len(records) == 0 {
		return report, nil
	}

	columns := mapHeader(records[0])
	for i, record := range records[1:] {
		line := i + 2
		result := validateRow(record, columns, line)
		if result.OK {
			report.Valid++
		} else {
			report.Invalid++
		}
		report.Total++
		report.Rows = append(report.Rows, result)
	}
	return report, nil
}

// mapHeader resolves each header cell to a canonical column index.
func mapHeader(header []string) map[string]int {
	columns := map[string]int{}
	for i, cell := range header {
		key := normalizeHeader(cell)
		if canonical, ok := headerAliases[key]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = i
			}
		}
	}
	return columns
}

func validateRow(record []string, columns map[string]int, line int) RowResult {
	result := RowResult{Line: line}
	cell := func(col string) string {
		idx, ok := columns[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var reasons []string

	name := cell(colName)
	if name == "" {
		reasons = append(reasons, "nome ausente")
	}

	amount, okAmount := NormalizeAmount(cell(colAmount))
	if !okAmount {
		reasons = append(reasons, "valor inválido")
	} else if amount < 0 {
		reasons = append(reasons, "valor negativo")
	}

	date, okDate := NormalizeDate(cell(colDate))
	if !okDate {
		reasons = append(reasons, "data inválida")
	}

	expenseType := strings.ToLower(cell(colType))
	if expenseType != "" && expenseType != string(payables.ExpenseFixed) && expenseType != string(payables.ExpenseVariable) {
		reasons = append(reasons, "tipo deve ser fixa ou variavel")
	}

	status := strings.ToLower(cell(colStatus))
	if status != "" && status != string(payables.StatusProjected) && status != string(payables.StatusPaid) {
		reasons = append(reasons, "status deve ser previsto ou pago")
	}

	var paidDate *string
	if raw := cell(colPaidDate); raw != "" {
		d, ok := NormalizeDate(raw)
		if !ok {
			reasons = append(reasons, "data de pagamento inválida")
		} else {
			formatted := d.Format("2006-01-02")
			paidDate = &formatted
		}
	}
	if status == string(payables.StatusPaid) && paidDate == nil {
		reasons = append(reasons, "status pago exige data de pagamento")
	}

	if len(reasons) > 0 {
		result.Reasons = reasons
		return result
	}

	result.OK = true
	result.input = &payables.CreatePayableInput{
		Name:          name,
		Amount:        amount,
		Category:      cell(colCategory),
		ExpenseType:   expenseType,
		Supplier:      cell(colSupplier),
		ProjectedDate: date.Format("2006-01-02"),
		PaidDate:      paidDate,
		Method:        cell(colMethod),
		Status:        status,
	}
	return result
}

// normalizeHeader lowercases, folds accents, and collapses separators so
// "Forma de Pagamento", "forma_pagamento" and "FORMA PAGAMENTO" all meet.
func normalizeHeader(cell string) string {
	folded := foldAccents(strings.ToLower(strings.TrimSpace(cell)))
	folded = strings.ReplaceAll(folded, "-", " ")
	fields := strings.Fields(folded)
	// "forma de pagamento" style connectives add nothing to the key.
	kept := fields[:0]
	for _, f := range fields {
		if f == "de" || f == "da" || f == "do" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, "_")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
