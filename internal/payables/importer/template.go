package importer

import (
	"encoding/csv"
	"io"
)

// WriteTemplateCSV writes the import template with the canonical header
// and two filled example rows.
func WriteTemplateCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"nome", "valor", "categoria", "tipo", "fornecedor", "data", "data_paga", "forma_pagamento", "status"},
		{"Aluguel escritório", "2500,00", "Aluguel", "fixa", "Imobiliária Central", "2026-01-05", "", "boleto", "previsto"},
		{"Comissão Ana", "350,00", "Salários", "variavel", "Ana Souza", "2026-01-10", "2026-01-10", "pix", "pago"},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
