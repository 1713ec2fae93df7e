package importer

import (
	"strconv"
	"strings"
	"time"
)

// excelEpoch is day zero of the 1900 date system, adjusted for the
// spurious 1900 leap day spreadsheets inherited from Lotus 1-2-3.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// NormalizeDate parses a spreadsheet date cell: ISO (2006-01-02),
// slash-delimited (02/01/2006 day first, or 2006/01/02), or a numeric
// spreadsheet serial. Returns false when no form matches.
func NormalizeDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", cell); err == nil {
		return t, true
	}
	if t, err := time.Parse("02/01/2006", cell); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006/01/02", cell); err == nil {
		return t, true
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		days := int(serial)
		return excelEpoch.AddDate(0, 0, days), true
	}
	return time.Time{}, false
}

// NormalizeAmount parses a monetary cell accepting both decimal-point and
// Brazilian comma-decimal notation, with optional thousand separators and
// a currency prefix.
func NormalizeAmount(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	cell = strings.TrimPrefix(cell, "R$")
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	if strings.Contains(cell, ",") {
		cell = strings.ReplaceAll(cell, ".", "")
		cell = strings.ReplaceAll(cell, ",", ".")
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
