// Package shared holds small helpers reused across finance modules.
package shared

import "time"

// AnchorDate selects the date used to test period membership for a
// settlement-tracked record: the actual date when settled, the projected
// date otherwise. Both receivables and payables route through this single
// selector so the dispatch rule cannot drift between them.
func AnchorDate(settled bool, actual *time.Time, projected time.Time) time.Time {
	if settled && actual != nil {
		return *actual
	}
	return projected
}

// SettledAmount returns the actual amount when settled, zero otherwise.
// Projected-status actual fields are ignored even when present.
func SettledAmount(settled bool, actual *float64) float64 {
	if settled && actual != nil {
		return *actual
	}
	return 0
}
