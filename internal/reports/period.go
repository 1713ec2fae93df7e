// Package reports implements the financial aggregation core: period
// resolution, range filtering, dashboard metrics, cash-flow bucketing,
// commission rollups and the simplified DRE.
package reports

import "time"

// Period is an inclusive date interval.
type Period struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
}

// Period tokens. Unrecognized tokens resolve to the current calendar month.
const (
	PeriodToday     = "hoje"
	PeriodWeek      = "semana"
	PeriodMonth     = "mes"
	PeriodNextMonth = "proximo-mes"
	PeriodLast7     = "ultimos-7"
	PeriodLast30    = "ultimos-30"
	PeriodCustom    = "personalizado"
)

// Resolve maps a period token to a concrete interval relative to now.
// For the custom token, each missing bound independently defaults to today.
// Invalid input never errors; the fallback is the current calendar month.
func Resolve(token string, customStart, customEnd *time.Time, now time.Time) Period {
	switch token {
	case PeriodToday, "today":
		return Period{Start: startOfDay(now), End: endOfDay(now)}
	case PeriodWeek, "week":
		start := startOfDay(now.AddDate(0, 0, -int(now.Weekday())))
		return Period{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case PeriodMonth, "month":
		return calendarMonth(now)
	case PeriodNextMonth, "next-month":
		return calendarMonth(time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()))
	case PeriodLast7, "last-7":
		return trailingDays(now, 7)
	case PeriodLast30, "last-30":
		return trailingDays(now, 30)
	case PeriodCustom, "custom":
		start, end := now, now
		if customStart != nil {
			start = *customStart
		}
		if customEnd != nil {
			end = *customEnd
		}
		return Period{Start: startOfDay(start), End: endOfDay(end)}
	default:
		return calendarMonth(now)
	}
}

// Contains reports whether t falls inside the interval, inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ContainsDate tests a calendar date regardless of its wall-clock time.
func (p Period) ContainsDate(t time.Time) bool {
	return p.Contains(midday(t, p.Start.Location()))
}

// DaySpan returns the number of calendar days covered, inclusive.
func (p Period) DaySpan() int {
	start := startOfDay(p.Start)
	end := startOfDay(p.End)
	return int(end.Sub(start).Hours()/24) + 1
}

// InRange reports whether a serialized calendar date falls inside the
// interval. Unparseable strings are treated as out of range; no error
// ever propagates to the caller.
func InRange(value string, p Period) bool {
	t, ok := parseDate(value)
	if !ok {
		return false
	}
	return p.ContainsDate(t)
}

func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func midday(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
}

func calendarMonth(t time.Time) Period {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Period{Start: first, End: endOfDay(first.AddDate(0, 1, -1))}
}

func trailingDays(now time.Time, days int) Period {
	return Period{Start: startOfDay(now.AddDate(0, 0, -(days - 1))), End: endOfDay(now)}
}
