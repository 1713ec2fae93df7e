package reports

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 18, 15, 30, 0, 0, time.UTC) // a Wednesday

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveToday(t *testing.T) {
	p := Resolve(PeriodToday, nil, nil, testNow)
	if !p.Start.Equal(date(2026, time.March, 18)) {
		t.Fatalf("start = %v", p.Start)
	}
	if p.End.Day() != 18 || p.End.Hour() != 23 {
		t.Fatalf("end = %v", p.End)
	}
	if p.DaySpan() != 1 {
		t.Fatalf("span = %d", p.DaySpan())
	}
}

func TestResolveWeekStartsSunday(t *testing.T) {
	p := Resolve(PeriodWeek, nil, nil, testNow)
	if p.Start.Weekday() != time.Sunday {
		t.Fatalf("week start weekday = %v", p.Start.Weekday())
	}
	if !p.Start.Equal(date(2026, time.March, 15)) {
		t.Fatalf("week start = %v", p.Start)
	}
	if p.DaySpan() != 7 {
		t.Fatalf("span = %d", p.DaySpan())
	}
}

func TestResolveMonthCoversCalendarMonth(t *testing.T) {
	p := Resolve(PeriodMonth, nil, nil, testNow)
	if !p.Start.Equal(date(2026, time.March, 1)) {
		t.Fatalf("start = %v", p.Start)
	}
	if p.End.Day() != 31 {
		t.Fatalf("end day = %d", p.End.Day())
	}
}

func TestResolveNextMonth(t *testing.T) {
	p := Resolve(PeriodNextMonth, nil, nil, testNow)
	if !p.Start.Equal(date(2026, time.April, 1)) {
		t.Fatalf("start = %v", p.Start)
	}
	if p.End.Month() != time.April || p.End.Day() != 30 {
		t.Fatalf("end = %v", p.End)
	}
}

func TestResolveTrailingWindows(t *testing.T) {
	p7 := Resolve(PeriodLast7, nil, nil, testNow)
	if p7.DaySpan() != 7 {
		t.Fatalf("last-7 span = %d", p7.DaySpan())
	}
	if !p7.ContainsDate(testNow) {
		t.Fatal("last-7 must include today")
	}

	p30 := Resolve(PeriodLast30, nil, nil, testNow)
	if p30.DaySpan() != 30 {
		t.Fatalf("last-30 span = %d", p30.DaySpan())
	}
	if !p30.Start.Equal(date(2026, time.February, 17)) {
		t.Fatalf("last-30 start = %v", p30.Start)
	}
}

func TestResolveCustomDefaultsEachBoundToToday(t *testing.T) {
	start := date(2026, time.January, 10)

	p := Resolve(PeriodCustom, &start, nil, testNow)
	if !p.Start.Equal(start) {
		t.Fatalf("start = %v", p.Start)
	}
	if p.End.Day() != 18 || p.End.Month() != time.March {
		t.Fatalf("end = %v", p.End)
	}

	p = Resolve(PeriodCustom, nil, nil, testNow)
	if p.DaySpan() != 1 {
		t.Fatalf("span with no bounds = %d", p.DaySpan())
	}
}

func TestResolveUnknownTokenFallsBackToMonth(t *testing.T) {
	fallback := Resolve("whatever", nil, nil, testNow)
	month := Resolve(PeriodMonth, nil, nil, testNow)
	if !fallback.Start.Equal(month.Start) || !fallback.End.Equal(month.End) {
		t.Fatalf("fallback = %+v, month = %+v", fallback, month)
	}

	empty := Resolve("", nil, nil, testNow)
	if !empty.Start.Equal(month.Start) {
		t.Fatalf("empty token start = %v", empty.Start)
	}
}

func TestResolveEnglishAliases(t *testing.T) {
	for _, pair := range [][2]string{
		{PeriodToday, "today"},
		{PeriodWeek, "week"},
		{PeriodMonth, "month"},
		{PeriodNextMonth, "next-month"},
		{PeriodLast7, "last-7"},
		{PeriodLast30, "last-30"},
	} {
		pt := Resolve(pair[0], nil, nil, testNow)
		en := Resolve(pair[1], nil, nil, testNow)
		if !pt.Start.Equal(en.Start) || !pt.End.Equal(en.End) {
			t.Fatalf("alias %q differs from %q", pair[1], pair[0])
		}
	}
}

func TestResolveIsIdempotentForFixedNow(t *testing.T) {
	for _, token := range []string{PeriodToday, PeriodWeek, PeriodMonth, PeriodLast30} {
		a := Resolve(token, nil, nil, testNow)
		b := Resolve(token, nil, nil, testNow)
		if !a.Start.Equal(b.Start) || !a.End.Equal(b.End) {
			t.Fatalf("token %q not stable", token)
		}
	}
}

func TestContainsIsInclusive(t *testing.T) {
	p := Resolve(PeriodMonth, nil, nil, testNow)
	if !p.Contains(p.Start) {
		t.Fatal("start must be inside")
	}
	if !p.Contains(p.End) {
		t.Fatal("end must be inside")
	}
	if p.Contains(p.Start.Add(-time.Nanosecond)) {
		t.Fatal("instant before start must be outside")
	}
}

func TestContainsDateIgnoresWallClock(t *testing.T) {
	p := Resolve(PeriodToday, nil, nil, testNow)
	lateTonight := time.Date(2026, time.March, 18, 23, 59, 59, 0, time.UTC)
	if !p.ContainsDate(lateTonight) {
		t.Fatal("same calendar day must be in range")
	}
	if p.ContainsDate(date(2026, time.March, 19)) {
		t.Fatal("next day must be out of range")
	}
}

func TestInRange(t *testing.T) {
	p := Resolve(PeriodMonth, nil, nil, testNow)

	cases := []struct {
		value string
		want  bool
	}{
		{"2026-03-01", true},
		{"2026-03-31", true},
		{"2026-02-28", false},
		{"2026-04-01", false},
		{"2026-03-10T08:00:00Z", true},
		{"not-a-date", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := InRange(tc.value, p); got != tc.want {
			t.Errorf("InRange(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
