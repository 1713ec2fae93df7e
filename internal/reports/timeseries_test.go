package reports

import (
	"sort"
	"testing"
	"time"

	"github.com/Lkfarinazzo7/fluxo-maestro/internal/payables"
	"github.com/Lkfarinazzo7/fluxo-maestro/internal/receivables"
)

func customPeriod(start, end time.Time) Period {
	return Resolve(PeriodCustom, &start, &end, testNow)
}

func TestGranularityThresholds(t *testing.T) {
	cases := []struct {
		days int
		want Granularity
	}{
		{1, GranularityDaily},
		{31, GranularityDaily},
		{32, GranularityWeekly},
		{90, GranularityWeekly},
		{91, GranularityMonthly},
		{365, GranularityMonthly},
	}
	for _, tc := range cases {
		start := date(2026, time.January, 1)
		p := customPeriod(start, start.AddDate(0, 0, tc.days-1))
		if p.DaySpan() != tc.days {
			t.Fatalf("span = %d, want %d", p.DaySpan(), tc.days)
		}
		if got := GranularityFor(p); got != tc.want {
			t.Errorf("%d days: granularity = %s, want %s", tc.days, got, tc.want)
		}
	}
}

func TestBuildSeriesOnlySettledInRange(t *testing.T) {
	period := customPeriod(date(2026, time.March, 1), date(2026, time.March, 31))
	rs := []receivables.Receivable{
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(100), ReceivedDate: ptrT(date(2026, time.March, 5))},
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(50), ReceivedDate: ptrT(date(2026, time.March, 5))},
		{Status: receivables.StatusProjected, ProjectedAmount: 999, ProjectedDate: date(2026, time.March, 6)},
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(400), ReceivedDate: ptrT(date(2026, time.April, 1))},
	}
	ps := []payables.Payable{
		{Status: payables.StatusPaid, Amount: 30, PaidDate: ptrT(date(2026, time.March, 5))},
		{Status: payables.StatusPaid, Amount: 70, PaidDate: ptrT(date(2026, time.March, 20))},
		{Status: payables.StatusProjected, Amount: 999, ProjectedDate: date(2026, time.March, 21)},
	}

	series := BuildSeries(rs, ps, period)
	if series.Granularity != GranularityDaily {
		t.Fatalf("granularity = %s", series.Granularity)
	}
	if len(series.Points) != 2 {
		t.Fatalf("points = %d", len(series.Points))
	}
	first := series.Points[0]
	if first.Key != "2026-03-05" || !approx(first.In, 150) || !approx(first.Out, 30) {
		t.Fatalf("first point = %+v", first)
	}
	last := series.Points[len(series.Points)-1]
	if !approx(last.Balance, 150-30-70) {
		t.Fatalf("final balance = %.2f", last.Balance)
	}
}

func TestBuildSeriesOpeningBalance(t *testing.T) {
	period := customPeriod(date(2026, time.March, 1), date(2026, time.March, 31))
	rs := []receivables.Receivable{
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(1000), ReceivedDate: ptrT(date(2026, time.January, 10))},
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(200), ReceivedDate: ptrT(date(2026, time.March, 2))},
	}
	ps := []payables.Payable{
		{Status: payables.StatusPaid, Amount: 400, PaidDate: ptrT(date(2026, time.February, 15))},
	}

	series := BuildSeries(rs, ps, period)
	if !approx(series.OpeningBalance, 600) {
		t.Fatalf("opening balance = %.2f", series.OpeningBalance)
	}
	if len(series.Points) != 1 {
		t.Fatalf("points = %d", len(series.Points))
	}
	if !approx(series.Points[0].Balance, 800) {
		t.Fatalf("running balance = %.2f", series.Points[0].Balance)
	}
}

func TestBuildSeriesKeysAscending(t *testing.T) {
	period := customPeriod(date(2026, time.January, 1), date(2026, time.December, 31))
	var rs []receivables.Receivable
	for _, m := range []time.Month{time.November, time.February, time.July} {
		rs = append(rs, receivables.Receivable{
			Status:         receivables.StatusReceived,
			ReceivedAmount: ptrF(10),
			ReceivedDate:   ptrT(date(2026, m, 10)),
		})
	}

	series := BuildSeries(rs, nil, period)
	if series.Granularity != GranularityMonthly {
		t.Fatalf("granularity = %s", series.Granularity)
	}
	keys := make([]string, len(series.Points))
	for i, pt := range series.Points {
		keys[i] = pt.Key
	}
	if !sort.StringsAreSorted(keys) {
		t.Fatalf("keys not ascending: %v", keys)
	}
	if keys[0] != "2026-02" {
		t.Fatalf("first key = %s", keys[0])
	}
}

func TestBuildSeriesWeeklyKeyAnchorsOnSunday(t *testing.T) {
	period := customPeriod(date(2026, time.March, 1), date(2026, time.April, 30))
	rs := []receivables.Receivable{
		// 2026-03-18 is a Wednesday; its week starts Sunday 2026-03-15.
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(10), ReceivedDate: ptrT(date(2026, time.March, 18))},
	}

	series := BuildSeries(rs, nil, period)
	if series.Granularity != GranularityWeekly {
		t.Fatalf("granularity = %s", series.Granularity)
	}
	if series.Points[0].Key != "2026-03-15" {
		t.Fatalf("week key = %s", series.Points[0].Key)
	}
}

func TestBuildSeriesFinalBalanceEqualsOpeningPlusNet(t *testing.T) {
	period := customPeriod(date(2026, time.March, 1), date(2026, time.March, 31))
	rs := []receivables.Receivable{
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(500), ReceivedDate: ptrT(date(2026, time.February, 1))},
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(120), ReceivedDate: ptrT(date(2026, time.March, 3))},
		{Status: receivables.StatusReceived, ReceivedAmount: ptrF(80), ReceivedDate: ptrT(date(2026, time.March, 28))},
	}
	ps := []payables.Payable{
		{Status: payables.StatusPaid, Amount: 60, PaidDate: ptrT(date(2026, time.March, 10))},
	}

	series := BuildSeries(rs, ps, period)
	var in, out float64
	for _, pt := range series.Points {
		in += pt.In
		out += pt.Out
	}
	want := series.OpeningBalance + in - out
	got := series.Points[len(series.Points)-1].Balance
	if !approx(got, want) {
		t.Fatalf("final balance = %.2f, want %.2f", got, want)
	}
}
