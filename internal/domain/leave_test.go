package domain

import (
	"testing"
	"time"
)

func TestMonthsEmployed(t *testing.T) {
	t.Parallel()

	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name     string
		hireDate time.Time
		now      time.Time
		want     int
	}{
		{"hired today", date(2026, time.March, 15), date(2026, time.March, 15), 0},
		{"one day short of a month", date(2026, time.January, 15), date(2026, time.February, 14), 0},
		{"exactly one month", date(2026, time.January, 15), date(2026, time.February, 15), 1},
		{"six and a half months", date(2025, time.June, 1), date(2025, time.December, 20), 6},
		{"one year", date(2025, time.March, 10), date(2026, time.March, 10), 12},
		{"across a year boundary", date(2025, time.November, 30), date(2026, time.February, 28), 2},
		{"hire date in the future", date(2026, time.June, 1), date(2026, time.March, 1), 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := MonthsEmployed(tc.hireDate, tc.now); got != tc.want {
				t.Fatalf("MonthsEmployed = %d, want %d", got, tc.want)
			}
		})
	}
}
