package astro

import (
	"testing"
	"time"
)

func TestDaysSinceEpoch(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"epoch itself", Epoch, 0},
		{"one day after", Epoch.AddDate(0, 0, 1), 1},
		{"half day after", Epoch.Add(12 * time.Hour), 0.5},
		{"ten days before", Epoch.AddDate(0, 0, -10), -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSinceEpoch(tt.t); !approxEq(got, tt.want, 1e-9) {
				t.Errorf("DaysSinceEpoch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateFromDays_RoundTrip(t *testing.T) {
	for _, days := range []float64{0, 1, 365.25, -100, 0.125} {
		got := DaysSinceEpoch(DateFromDays(days))
		if !approxEq(got, days, 1e-6) {
			t.Errorf("round trip for %v days = %v", days, got)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 90)

	if got := DaysBetween(a, b); !approxEq(got, 90, 1e-9) {
		t.Errorf("DaysBetween(a, b) = %v, want 90", got)
	}
	if got := DaysBetween(b, a); !approxEq(got, -90, 1e-9) {
		t.Errorf("DaysBetween(b, a) = %v, want -90", got)
	}
}
