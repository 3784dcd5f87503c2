package astro

import (
	"time"
)

// Epoch is the simulation reference epoch (J2000).
var Epoch = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// DaysPerYear is the length of the reference orbit in simulated days.
const DaysPerYear = 365.25

// secondsPerDay is used for fractional-day conversions.
const secondsPerDay = 86400.0

// DaysSinceEpoch returns the signed number of days (fractional) between
// the epoch and t.
func DaysSinceEpoch(t time.Time) float64 {
	return t.Sub(Epoch).Seconds() / secondsPerDay
}

// DateFromDays returns the date that lies the given number of days
// (fractional, possibly negative) after the epoch.
func DateFromDays(days float64) time.Time {
	return Epoch.Add(time.Duration(days * secondsPerDay * float64(time.Second)))
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Seconds() / secondsPerDay
}
