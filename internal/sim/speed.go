// Package sim provides the simulation clock: the single authoritative
// simulated timestamp and the per-frame scale factors derived from the
// selected speed mode.
package sim

// Direction classifies a speed mode for display purposes.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionReverse
	DirectionReal
	DirectionStopped
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionReverse:
		return "reverse"
	case DirectionReal:
		return "real"
	case DirectionStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SpeedMode maps a UI speed selection to a signed simulated-days-per-second
// multiplier.
type SpeedMode struct {
	Label      string
	DaysPerSec float64
	Direction  Direction
}

// RealRateMultiplier is the "REAL RATE" multiplier. It is deliberately not
// the physical 1/86400 days/s, which would be imperceptible; a small
// positive value keeps the motion visibly alive.
const RealRateMultiplier = 0.05

// SpeedModes is the ordered speed table. StepSpeed and SetSpeedIndex are
// clamped to this range; attempts to move past either end are no-ops.
var SpeedModes = []SpeedMode{
	{Label: "-5 DAYS/S", DaysPerSec: -5, Direction: DirectionReverse},
	{Label: "-2 DAYS/S", DaysPerSec: -2, Direction: DirectionReverse},
	{Label: "-1 DAY/S", DaysPerSec: -1, Direction: DirectionReverse},
	{Label: "STOPPED", DaysPerSec: 0, Direction: DirectionStopped},
	{Label: "REAL RATE", DaysPerSec: RealRateMultiplier, Direction: DirectionReal},
	{Label: "+1 DAY/S", DaysPerSec: 1, Direction: DirectionForward},
	{Label: "+2 DAYS/S", DaysPerSec: 2, Direction: DirectionForward},
	{Label: "+5 DAYS/S", DaysPerSec: 5, Direction: DirectionForward},
}

// DefaultSpeedIndex selects "+1 DAY/S" at startup.
const DefaultSpeedIndex = 5

// SpeedIndexByLabel returns the index of the mode with the given label,
// or -1 if no mode matches.
func SpeedIndexByLabel(label string) int {
	for i, m := range SpeedModes {
		if m.Label == label {
			return i
		}
	}
	return -1
}
