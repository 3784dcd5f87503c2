package sim

import (
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
)

// TargetFrameRate is the frame rate the orbit-scale derivation assumes.
// The renderer is frame-limited to this rate, so per-frame orbit constants
// authored against it stay consistent across speed modes.
const TargetFrameRate = 60.0

// EarthOrbitRate is the reference body's authored per-frame orbit constant:
// the radians Earth advances per frame when OrbitScale is 1. Every other
// body's orbit constant is tuned relative to this value.
const EarthOrbitRate = 0.001

// Snapshot is the per-tick output of the clock: the derived scale factors
// and the simulated date. It is passed explicitly into the orbital updater
// so the updater stays pure.
type Snapshot struct {
	// AccelerationScale multiplies every body's self-rotation constant.
	// Equal to the signed day/sec multiplier; exactly 0 while paused.
	AccelerationScale float64

	// OrbitScale multiplies every body's orbit constant, derived so the
	// reference body completes one revolution in 365.25/|multiplier| real
	// seconds. Exactly 0 while paused or in the stopped mode.
	OrbitScale float64

	// Date is the simulated "now".
	Date time.Time

	// Paused reports whether the clock was frozen for this tick.
	Paused bool
}

// Clock owns the authoritative simulation timestamp. The accumulated
// reference orbit angle is the source of truth; the date is always derived
// from it, so the two representations cannot diverge.
type Clock struct {
	referenceOrbitAngle float64 // accumulated radians for the reference body
	speedIndex          int
	paused              bool
}

// NewClock returns a clock at the epoch with the default speed mode.
func NewClock() *Clock {
	return &Clock{speedIndex: DefaultSpeedIndex}
}

// SetSpeedIndex selects a speed mode. Out-of-range indices are ignored.
// Changing speed never touches the paused flag.
func (c *Clock) SetSpeedIndex(i int) {
	if i < 0 || i >= len(SpeedModes) {
		return
	}
	c.speedIndex = i
}

// StepSpeed moves the speed selection by delta steps, clamped to the table.
func (c *Clock) StepSpeed(delta int) {
	i := c.speedIndex + delta
	if i < 0 {
		i = 0
	}
	if i >= len(SpeedModes) {
		i = len(SpeedModes) - 1
	}
	c.speedIndex = i
}

// Pause freezes the clock. Idempotent.
func (c *Clock) Pause() {
	c.paused = true
}

// Resume unfreezes the clock. Idempotent.
func (c *Clock) Resume() {
	c.paused = false
}

// TogglePause flips the paused flag.
func (c *Clock) TogglePause() {
	c.paused = !c.paused
}

// IsPaused reports whether the clock is frozen.
func (c *Clock) IsPaused() bool {
	return c.paused
}

// SpeedIndex returns the current index into SpeedModes.
func (c *Clock) SpeedIndex() int {
	return c.speedIndex
}

// SpeedLabel returns the current speed mode label for display.
func (c *Clock) SpeedLabel() string {
	return SpeedModes[c.speedIndex].Label
}

// Multiplier returns the current signed days/sec multiplier.
func (c *Clock) Multiplier() float64 {
	return SpeedModes[c.speedIndex].DaysPerSec
}

// Angle returns the accumulated reference orbit angle in radians.
func (c *Clock) Angle() float64 {
	return c.referenceOrbitAngle
}

// Date returns the simulated date derived from the reference angle.
func (c *Clock) Date() time.Time {
	return astro.DateFromDays(c.referenceOrbitAngle / (2 * math.Pi) * astro.DaysPerYear)
}

// SetDate jumps the simulated date, recomputing the reference angle so
// every derived quantity stays consistent.
func (c *Clock) SetDate(t time.Time) {
	c.referenceOrbitAngle = astro.DaysSinceEpoch(t) / astro.DaysPerYear * 2 * math.Pi
}

// Tick advances the clock by wallDeltaSeconds of real time and returns the
// derived snapshot. While paused the angle and date hold still and both
// scales read exactly zero, freezing motion without losing render state.
func (c *Clock) Tick(wallDeltaSeconds float64) Snapshot {
	mult := c.Multiplier()

	if !c.paused {
		c.referenceOrbitAngle += mult * (2 * math.Pi / astro.DaysPerYear) * wallDeltaSeconds
	}

	snap := Snapshot{
		Date:   c.Date(),
		Paused: c.paused,
	}
	if c.paused {
		return snap
	}

	snap.AccelerationScale = mult
	snap.OrbitScale = orbitScale(mult)
	return snap
}

// orbitScale derives the per-frame orbit multiplier for a signed days/sec
// multiplier: one full reference revolution must take 365.25/|mult| real
// seconds at the assumed frame rate. A zero multiplier (the stopped mode)
// yields zero rather than dividing.
func orbitScale(mult float64) float64 {
	if mult == 0 {
		return 0
	}
	targetSeconds := astro.DaysPerYear / math.Abs(mult)
	targetFrames := targetSeconds * TargetFrameRate
	scale := 2 * math.Pi / (EarthOrbitRate * targetFrames)
	if mult < 0 {
		return -scale
	}
	return scale
}
