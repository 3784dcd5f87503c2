// Package impact implements the scripted asteroid impact scenario: a
// straight-line flight from an arbitrary start point to Earth's predicted
// position at a chosen future date, with a cosmetic gravitational ease on
// the terminal approach and a staged detonation on arrival.
package impact

import (
	"errors"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/scene"
)

// TrailSamples is the number of precomputed trail points.
const TrailSamples = 64

// easeBoundary splits the flight: plain linear interpolation up to this
// progress, quadratic speed-up through the remainder.
const easeBoundary = 0.7

// heatStart is the progress at which the cosmetic emissive ramp begins.
const heatStart = 0.8

// tumbleRate is the fixed per-day rotation applied per axis while in
// flight. Purely cosmetic.
var tumbleRate = astro.Vec3{X: 0.8, Y: 1.3, Z: 0.5}

// Config describes a trajectory. EndPosition overrides the computed
// Earth-at-impact-date target when set; both variants are supported.
type Config struct {
	StartPosition astro.Vec3
	ImpactDate    time.Time
	EndPosition   *astro.Vec3
}

// TrailPoint is one precomputed sample along the flight path.
type TrailPoint struct {
	Position astro.Vec3
	Date     time.Time
	Progress float64
}

var (
	// ErrMissingImpactDate is returned for a zero impact date.
	ErrMissingImpactDate = errors.New("impact: config missing impact date")

	// ErrImpactNotInFuture is returned when the impact date does not lie
	// after the current simulated date.
	ErrImpactNotInFuture = errors.New("impact: impact date must be after the current simulated date")

	// ErrActive is returned when Setup is called while a previous
	// trajectory has not been Reset.
	ErrActive = errors.New("impact: trajectory already active, reset first")

	errMissingStart = errors.New("impact: config missing start position")
)

// Trajectory is the single active impact scenario. At most one instance
// is live at a time; it goes inactive once the impact fires and requires
// an explicit Reset before the next Setup.
type Trajectory struct {
	start     astro.Vec3
	end       astro.Vec3
	startDate time.Time
	impact    time.Time
	trail     []TrailPoint

	active   bool
	impacted bool

	pos      astro.Vec3
	progress float64
	tumble   astro.Vec3
	heat     float64 // 0..1 emissive ramp over the final stretch

	effects *EffectSystem
}

// NewTrajectory returns an inactive trajectory with its own effect system.
func NewTrajectory() *Trajectory {
	return &Trajectory{effects: NewEffectSystem()}
}

// Validate checks a config against the simulated date it would launch
// from, without touching any trajectory state.
func (cfg Config) Validate(startDate time.Time) error {
	if cfg.ImpactDate.IsZero() {
		return ErrMissingImpactDate
	}
	if (cfg.StartPosition == astro.Vec3{}) {
		return errMissingStart
	}
	if !cfg.ImpactDate.After(startDate) {
		return ErrImpactNotInFuture
	}
	return nil
}

// Setup validates and arms the trajectory. startDate is the current
// simulated date at configuration time. A malformed config leaves any
// existing active trajectory untouched.
func (tr *Trajectory) Setup(cfg Config, startDate time.Time) error {
	if tr.active {
		return ErrActive
	}
	if err := cfg.Validate(startDate); err != nil {
		return err
	}

	end := scene.EarthPositionAt(cfg.ImpactDate)
	if cfg.EndPosition != nil {
		end = *cfg.EndPosition
	}

	tr.start = cfg.StartPosition
	tr.end = end
	tr.startDate = startDate
	tr.impact = cfg.ImpactDate
	tr.pos = cfg.StartPosition
	tr.progress = 0
	tr.tumble = astro.Vec3{}
	tr.heat = 0
	tr.impacted = false
	tr.active = true
	tr.buildTrail()
	return nil
}

// buildTrail precomputes evenly spaced samples for visualization. The
// samples follow the eased path so the trail thins out where the body
// accelerates.
func (tr *Trajectory) buildTrail() {
	total := tr.impact.Sub(tr.startDate)
	tr.trail = tr.trail[:0]
	for i := 0; i <= TrailSamples; i++ {
		p := float64(i) / TrailSamples
		tr.trail = append(tr.trail, TrailPoint{
			Position: astro.Lerp(tr.start, tr.end, GravitationalEase(p)),
			Date:     tr.startDate.Add(time.Duration(p * float64(total))),
			Progress: p,
		})
	}
}

// GravitationalEase remaps linear progress so the trailing 30% of the
// flight visibly accelerates: identity up to the boundary, then a
// quadratic through the remainder. Continuous at the boundary and
// monotonically increasing on [0,1].
func GravitationalEase(p float64) float64 {
	if p <= easeBoundary {
		return p
	}
	local := (p - easeBoundary) / (1 - easeBoundary)
	return easeBoundary + local*local*(1-easeBoundary)
}

// Update advances the trajectory to the given simulated date. Before the
// start date the body stays pinned at its start position. Reaching the
// impact date fires the detonation exactly once and deactivates the
// trajectory.
func (tr *Trajectory) Update(current time.Time) {
	if !tr.active || tr.impacted {
		return
	}

	if !current.After(tr.startDate) {
		tr.pos = tr.start
		tr.progress = 0
		return
	}

	if !current.Before(tr.impact) {
		tr.progress = 1
		tr.pos = tr.end
		tr.fireImpact()
		return
	}

	raw := astro.DaysBetween(tr.startDate, current) / astro.DaysBetween(tr.startDate, tr.impact)
	if raw < 0 {
		raw = 0
	} else if raw > 1 {
		raw = 1
	}
	tr.progress = raw
	tr.pos = astro.Lerp(tr.start, tr.end, GravitationalEase(raw))

	// Cosmetic flight dressing: tumble throughout, emissive heat over
	// the final stretch.
	days := astro.DaysBetween(tr.startDate, current)
	tr.tumble = tumbleRate.Scale(days)
	if raw > heatStart {
		tr.heat = (raw - heatStart) / (1 - heatStart)
	} else {
		tr.heat = 0
	}
}

// fireImpact launches the staged detonation and retires the trajectory.
func (tr *Trajectory) fireImpact() {
	tr.impacted = true
	tr.effects.SpawnDetonation(tr.end)
}

// Reset clears the trajectory and any live effects so Setup may run again.
func (tr *Trajectory) Reset() {
	tr.active = false
	tr.impacted = false
	tr.progress = 0
	tr.trail = nil
	tr.effects.Clear()
}

// Active reports whether a trajectory is armed (including post-impact,
// until Reset).
func (tr *Trajectory) Active() bool {
	return tr.active
}

// Impacted reports whether the detonation has fired.
func (tr *Trajectory) Impacted() bool {
	return tr.impacted
}

// Progress returns the raw (un-eased) flight progress in [0,1].
func (tr *Trajectory) Progress() float64 {
	return tr.progress
}

// Position returns the body's current world position.
func (tr *Trajectory) Position() astro.Vec3 {
	return tr.pos
}

// Tumble returns the accumulated cosmetic rotation angles.
func (tr *Trajectory) Tumble() astro.Vec3 {
	return tr.tumble
}

// Heat returns the emissive ramp in [0,1] for the terminal approach.
func (tr *Trajectory) Heat() float64 {
	return tr.heat
}

// Trail returns the precomputed trail samples.
func (tr *Trajectory) Trail() []TrailPoint {
	return tr.trail
}

// Effects returns the detonation effect system for the frame driver.
func (tr *Trajectory) Effects() *EffectSystem {
	return tr.effects
}

// TimeToImpact returns the signed days remaining until impact at the
// given simulated date. Negative once the date has passed the impact.
func (tr *Trajectory) TimeToImpact(current time.Time) float64 {
	if !tr.active {
		return 0
	}
	return astro.DaysBetween(current, tr.impact)
}
