package sim

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
)

func TestNewClock(t *testing.T) {
	c := NewClock()

	if c.SpeedIndex() != DefaultSpeedIndex {
		t.Errorf("SpeedIndex = %d, want %d", c.SpeedIndex(), DefaultSpeedIndex)
	}
	if c.SpeedLabel() != "+1 DAY/S" {
		t.Errorf("SpeedLabel = %q, want %q", c.SpeedLabel(), "+1 DAY/S")
	}
	if c.IsPaused() {
		t.Error("clock should start unpaused")
	}
	if !c.Date().Equal(astro.Epoch) {
		t.Errorf("Date = %v, want epoch %v", c.Date(), astro.Epoch)
	}
}

func TestClock_SetSpeedIndexBounds(t *testing.T) {
	c := NewClock()

	for _, i := range []int{-1, -100, len(SpeedModes), len(SpeedModes) + 50} {
		c.SetSpeedIndex(i)
		if got := c.SpeedIndex(); got != DefaultSpeedIndex {
			t.Errorf("SetSpeedIndex(%d) changed index to %d, want no-op", i, got)
		}
	}

	c.SetSpeedIndex(0)
	if c.SpeedIndex() != 0 {
		t.Errorf("SpeedIndex = %d, want 0", c.SpeedIndex())
	}
}

func TestClock_StepSpeedClamps(t *testing.T) {
	c := NewClock()

	c.StepSpeed(1000)
	if got := c.SpeedIndex(); got != len(SpeedModes)-1 {
		t.Errorf("StepSpeed(+1000) index = %d, want %d", got, len(SpeedModes)-1)
	}

	c.StepSpeed(-1000)
	if got := c.SpeedIndex(); got != 0 {
		t.Errorf("StepSpeed(-1000) index = %d, want 0", got)
	}
}

func TestClock_OneYearScenario(t *testing.T) {
	// "+1 DAY/S", one tick of 365.25 wall seconds: exactly one reference
	// revolution and exactly one simulated year.
	c := NewClock()
	c.SetSpeedIndex(SpeedIndexByLabel("+1 DAY/S"))

	c.Tick(astro.DaysPerYear)

	if got, want := c.Angle(), 2*math.Pi; math.Abs(got-want) > 1e-9 {
		t.Errorf("Angle = %v, want 2π (%v)", got, want)
	}

	wantDate := astro.Epoch.Add(time.Duration(astro.DaysPerYear * 24 * float64(time.Hour)))
	if diff := c.Date().Sub(wantDate); diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("Date = %v, want %v (diff %v)", c.Date(), wantDate, diff)
	}
}

func TestClock_Determinism(t *testing.T) {
	run := func() float64 {
		c := NewClock()
		c.SetSpeedIndex(SpeedIndexByLabel("+2 DAYS/S"))
		for i := 0; i < 1000; i++ {
			c.Tick(1.0 / 60.0)
		}
		return c.Angle()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("identical tick sequences diverged: %v != %v", a, b)
	}
}

func TestClock_PauseFreeze(t *testing.T) {
	c := NewClock()
	c.Tick(10)
	angle := c.Angle()
	date := c.Date()

	c.Pause()
	for i := 0; i < 100; i++ {
		snap := c.Tick(5)
		if snap.AccelerationScale != 0 {
			t.Fatalf("AccelerationScale = %v while paused, want 0", snap.AccelerationScale)
		}
		if snap.OrbitScale != 0 {
			t.Fatalf("OrbitScale = %v while paused, want 0", snap.OrbitScale)
		}
		if !snap.Paused {
			t.Fatal("snapshot should report paused")
		}
	}

	if c.Angle() != angle {
		t.Errorf("Angle moved while paused: %v -> %v", angle, c.Angle())
	}
	if !c.Date().Equal(date) {
		t.Errorf("Date moved while paused: %v -> %v", date, c.Date())
	}

	// Resume and verify motion restarts.
	c.Resume()
	c.Tick(1)
	if c.Angle() == angle {
		t.Error("Angle did not advance after Resume")
	}
}

func TestClock_PauseIdempotent(t *testing.T) {
	c := NewClock()
	c.Pause()
	c.Pause()
	if !c.IsPaused() {
		t.Error("clock should be paused")
	}
	c.Resume()
	c.Resume()
	if c.IsPaused() {
		t.Error("clock should be resumed")
	}
}

func TestClock_SpeedChangeKeepsPausedFlag(t *testing.T) {
	c := NewClock()
	c.Pause()
	c.SetSpeedIndex(0)
	if !c.IsPaused() {
		t.Error("SetSpeedIndex must not resume the clock")
	}
}

func TestOrbitScale_SignSymmetry(t *testing.T) {
	for _, m := range []float64{0.05, 1, 2, 5} {
		pos := orbitScale(m)
		neg := orbitScale(-m)

		if pos <= 0 {
			t.Errorf("orbitScale(%v) = %v, want > 0", m, pos)
		}
		if math.Abs(pos) != math.Abs(neg) {
			t.Errorf("magnitude mismatch for ±%v: %v vs %v", m, pos, neg)
		}
		if neg >= 0 {
			t.Errorf("orbitScale(-%v) = %v, want < 0", m, neg)
		}
	}
}

func TestOrbitScale_StoppedMode(t *testing.T) {
	if got := orbitScale(0); got != 0 {
		t.Errorf("orbitScale(0) = %v, want 0 (no division)", got)
	}

	c := NewClock()
	c.SetSpeedIndex(SpeedIndexByLabel("STOPPED"))
	snap := c.Tick(1)
	if snap.OrbitScale != 0 || snap.AccelerationScale != 0 {
		t.Errorf("stopped mode scales = (%v, %v), want (0, 0)",
			snap.AccelerationScale, snap.OrbitScale)
	}
	if snap.Paused {
		t.Error("stopped mode is not the same as paused")
	}
}

func TestOrbitScale_ReferenceRevolution(t *testing.T) {
	// At +1 day/s the reference body must accumulate 2π over
	// 365.25 * TargetFrameRate frames of EarthOrbitRate * OrbitScale.
	scale := orbitScale(1)
	frames := astro.DaysPerYear * TargetFrameRate
	total := EarthOrbitRate * scale * frames

	if math.Abs(total-2*math.Pi) > 1e-9 {
		t.Errorf("reference revolution = %v rad, want 2π", total)
	}
}

func TestClock_ReverseMotion(t *testing.T) {
	c := NewClock()
	c.SetSpeedIndex(SpeedIndexByLabel("-1 DAY/S"))

	snap := c.Tick(10)
	if c.Angle() >= 0 {
		t.Errorf("Angle = %v, want negative under reverse mode", c.Angle())
	}
	if snap.OrbitScale >= 0 {
		t.Errorf("OrbitScale = %v, want negative", snap.OrbitScale)
	}
	if snap.AccelerationScale != -1 {
		t.Errorf("AccelerationScale = %v, want -1", snap.AccelerationScale)
	}
	if !c.Date().Before(astro.Epoch) {
		t.Errorf("Date = %v, want before epoch", c.Date())
	}
}

func TestSpeedIndexByLabel(t *testing.T) {
	if got := SpeedIndexByLabel("REAL RATE"); SpeedModes[got].Direction != DirectionReal {
		t.Errorf("REAL RATE index %d has direction %v", got, SpeedModes[got].Direction)
	}
	if got := SpeedIndexByLabel("nope"); got != -1 {
		t.Errorf("unknown label index = %d, want -1", got)
	}
}
