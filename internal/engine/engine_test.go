package engine

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/impact"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/sim"
)

const frameDt = 1.0 / sim.TargetFrameRate

func newTestEngine() *Engine {
	return New(DefaultConfig())
}

func runFrames(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Frame(frameDt)
	}
}

func TestEngine_FrameAdvancesClockAndCountsFrames(t *testing.T) {
	e := newTestEngine()
	start := e.Snapshot().Sim.Date

	runFrames(e, 60) // one second at +1 day/s

	snap := e.Snapshot()
	if snap.Frames != 60 {
		t.Errorf("Frames = %d, want 60", snap.Frames)
	}
	days := astro.DaysBetween(start, snap.Sim.Date)
	if math.Abs(days-1) > 1e-9 {
		t.Errorf("simulated days after 1s = %v, want 1", days)
	}
}

func TestEngine_PauseFreezesSimulation(t *testing.T) {
	e := newTestEngine()
	runFrames(e, 10)
	before := e.Snapshot()

	e.TogglePause()
	runFrames(e, 120)

	snap := e.Snapshot()
	if !snap.Sim.Paused {
		t.Fatal("Sim.Paused = false after TogglePause")
	}
	if !snap.Sim.Date.Equal(before.Sim.Date) {
		t.Errorf("date advanced while paused: %v -> %v", before.Sim.Date, snap.Sim.Date)
	}
	if snap.Sim.AccelerationScale != 0 || snap.Sim.OrbitScale != 0 {
		t.Errorf("paused scales = (%v, %v), want (0, 0)",
			snap.Sim.AccelerationScale, snap.Sim.OrbitScale)
	}
}

func TestEngine_SpeedChangeEvents(t *testing.T) {
	e := newTestEngine()

	e.StepSpeed(+1)
	e.StepSpeed(+1)
	e.StepSpeed(+1) // top of the table, clamped

	snap := e.Snapshot()
	if snap.SpeedLabel != "+5 DAYS/S" {
		t.Errorf("SpeedLabel = %q, want %q", snap.SpeedLabel, "+5 DAYS/S")
	}
	n := 0
	for _, ev := range snap.Events {
		if ev.Type == EventSpeedChange {
			n++
		}
	}
	if n != 2 {
		t.Errorf("speed change events = %d, want 2 (clamped step is silent)", n)
	}
}

func TestEngine_SelectPausesAndRecordsEvent(t *testing.T) {
	e := newTestEngine()

	if !e.Select("Mars") {
		t.Fatal("Select(Mars) = false")
	}
	runFrames(e, 1)

	snap := e.Snapshot()
	if snap.Selected != "Mars" {
		t.Errorf("Selected = %q, want Mars", snap.Selected)
	}
	if !snap.Sim.Paused {
		t.Error("clock not paused during approach")
	}
	if len(snap.Events) == 0 || snap.Events[len(snap.Events)-1].Type != EventBodySelected {
		t.Errorf("last event = %v, want %v", snap.Events, EventBodySelected)
	}

	// Picks are ignored while the camera is in flight.
	if e.Select("Venus") {
		t.Error("Select succeeded during approach")
	}
}

func TestEngine_SelectTargetResolvesAtmosphere(t *testing.T) {
	e := newTestEngine()

	if !e.SelectTarget(scene.AtmosphereTarget("Venus")) {
		t.Fatal("SelectTarget(Venus atmosphere) = false")
	}
	if got := e.Snapshot().Selected; got != "Venus" {
		t.Errorf("Selected = %q, want Venus", got)
	}
	if e.SelectTarget("nonsense/surface") {
		t.Error("SelectTarget resolved an unregistered target")
	}
}

func TestEngine_ConfigureImpactValidation(t *testing.T) {
	e := newTestEngine()
	date := e.Snapshot().Sim.Date

	bad := impact.Config{StartPosition: astro.Vec3{X: 5}}
	if err := e.ConfigureImpact(bad); err != impact.ErrMissingImpactDate {
		t.Fatalf("malformed config err = %v, want %v", err, impact.ErrMissingImpactDate)
	}

	good := impact.Config{
		StartPosition: astro.Vec3{X: 5, Z: 1},
		ImpactDate:    date.AddDate(0, 0, 30),
	}
	if err := e.ConfigureImpact(good); err != nil {
		t.Fatalf("ConfigureImpact() error = %v", err)
	}
	armed := e.Snapshot().Impact
	if !armed.Active {
		t.Fatal("Impact.Active = false after arming")
	}

	// A malformed replacement must leave the live flight alone.
	if err := e.ConfigureImpact(bad); err == nil {
		t.Fatal("malformed replacement accepted")
	}
	if got := e.Snapshot().Impact; !got.Active || got.Impacted {
		t.Errorf("live flight disturbed by rejected config: %+v", got)
	}

	// A valid replacement swaps the flight in place.
	good.ImpactDate = date.AddDate(0, 0, 60)
	if err := e.ConfigureImpact(good); err != nil {
		t.Fatalf("valid replacement error = %v", err)
	}
}

func TestEngine_ImpactDetonatesAndResets(t *testing.T) {
	e := newTestEngine()
	date := e.Snapshot().Sim.Date

	cfg := impact.Config{
		StartPosition: astro.Vec3{X: 5, Z: 1},
		ImpactDate:    date.AddDate(0, 0, 2),
	}
	if err := e.ConfigureImpact(cfg); err != nil {
		t.Fatalf("ConfigureImpact() error = %v", err)
	}

	runFrames(e, 3*60) // three simulated days at +1 day/s

	snap := e.Snapshot()
	if !snap.Impact.Impacted {
		t.Fatal("Impact.Impacted = false after passing the impact date")
	}
	if snap.Impact.Progress != 1 {
		t.Errorf("Impact.Progress = %v, want 1", snap.Impact.Progress)
	}
	if snap.Impact.ActiveEffects == 0 {
		t.Error("no active detonation effects after impact")
	}
	found := false
	for _, ev := range snap.Events {
		if ev.Type == EventImpactDetonated {
			found = true
		}
	}
	if !found {
		t.Errorf("no %v event recorded: %v", EventImpactDetonated, snap.Events)
	}

	e.ResetImpact()
	after := e.Snapshot().Impact
	if after.Active || after.ActiveEffects != 0 {
		t.Errorf("impact state after reset = %+v, want inactive with no effects", after)
	}
}

func TestEngine_EventRingBufferWraps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 4
	e := New(cfg)

	for i := 0; i < 7; i++ {
		e.TogglePause()
	}

	events := e.Snapshot().Events
	if len(events) != 4 {
		t.Fatalf("event count = %d, want 4", len(events))
	}
	// Seven toggles end paused; the newest event must say so.
	if got := events[len(events)-1].Type; got != EventPaused {
		t.Errorf("newest event = %v, want %v", got, EventPaused)
	}
	// Toggles alternate, so the retained window starts with an even one.
	if got := events[0].Type; got != EventResumed {
		t.Errorf("oldest retained event = %v, want %v", got, EventResumed)
	}
}

func TestEngine_SnapshotBodiesIncludeMovingEarth(t *testing.T) {
	e := newTestEngine()
	find := func(name string, bodies []BodyState) (astro.Vec3, bool) {
		for _, b := range bodies {
			if b.Name == name {
				return b.Position, true
			}
		}
		return astro.Vec3{}, false
	}

	before, ok := find("Earth", e.Snapshot().Bodies)
	if !ok {
		t.Fatal("Earth missing from snapshot bodies")
	}
	runFrames(e, 600)
	after, _ := find("Earth", e.Snapshot().Bodies)
	if before == after {
		t.Error("Earth did not move across 10 seconds of simulation")
	}

	var zero time.Time
	if got := e.Snapshot().Sim.Date; got.Equal(zero) {
		t.Error("snapshot date is zero")
	}
}
