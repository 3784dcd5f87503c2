// Package engine drives the simulation: one Frame call per render tick
// advances the clock, the scene, the impact trajectory, the camera, and
// the detonation effects in a fixed order. All shared state lives behind
// a single lock so the telemetry server can snapshot it concurrently.
package engine

import (
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/impact"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/sim"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventSpeedChange     EventType = "SPEED_CHANGE"
	EventPaused          EventType = "PAUSED"
	EventResumed         EventType = "RESUMED"
	EventBodySelected    EventType = "BODY_SELECTED"
	EventBodyReleased    EventType = "BODY_RELEASED"
	EventImpactArmed     EventType = "IMPACT_ARMED"
	EventImpactDetonated EventType = "IMPACT_DETONATED"
	EventImpactReset     EventType = "IMPACT_RESET"
)

// Event records a state change, stamped with the simulated date at which
// it happened.
type Event struct {
	Type   EventType `json:"type"`
	Date   time.Time `json:"date"`
	Body   string    `json:"body,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// Config holds configuration for the engine.
type Config struct {
	// OverviewPosition is the camera's home pose.
	OverviewPosition astro.Vec3

	// CloseBehavior selects the camera's info-dismiss variant.
	CloseBehavior camera.CloseBehavior

	// SpeedIndex is the initial speed mode.
	SpeedIndex int

	// StartDate sets the initial simulated date when non-zero; the
	// J2000 epoch otherwise.
	StartDate time.Time

	// MaxEvents bounds the event ring buffer.
	MaxEvents int

	Log *logging.Logger
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		OverviewPosition: astro.Vec3{Y: -30, Z: 20},
		CloseBehavior:    camera.CloseZoomOut,
		SpeedIndex:       sim.DefaultSpeedIndex,
		MaxEvents:        50,
	}
}

// Engine owns all mutable simulation state with thread-safe access.
type Engine struct {
	mu sync.RWMutex

	clock  *sim.Clock
	system *scene.System
	cam    *camera.Machine
	traj   *impact.Trajectory

	lastSim sim.Snapshot
	frames  uint64

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	log *logging.Logger
}

// New creates an engine with a fresh solar system.
func New(cfg Config) *Engine {
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}

	clock := sim.NewClock()
	clock.SetSpeedIndex(cfg.SpeedIndex)
	if !cfg.StartDate.IsZero() {
		clock.SetDate(cfg.StartDate)
	}

	system := scene.NewSystem()
	cam := camera.New(camera.Config{
		OverviewPosition: cfg.OverviewPosition,
		CloseBehavior:    cfg.CloseBehavior,
		Offset:           scene.CameraOffset,
	}, clock, system.BodyPosition)

	e := &Engine{
		clock:     clock,
		system:    system,
		cam:       cam,
		traj:      impact.NewTrajectory(),
		events:    make([]Event, 0, maxEvents),
		maxEvents: maxEvents,
		log:       cfg.Log,
	}
	e.lastSim = sim.Snapshot{Date: clock.Date(), Paused: clock.IsPaused()}
	return e
}

// Frame advances the whole simulation by dt seconds of wall time. Order
// matters: the clock produces the snapshot every other subsystem consumes
// this frame.
func (e *Engine) Frame(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.clock.Tick(dt)
	e.system.Advance(snap)

	fired := e.traj.Active() && !e.traj.Impacted()
	e.traj.Update(snap.Date)
	if fired && e.traj.Impacted() {
		e.log.Info("impact detonated at %v", snap.Date.Format("2006-01-02"))
		e.addEvent(Event{Type: EventImpactDetonated, Date: snap.Date})
	}

	e.cam.Tick(dt)
	e.traj.Effects().Advance(dt)

	e.lastSim = snap
	e.frames++
}

// StepSpeed moves the speed mode up or down the authored table.
func (e *Engine) StepSpeed(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	before := e.clock.SpeedIndex()
	e.clock.StepSpeed(delta)
	if e.clock.SpeedIndex() != before {
		e.addEvent(Event{Type: EventSpeedChange, Date: e.clock.Date(), Detail: e.clock.SpeedLabel()})
	}
}

// SetSpeedIndex selects a speed mode directly.
func (e *Engine) SetSpeedIndex(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	before := e.clock.SpeedIndex()
	e.clock.SetSpeedIndex(i)
	if e.clock.SpeedIndex() != before {
		e.addEvent(Event{Type: EventSpeedChange, Date: e.clock.Date(), Detail: e.clock.SpeedLabel()})
	}
}

// TogglePause flips the pause flag.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.TogglePause()
	t := EventResumed
	if e.clock.IsPaused() {
		t = EventPaused
	}
	e.addEvent(Event{Type: t, Date: e.clock.Date()})
}

// Select focuses the camera on a body by name. Returns false when the
// machine is in a phase that ignores picks or the body is unknown.
func (e *Engine) Select(body string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ok bool
	if e.cam.InfoVisible() {
		ok = e.cam.SelectAnother(body)
	} else {
		ok = e.cam.Select(body)
	}
	if ok {
		e.addEvent(Event{Type: EventBodySelected, Date: e.clock.Date(), Body: body})
	}
	return ok
}

// SelectTarget focuses the camera via a pick target ID, so clicks on an
// atmosphere shell land on its planet.
func (e *Engine) SelectTarget(targetID string) bool {
	e.mu.Lock()
	body, ok := e.system.Picks().Resolve(targetID)
	e.mu.Unlock()
	if !ok {
		return false
	}
	return e.Select(body)
}

// ToggleCloseBehavior flips the camera between zoom-out and track on
// info dismissal, returning the new setting.
func (e *Engine) ToggleCloseBehavior() camera.CloseBehavior {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := camera.CloseZoomOut
	if e.cam.CloseBehavior() == camera.CloseZoomOut {
		next = camera.CloseTrack
	}
	e.cam.SetCloseBehavior(next)
	return next
}

// CloseInfo dismisses the info overlay, resuming the clock.
func (e *Engine) CloseInfo() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cam.CloseInfo()
}

// Deselect releases any focused body and starts the zoom back out.
func (e *Engine) Deselect() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if sel := e.cam.Selected(); sel != "" {
		e.addEvent(Event{Type: EventBodyReleased, Date: e.clock.Date(), Body: sel})
	}
	e.cam.Deselect()
}

// ConfigureImpact arms the asteroid flight. Replacing an active flight is
// allowed, but only after the new config validates, so a malformed
// request never disturbs the one in progress.
func (e *Engine) ConfigureImpact(cfg impact.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	date := e.clock.Date()
	if e.traj.Active() {
		if err := cfg.Validate(date); err != nil {
			return err
		}
		e.traj.Reset()
	}
	if err := e.traj.Setup(cfg, date); err != nil {
		return err
	}
	e.log.Info("impact armed for %v", cfg.ImpactDate.Format("2006-01-02"))
	e.addEvent(Event{Type: EventImpactArmed, Date: date, Detail: cfg.ImpactDate.Format("2006-01-02")})
	return nil
}

// ResetImpact clears the flight and any live detonation effects.
func (e *Engine) ResetImpact() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.traj.Active() {
		return
	}
	e.traj.Reset()
	e.addEvent(Event{Type: EventImpactReset, Date: e.clock.Date()})
}

// addEvent adds an event to the ring buffer. Caller holds the lock.
func (e *Engine) addEvent(ev Event) {
	if len(e.events) < e.maxEvents {
		e.events = append(e.events, ev)
	} else {
		e.events[e.eventWriteAt] = ev
		e.eventWriteAt = (e.eventWriteAt + 1) % e.maxEvents
	}
}

// getEventsOrdered returns events oldest-first. Caller holds the lock.
func (e *Engine) getEventsOrdered() []Event {
	out := make([]Event, 0, len(e.events))
	if len(e.events) < e.maxEvents {
		out = append(out, e.events...)
		return out
	}
	out = append(out, e.events[e.eventWriteAt:]...)
	out = append(out, e.events[:e.eventWriteAt]...)
	return out
}

// System exposes the scene for rendering. The render loop runs on the
// same goroutine as Frame, so direct reads are safe there; other
// goroutines must use Snapshot.
func (e *Engine) System() *scene.System {
	return e.system
}

// Camera exposes the focus machine for rendering, same caveat as System.
func (e *Engine) Camera() *camera.Machine {
	return e.cam
}

// Trajectory exposes the impact flight for rendering, same caveat as
// System.
func (e *Engine) Trajectory() *impact.Trajectory {
	return e.traj
}

// ImpactState summarizes the asteroid flight for snapshots.
type ImpactState struct {
	Active        bool
	Impacted      bool
	Progress      float64
	Position      astro.Vec3
	Heat          float64
	DaysToImpact  float64
	ActiveEffects int
}

// BodyState is one body's pose for snapshots.
type BodyState struct {
	Name     string
	Position astro.Vec3
	Spin     float64
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Sim          sim.Snapshot
	SpeedLabel   string
	SpeedIndex   int
	CameraPhase  camera.Phase
	CameraPos    astro.Vec3
	Selected     string
	InfoVisible  bool
	ControlsFree bool
	Frames       uint64
	Impact       ImpactState
	Bodies       []BodyState
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state, safe to call
// from any goroutine.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	bodies := make([]BodyState, 0, len(e.system.Bodies()))
	for _, b := range e.system.Bodies() {
		bodies = append(bodies, BodyState{Name: b.Def.Name, Position: b.Position(), Spin: b.SpinAngle})
	}

	return Snapshot{
		Sim:          e.lastSim,
		SpeedLabel:   e.clock.SpeedLabel(),
		SpeedIndex:   e.clock.SpeedIndex(),
		CameraPhase:  e.cam.Phase(),
		CameraPos:    e.cam.Position(),
		Selected:     e.cam.Selected(),
		InfoVisible:  e.cam.InfoVisible(),
		ControlsFree: e.cam.ControlsFree(),
		Frames:       e.frames,
		Impact: ImpactState{
			Active:        e.traj.Active(),
			Impacted:      e.traj.Impacted(),
			Progress:      e.traj.Progress(),
			Position:      e.traj.Position(),
			Heat:          e.traj.Heat(),
			DaysToImpact:  e.traj.TimeToImpact(e.lastSim.Date),
			ActiveEffects: e.traj.Effects().ActiveCount(),
		},
		Bodies: bodies,
		Events: e.getEventsOrdered(),
	}
}
