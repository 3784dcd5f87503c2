// Package camera implements the focus state machine: selecting a body
// pauses the simulation and flies the camera to a framing position, and
// closing the info overlay either zooms back to the overview or parks the
// camera in a tracking offset over the moving body.
package camera

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Phase is the state machine's current state.
type Phase int

const (
	Idle Phase = iota
	MovingToTarget
	ShowingInfo
	ZoomingOut
	Tracking
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case MovingToTarget:
		return "moving"
	case ShowingInfo:
		return "info"
	case ZoomingOut:
		return "zooming-out"
	case Tracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// CloseBehavior selects what happens when the info overlay is dismissed.
// Both close variants are supported as configuration.
type CloseBehavior int

const (
	// CloseZoomOut eases the camera back to the overview pose and frees
	// all controls.
	CloseZoomOut CloseBehavior = iota

	// CloseTrack snaps the camera (no easing) to a fixed offset over the
	// body and re-copies body position + offset every frame, leaving the
	// look direction free.
	CloseTrack
)

// Clock is the pause/resume surface the machine drives. Selection always
// pauses; dismissal always resumes.
type Clock interface {
	Pause()
	Resume()
}

// PositionFunc is the body-location query supplied by the scene layer.
type PositionFunc func(name string) (astro.Vec3, bool)

const (
	// convergeEpsilon is the distance under which an easing move counts
	// as arrived.
	convergeEpsilon = 0.01

	// easeRate is the exponential smoothing rate per second. Total travel
	// time varies with distance; there is no fixed-duration tween.
	easeRate = 4.0

	// zoomOutTimeoutSeconds bounds ZoomingOut: if damping never quite
	// reaches the epsilon, the state force-completes and frees controls.
	zoomOutTimeoutSeconds = 6.0
)

// trackHeight lifts the tracking offset above the orbital plane so the
// body stays in frame while it moves.
const trackHeight = 1.5

// Config configures the machine.
type Config struct {
	// OverviewPosition is the fixed initial camera pose the zoom-out
	// returns to.
	OverviewPosition astro.Vec3

	// CloseBehavior selects the info-dismiss variant.
	CloseBehavior CloseBehavior

	// Offset returns the authored per-body framing distance.
	Offset func(body string) float64
}

// Machine owns the camera position and focus state. It is read by the
// render loop and mutated only through its methods and Tick.
type Machine struct {
	cfg      Config
	clock    Clock
	position PositionFunc

	phase        Phase
	selected     string
	camPos       astro.Vec3
	target       astro.Vec3
	trackOffset  astro.Vec3
	controlsFree bool
	zoomElapsed  float64
}

// New creates an idle machine parked at the overview pose.
func New(cfg Config, clock Clock, position PositionFunc) *Machine {
	return &Machine{
		cfg:          cfg,
		clock:        clock,
		position:     position,
		phase:        Idle,
		camPos:       cfg.OverviewPosition,
		controlsFree: true,
	}
}

// Phase returns the current state.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Selected returns the focused body name, or "" when none.
func (m *Machine) Selected() string {
	return m.selected
}

// InfoVisible reports whether the info overlay should be shown.
func (m *Machine) InfoVisible() bool {
	return m.phase == ShowingInfo || m.phase == Tracking
}

// Position returns the camera's world position.
func (m *Machine) Position() astro.Vec3 {
	return m.camPos
}

// Target returns the point the camera is easing toward.
func (m *Machine) Target() astro.Vec3 {
	return m.target
}

// ControlsFree reports whether user camera controls are enabled.
func (m *Machine) ControlsFree() bool {
	return m.controlsFree
}

// CloseBehavior returns the configured info-dismiss variant.
func (m *Machine) CloseBehavior() CloseBehavior {
	return m.cfg.CloseBehavior
}

// SetCloseBehavior swaps the info-dismiss variant. Takes effect on the
// next CloseInfo; a zoom-out or track already in progress is unaffected.
func (m *Machine) SetCloseBehavior(b CloseBehavior) {
	m.cfg.CloseBehavior = b
}

// Selectable reports whether a new selection is accepted right now. A body
// is clickable only when no info overlay is showing, which prevents
// re-entrant selection during the info phases and the fly-in.
func (m *Machine) Selectable() bool {
	return m.phase == Idle || m.phase == ZoomingOut
}

// Select focuses a body: computes the framing target on the ray from the
// current camera position through the body, pauses the clock, and begins
// the fly-in. Ignored for unknown bodies and while an overlay is showing.
func (m *Machine) Select(body string) bool {
	if !m.Selectable() {
		return false
	}
	return m.beginApproach(body)
}

// SelectAnother switches focus from ShowingInfo without an explicit close:
// tracking/zoom state is cleared with no zoom-out animation and the new
// fly-in begins immediately.
func (m *Machine) SelectAnother(body string) bool {
	if m.phase != ShowingInfo && m.phase != Tracking {
		return m.Select(body)
	}
	m.controlsFree = true
	m.zoomElapsed = 0
	return m.beginApproach(body)
}

func (m *Machine) beginApproach(body string) bool {
	pos, ok := m.position(body)
	if !ok {
		return false
	}

	dir := m.camPos.Sub(pos).Normalized()
	if dir.Norm() == 0 {
		// Camera sitting exactly on the body; back off along Z.
		dir = astro.Vec3{Z: 1}
	}
	m.target = pos.Add(dir.Scale(m.cfg.Offset(body)))
	m.selected = body
	m.phase = MovingToTarget
	m.controlsFree = false
	m.clock.Pause()
	return true
}

// CloseInfo dismisses the overlay per the configured close behavior and
// always resumes the clock.
func (m *Machine) CloseInfo() {
	if m.phase != ShowingInfo && m.phase != Tracking {
		return
	}
	m.clock.Resume()

	if m.cfg.CloseBehavior == CloseTrack {
		m.enterTracking()
		return
	}

	m.phase = ZoomingOut
	m.target = m.cfg.OverviewPosition
	m.zoomElapsed = 0
	m.controlsFree = false
}

// enterTracking snaps the camera to an overhead offset from the body with
// no easing. The offset is captured once and re-copied every frame.
func (m *Machine) enterTracking() {
	pos, ok := m.position(m.selected)
	if !ok {
		m.finishZoomOut()
		return
	}
	m.trackOffset = astro.Vec3{Z: trackHeight}.Add(
		m.camPos.Sub(pos).Normalized().Scale(m.cfg.Offset(m.selected)))
	m.camPos = pos.Add(m.trackOffset)
	m.phase = Tracking
	m.controlsFree = true
}

// Deselect handles a click on empty space from any non-idle state: stops
// tracking, resumes the clock, and frees controls without forcing a
// zoom-out.
func (m *Machine) Deselect() {
	if m.phase == Idle {
		return
	}
	m.clock.Resume()
	m.phase = Idle
	m.selected = ""
	m.controlsFree = true
	m.zoomElapsed = 0
}

// Tick advances camera motion by dt wall seconds.
func (m *Machine) Tick(dt float64) {
	switch m.phase {
	case MovingToTarget:
		m.ease(dt)
		if astro.Dist(m.camPos, m.target) < convergeEpsilon {
			m.camPos = m.target
			m.phase = ShowingInfo
		}

	case ZoomingOut:
		m.zoomElapsed += dt
		m.ease(dt)
		if astro.Dist(m.camPos, m.target) < convergeEpsilon ||
			m.zoomElapsed > zoomOutTimeoutSeconds {
			m.finishZoomOut()
		}

	case Tracking:
		if pos, ok := m.position(m.selected); ok {
			m.camPos = pos.Add(m.trackOffset)
		}
	}
}

// ease moves the camera toward the target with exponential smoothing.
func (m *Machine) ease(dt float64) {
	t := math.Min(1, easeRate*dt)
	m.camPos = astro.Lerp(m.camPos, m.target, t)
}

func (m *Machine) finishZoomOut() {
	m.camPos = m.cfg.OverviewPosition
	m.phase = Idle
	m.selected = ""
	m.controlsFree = true
	m.zoomElapsed = 0
}
