package scene

import (
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/sim"
)

// Moon is a moon's runtime state. Its position is recomputed from an
// accumulated phase each frame rather than stored as a transform.
type Moon struct {
	Def   MoonDef
	phase float64
	Pos   astro.Vec3 // world position, updated every frame
}

// Body is a celestial body's runtime state. Each body exclusively owns a
// spin transform (SpinAngle) and an orbital transform (OrbitAngle) on a
// fixed-radius circular path.
type Body struct {
	Def        BodyDef
	OrbitAngle float64
	SpinAngle  float64
	Moons      []*Moon
}

// Position derives the body's world position from its orbit transform.
func (b *Body) Position() astro.Vec3 {
	if b.Def.OrbitRadius == 0 {
		return astro.Vec3{}
	}
	return astro.Vec3{
		X: b.Def.OrbitRadius * math.Cos(b.OrbitAngle),
		Y: b.Def.OrbitRadius * math.Sin(b.OrbitAngle),
	}
}

// System holds every body, moon, and belt asteroid. All of them are
// created once at startup (sun first, then planets, then moons, then the
// belt) and never destroyed during a session.
type System struct {
	bodies []*Body
	byName map[string]*Body
	belt   []*Asteroid
	picks  *PickRegistry
}

// NewSystem builds the scene from the authored tables.
func NewSystem() *System {
	s := &System{
		byName: make(map[string]*Body, len(Bodies)),
		picks:  NewPickRegistry(),
	}

	for _, def := range Bodies {
		b := &Body{Def: def}
		for _, md := range def.Moons {
			b.Moons = append(b.Moons, &Moon{Def: md})
		}
		s.bodies = append(s.bodies, b)
		s.byName[def.Name] = b

		s.picks.Register(surfaceTarget(def.Name), def.Name)
		if def.HasAtmosphere {
			s.picks.Register(atmosphereTarget(def.Name), def.Name)
		}
	}

	s.belt = newBelt(beltCount)
	return s
}

// Bodies returns the bodies in creation order.
func (s *System) Bodies() []*Body {
	return s.bodies
}

// Belt returns the asteroid belt members.
func (s *System) Belt() []*Asteroid {
	return s.belt
}

// Lookup returns a body by name.
func (s *System) Lookup(name string) (*Body, bool) {
	b, ok := s.byName[name]
	return b, ok
}

// Picks returns the pick registry built at startup.
func (s *System) Picks() *PickRegistry {
	return s.picks
}

// BodyPosition is the body-location query the camera machine depends on.
func (s *System) BodyPosition(name string) (astro.Vec3, bool) {
	b, ok := s.byName[name]
	if !ok {
		return astro.Vec3{}, false
	}
	return b.Position(), true
}

// Advance applies one frame of motion from the clock snapshot: spin from
// AccelerationScale, revolution from OrbitScale, parametric moons, and the
// belt's incremental rotation. Pure application; the snapshot carries all
// shared state.
func (s *System) Advance(snap sim.Snapshot) {
	for _, b := range s.bodies {
		b.SpinAngle += b.Def.SpinRate * snap.AccelerationScale
		b.OrbitAngle += b.Def.OrbitRate * snap.OrbitScale

		center := b.Position()
		for _, m := range b.Moons {
			m.phase += m.Def.Speed * snap.OrbitScale
			m.Pos = moonPosition(center, m.Def, m.phase)
		}
	}

	advanceBelt(s.belt, snap)
}

// moonPosition places a moon on its parametric circle. Sphere-based moons
// tilt the circle by the authored inclination; model-based moons (Mars)
// stay in the orbital plane.
func moonPosition(center astro.Vec3, def MoonDef, phase float64) astro.Vec3 {
	cosP := math.Cos(phase)
	sinP := math.Sin(phase)

	if def.ModelBased || def.TiltRad == 0 {
		return astro.Vec3{
			X: center.X + def.Radius*cosP,
			Y: center.Y + def.Radius*sinP,
			Z: center.Z,
		}
	}

	cosT := math.Cos(def.TiltRad)
	sinT := math.Sin(def.TiltRad)
	return astro.Vec3{
		X: center.X + def.Radius*cosP,
		Y: center.Y + def.Radius*sinP*cosT,
		Z: center.Z + def.Radius*sinP*sinT,
	}
}

// PositionAt predicts a body's world position at a date using the
// circular-orbit closed form. The frame loop never uses this; it exists
// for aiming and for headless ephemeris output.
func PositionAt(def BodyDef, date time.Time) astro.Vec3 {
	if def.OrbitRadius == 0 {
		return astro.Vec3{}
	}
	angle := astro.DaysSinceEpoch(date) / astro.DaysPerYear * 2 * math.Pi *
		(def.OrbitRate / sim.EarthOrbitRate)
	return astro.Vec3{
		X: def.OrbitRadius * math.Cos(angle),
		Y: def.OrbitRadius * math.Sin(angle),
	}
}

// EarthPositionAt predicts the reference body's position at a date. The
// impact trajectory uses this to aim at where Earth will be, not where
// it is.
func EarthPositionAt(date time.Time) astro.Vec3 {
	def, _ := BodyDefByName("Earth")
	return PositionAt(def, date)
}
