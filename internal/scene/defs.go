// Package scene owns the celestial bodies: their authored constants, their
// orbit and spin transforms, and the per-frame updater that applies the
// clock's derived scales to them.
package scene

import (
	"github.com/litescript/ls-orrery/internal/sim"
)

// BodyClass categorizes planets for rendering glyphs.
type BodyClass int

const (
	ClassStar BodyClass = iota
	ClassInner
	ClassGiant
)

// MoonDef holds the authored constants for a moon. Moons are positioned
// parametrically on a circle around their parent rather than through an
// orbit transform.
type MoonDef struct {
	Name       string
	Radius     float64 // orbit distance from parent, display AU (tuned, not to scale)
	Speed      float64 // phase rate multiplier applied to OrbitScale
	TiltRad    float64 // inclination of the orbit circle; 0 = in-plane
	ModelBased bool    // discrete-asset moons (Mars) skip the tilt term
}

// BodyDef holds the authored per-body constants. These are tuning values,
// not derived quantities: orbit radii are design constants independent of
// true eccentricity, and the rates are tuned so relative periods look
// right at the reference frame rate.
type BodyDef struct {
	Name          string
	Class         BodyClass
	OrbitRadius   float64 // circular path radius, AU
	OrbitRate     float64 // radians/frame at OrbitScale 1
	SpinRate      float64 // radians/frame at AccelerationScale 1
	RadiusKm      float64 // physical radius, info display only
	HasRing       bool
	HasAtmosphere bool
	CameraOffset  float64 // framing distance for the camera, AU
	Glyph         rune
	Facts         string // one-line blurb for the info overlay
	Moons         []MoonDef
}

// orbitRate derives a per-frame orbit constant from an orbital period in
// days, anchored to the reference body's authored rate.
func orbitRate(periodDays float64) float64 {
	return sim.EarthOrbitRate * 365.25 / periodDays
}

// Bodies is the authored body table, in creation order: sun first, then
// planets outward. Camera offsets grow with body size so each fits nicely
// in frame; the sun's is largest.
var Bodies = []BodyDef{
	{
		Name:          "Sun",
		Class:         ClassStar,
		OrbitRadius:   0,
		OrbitRate:     0,
		SpinRate:      0.0002,
		RadiusKm:      696000,
		CameraOffset:  12,
		Glyph:         '☉',
		Facts:         "G-type main-sequence star holding 99.86% of the system's mass.",
	},
	{
		Name:         "Mercury",
		Class:        ClassInner,
		OrbitRadius:  0.39,
		OrbitRate:    orbitRate(87.97),
		SpinRate:     0.00009,
		RadiusKm:     2439.7,
		CameraOffset: 2,
		Glyph:        '•',
		Facts:        "Smallest planet; a cratered world with no atmosphere to speak of.",
	},
	{
		Name:          "Venus",
		Class:         ClassInner,
		OrbitRadius:   0.72,
		OrbitRate:     orbitRate(224.70),
		SpinRate:      -0.00002, // retrograde rotation
		RadiusKm:      6051.8,
		HasAtmosphere: true,
		CameraOffset:  2.5,
		Glyph:         '•',
		Facts:         "Runaway greenhouse under a permanent sulfuric cloud deck.",
	},
	{
		Name:          "Earth",
		Class:         ClassInner,
		OrbitRadius:   1.00,
		OrbitRate:     sim.EarthOrbitRate, // reference body anchor
		SpinRate:      0.005,
		RadiusKm:      6371.0,
		HasAtmosphere: true,
		CameraOffset:  2.5,
		Glyph:         '●',
		Facts:         "The reference body: one revolution defines the simulated year.",
		Moons: []MoonDef{
			{Name: "Moon", Radius: 0.08, Speed: 2.5, TiltRad: 0.09},
		},
	},
	{
		Name:          "Mars",
		Class:         ClassInner,
		OrbitRadius:   1.52,
		OrbitRate:     orbitRate(686.98),
		SpinRate:      0.0049,
		RadiusKm:      3389.5,
		HasAtmosphere: true,
		CameraOffset:  2.5,
		Glyph:         '•',
		Facts:         "Thin CO2 atmosphere, rust-red regolith, two captured moons.",
		Moons: []MoonDef{
			{Name: "Phobos", Radius: 0.05, Speed: 5.0, ModelBased: true},
			{Name: "Deimos", Radius: 0.09, Speed: 3.0, ModelBased: true},
		},
	},
	{
		Name:          "Jupiter",
		Class:         ClassGiant,
		OrbitRadius:   5.20,
		OrbitRate:     orbitRate(4332.59),
		SpinRate:      0.0121,
		RadiusKm:      69911,
		HasAtmosphere: true,
		CameraOffset:  8,
		Glyph:         '◉',
		Facts:         "Gas giant with the fastest spin in the system; the Galilean moons orbit it.",
		Moons: []MoonDef{
			{Name: "Io", Radius: 0.15, Speed: 4.0},
			{Name: "Europa", Radius: 0.22, Speed: 3.1},
			{Name: "Ganymede", Radius: 0.30, Speed: 2.2},
			{Name: "Callisto", Radius: 0.40, Speed: 1.3},
		},
	},
	{
		Name:         "Saturn",
		Class:        ClassGiant,
		OrbitRadius:  9.54,
		OrbitRate:    orbitRate(10759.2),
		SpinRate:     0.0113,
		RadiusKm:     58232,
		HasRing:      true,
		CameraOffset: 8,
		Glyph:        '◉',
		Facts:        "Ring system of ice and rock spanning hundreds of thousands of km.",
	},
	{
		Name:          "Uranus",
		Class:         ClassGiant,
		OrbitRadius:   19.19,
		OrbitRate:     orbitRate(30688.5),
		SpinRate:      -0.0070, // retrograde rotation
		RadiusKm:      25362,
		HasRing:       true,
		HasAtmosphere: true,
		CameraOffset:  6,
		Glyph:         '○',
		Facts:         "Ice giant rolling on its side, axis tilted 98 degrees.",
	},
	{
		Name:          "Neptune",
		Class:         ClassGiant,
		OrbitRadius:   30.07,
		OrbitRate:     orbitRate(60182),
		SpinRate:      0.0075,
		RadiusKm:      24622,
		HasAtmosphere: true,
		CameraOffset:  6,
		Glyph:         '○',
		Facts:         "Farthest planet; supersonic winds over a deep blue methane haze.",
	},
}

// BodyDefByName returns the authored definition for a body name.
func BodyDefByName(name string) (BodyDef, bool) {
	for _, d := range Bodies {
		if d.Name == name {
			return d, true
		}
	}
	return BodyDef{}, false
}

// CameraOffset returns the authored framing distance for a body, or a
// conservative default for unknown names.
func CameraOffset(name string) float64 {
	if d, ok := BodyDefByName(name); ok {
		return d.CameraOffset
	}
	return 3
}
