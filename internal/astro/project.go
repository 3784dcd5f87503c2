package astro

import (
	"math"
)

// ProjectedPoint represents a 2D projected position with metadata.
type ProjectedPoint struct {
	X float64 // Display X (normalized display units)
	Y float64 // Display Y
	R float64 // Original radial distance in AU
	Z float64 // Original Z offset above the orbital plane
}

// ScaleMode defines how radial distances are mapped to display space.
type ScaleMode int

const (
	// ScaleLogR uses logarithmic scaling: r_display = log10(r_AU + 1)
	ScaleLogR ScaleMode = iota

	// ScaleLinear maps AU directly to display units, clamped to 5 AU.
	// Useful when the camera is parked over the inner system.
	ScaleLinear
)

// ProjectionConfig configures the top-down ecliptic projection.
type ProjectionConfig struct {
	Scale float64   // Base scale factor
	Mode  ScaleMode // Scaling mode
}

// DefaultProjectionConfig returns a reasonable default configuration.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Scale: 1.0,
		Mode:  ScaleLogR,
	}
}

// ProjectEclipticTopDown projects a 3D ecliptic vector to 2D display
// coordinates. The projection is a top-down view with X pointing toward
// the vernal equinox and Y toward the summer solstice direction.
func ProjectEclipticTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	rAU := math.Sqrt(v.X*v.X + v.Y*v.Y)
	rDisplay := scaleRadius(rAU, cfg)
	angle := math.Atan2(v.Y, v.X)

	return ProjectedPoint{
		X: rDisplay * math.Cos(angle) * cfg.Scale,
		Y: rDisplay * math.Sin(angle) * cfg.Scale,
		R: v.Norm(),
		Z: v.Z,
	}
}

// scaleRadius applies the configured scaling mode to a radial distance.
func scaleRadius(rAU float64, cfg ProjectionConfig) float64 {
	switch cfg.Mode {
	case ScaleLinear:
		if rAU > 5 {
			return 5
		}
		return rAU
	default:
		// log10(r + 1) gives 0 at origin, ~0.78 at 5 AU, ~1.5 at 30 AU
		return math.Log10(rAU + 1)
	}
}

// Obliquity is the Earth's axial tilt (J2000 epoch) in radians.
const obliquityRad = 23.439291 * math.Pi / 180

// EquatorialToEcliptic converts equatorial XYZ to ecliptic XYZ.
// Input is in any units; output is in the same units.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	cosE := math.Cos(obliquityRad)
	sinE := math.Sin(obliquityRad)

	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// StarShellRadiusAU is the default radius of the celestial sphere used to
// place background stars behind the planets.
const StarShellRadiusAU = 100.0

// ProjectStarEclipticTopDown places a star (given as J2000 RA/Dec) on a
// distant shell and projects it with the same top-down view as the
// planets, so the starfield rotates consistently with the scene.
func ProjectStarEclipticTopDown(raDeg, decDeg float64, shellAU float64, cfg ProjectionConfig) ProjectedPoint {
	raRad := raDeg * math.Pi / 180
	decRad := decDeg * math.Pi / 180

	cosD := math.Cos(decRad)
	eq := Vec3{
		X: cosD * math.Cos(raRad) * shellAU,
		Y: cosD * math.Sin(raRad) * shellAU,
		Z: math.Sin(decRad) * shellAU,
	}

	return ProjectEclipticTopDown(EquatorialToEcliptic(eq), cfg)
}
