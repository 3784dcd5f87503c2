package scene

import (
	"math"
	"math/rand"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/sim"
)

const (
	// beltCount is the number of asteroid instances placed at startup.
	beltCount = 140

	// beltInnerAU/beltOuterAU bound the annulus between Mars and Jupiter.
	beltInnerAU = 2.1
	beltOuterAU = 3.3

	// beltSpinIncrement is the fixed per-frame self-rotation of a member,
	// sign-flipped when time runs backward.
	beltSpinIncrement = 0.02

	// beltRevolutionRate is the per-frame revolution increment applied
	// through a 2D rotation of each member's planar position.
	beltRevolutionRate = 0.0004

	// beltSeed keeps the scattered positions identical across sessions.
	beltSeed = 7
)

// Asteroid is a single belt member. Revolution is applied incrementally by
// rotating the planar position each frame rather than recomputing from a
// parametric angle, so numerical drift over very long sessions is an
// accepted tradeoff.
type Asteroid struct {
	Pos  astro.Vec3
	Spin float64
}

// newBelt scatters n asteroids in the belt annulus with a fixed seed.
func newBelt(n int) []*Asteroid {
	rng := rand.New(rand.NewSource(beltSeed))
	belt := make([]*Asteroid, 0, n)

	for i := 0; i < n; i++ {
		r := beltInnerAU + rng.Float64()*(beltOuterAU-beltInnerAU)
		theta := rng.Float64() * 2 * math.Pi
		belt = append(belt, &Asteroid{
			Pos: astro.Vec3{
				X: r * math.Cos(theta),
				Y: r * math.Sin(theta),
				Z: (rng.Float64() - 0.5) * 0.1,
			},
			Spin: rng.Float64() * 2 * math.Pi,
		})
	}
	return belt
}

// advanceBelt spins and revolves every member for one frame.
func advanceBelt(belt []*Asteroid, snap sim.Snapshot) {
	spin := beltSpinIncrement
	switch {
	case snap.AccelerationScale < 0:
		spin = -spin
	case snap.AccelerationScale == 0:
		spin = 0
	}

	theta := beltRevolutionRate * snap.OrbitScale
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	for _, a := range belt {
		a.Spin += spin
		x := a.Pos.X*cosT - a.Pos.Y*sinT
		y := a.Pos.X*sinT + a.Pos.Y*cosT
		a.Pos.X, a.Pos.Y = x, y
	}
}
