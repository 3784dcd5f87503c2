package impact

import (
	"math"
	"math/rand"

	"github.com/litescript/ls-orrery/internal/astro"
)

// EffectKind identifies a detonation stage for rendering.
type EffectKind int

const (
	EffectFlash EffectKind = iota
	EffectExplosion
	EffectShockwave
	EffectDebris
)

// String returns the effect kind name.
func (k EffectKind) String() string {
	switch k {
	case EffectFlash:
		return "flash"
	case EffectExplosion:
		return "explosion"
	case EffectShockwave:
		return "shockwave"
	case EffectDebris:
		return "debris"
	default:
		return "unknown"
	}
}

// Stage timing and lifetime constants, in seconds. Every effect is driven
// by the frame loop through an explicit delay/lifetime pair rather than
// free-running timers, so the whole sequence is deterministic under test.
const (
	flashLifetime     = 0.4
	explosionLifetime = 2.0
	shockwaveDelay    = 0.2
	shockwaveLifetime = 1.5
	debrisDelay       = 0.5
	debrisLifetime    = 4.0
	secondaryDelay    = 1.0
	secondaryLifetime = 1.2

	// maxParticles caps the primary burst.
	maxParticles = 150

	// shockwaveMaxRadius caps the ring's expansion, display AU.
	shockwaveMaxRadius = 2.5

	// particleGravity pulls debris and burst particles back toward the
	// orbital plane, display AU per second squared.
	particleGravity = 1.2

	// effectSeed keeps particle bursts reproducible.
	effectSeed = 99
)

// Particle is one velocity-seeded fragment of a burst.
type Particle struct {
	Pos astro.Vec3
	Vel astro.Vec3
}

// Effect is a short-lived detonation entity. It stays dormant until its
// delay elapses, lives for its lifetime, and is removed by the system —
// effects never remove themselves through timers.
type Effect struct {
	Kind      EffectKind
	Center    astro.Vec3
	Delay     float64 // seconds until the effect becomes visible
	Age       float64 // seconds since activation (after delay)
	Lifetime  float64
	Radius    float64 // current shockwave/flash radius
	Particles []Particle
}

// Activated reports whether the delay has elapsed.
func (e *Effect) Activated() bool {
	return e.Delay <= 0
}

// Fade returns the remaining-life fraction in [0,1] for brightness ramps.
func (e *Effect) Fade() float64 {
	if !e.Activated() || e.Lifetime <= 0 {
		return 0
	}
	f := 1 - e.Age/e.Lifetime
	if f < 0 {
		return 0
	}
	return f
}

// EffectSystem owns the live detonation effects. Advance is called once
// per frame by the frame driver; expired effects are retired there. The
// system touches scene membership only, never clock or camera state.
type EffectSystem struct {
	effects []*Effect
	rng     *rand.Rand
}

// NewEffectSystem returns an empty system with a fixed particle seed.
func NewEffectSystem() *EffectSystem {
	return &EffectSystem{rng: rand.New(rand.NewSource(effectSeed))}
}

// SpawnDetonation stages the full impact sequence at the given point:
// an immediate flash and particle burst, a delayed shockwave ring, a
// delayed debris cloud, and two offset secondary explosions.
func (s *EffectSystem) SpawnDetonation(at astro.Vec3) {
	s.effects = append(s.effects,
		&Effect{Kind: EffectFlash, Center: at, Lifetime: flashLifetime},
		s.newBurst(at, maxParticles, explosionLifetime, 0),
		&Effect{Kind: EffectShockwave, Center: at, Delay: shockwaveDelay, Lifetime: shockwaveLifetime},
		s.newDebris(at),
		s.newBurst(s.offsetPoint(at), maxParticles/3, secondaryLifetime, secondaryDelay),
		s.newBurst(s.offsetPoint(at), maxParticles/3, secondaryLifetime, secondaryDelay),
	)
}

// newBurst builds a velocity-seeded outward particle explosion.
func (s *EffectSystem) newBurst(at astro.Vec3, count int, lifetime, delay float64) *Effect {
	e := &Effect{
		Kind:      EffectExplosion,
		Center:    at,
		Delay:     delay,
		Lifetime:  lifetime,
		Particles: make([]Particle, 0, count),
	}
	for i := 0; i < count; i++ {
		dir := s.randomDirection()
		speed := 0.3 + s.rng.Float64()*0.9
		e.Particles = append(e.Particles, Particle{
			Pos: at,
			Vel: dir.Scale(speed),
		})
	}
	return e
}

// newDebris builds the slower, longer-lived debris cloud.
func (s *EffectSystem) newDebris(at astro.Vec3) *Effect {
	e := &Effect{
		Kind:      EffectDebris,
		Center:    at,
		Delay:     debrisDelay,
		Lifetime:  debrisLifetime,
		Particles: make([]Particle, 0, maxParticles/2),
	}
	for i := 0; i < maxParticles/2; i++ {
		dir := s.randomDirection()
		speed := 0.05 + s.rng.Float64()*0.25
		e.Particles = append(e.Particles, Particle{
			Pos: at,
			Vel: dir.Scale(speed),
		})
	}
	return e
}

// offsetPoint displaces a secondary explosion from the impact point.
func (s *EffectSystem) offsetPoint(at astro.Vec3) astro.Vec3 {
	return at.Add(s.randomDirection().Scale(0.3 + s.rng.Float64()*0.3))
}

func (s *EffectSystem) randomDirection() astro.Vec3 {
	theta := s.rng.Float64() * 2 * math.Pi
	z := s.rng.Float64()*2 - 1
	r := math.Sqrt(1 - z*z)
	return astro.Vec3{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z}
}

// Advance ages every effect by dt seconds, integrates particles, expands
// the shockwave, and retires expired effects.
func (s *EffectSystem) Advance(dt float64) {
	live := s.effects[:0]
	for _, e := range s.effects {
		if e.Delay > 0 {
			e.Delay -= dt
			if e.Delay > 0 {
				live = append(live, e)
				continue
			}
			// Consume any spillover into the first active frame.
			e.Age = -e.Delay
			e.Delay = 0
		} else {
			e.Age += dt
		}

		if e.Age >= e.Lifetime {
			continue // retired
		}

		switch e.Kind {
		case EffectFlash:
			// Fast expand with the fade handled by renderers.
			e.Radius = e.Age / flashLifetime * 1.0

		case EffectShockwave:
			e.Radius = math.Min(shockwaveMaxRadius, e.Age/shockwaveLifetime*shockwaveMaxRadius)

		case EffectExplosion, EffectDebris:
			for i := range e.Particles {
				p := &e.Particles[i]
				p.Vel.Z -= particleGravity * dt
				p.Pos = p.Pos.Add(p.Vel.Scale(dt))
			}
		}

		live = append(live, e)
	}
	s.effects = live
}

// Live returns the current effects (dormant ones included).
func (s *EffectSystem) Live() []*Effect {
	return s.effects
}

// ActiveCount returns the number of effects past their delay.
func (s *EffectSystem) ActiveCount() int {
	n := 0
	for _, e := range s.effects {
		if e.Activated() {
			n++
		}
	}
	return n
}

// Clear drops every effect immediately.
func (s *EffectSystem) Clear() {
	s.effects = nil
}
