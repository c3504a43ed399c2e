package scene

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxParticles is the fixed size of the snow pool.
const MaxParticles = 3000

// Snowfall tuning. Velocities are in pool units per tick and are divided by
// slowdown*1000 before they move a flake.
const (
	ParticleLifespan = 2.0

	spawnHeight     = 21.0
	spawnHalfExtent = 20
	fadeMin         = 0.003
	slowdown        = 2.0
	gravityStep     = -0.8
	windStep        = 2.2
	windHeight      = 15.0 // wind only pushes flakes that have dropped below this
	floorHeight     = -3.0

	// DefaultTickRate is the simulation rate Advance steps at.
	DefaultTickRate = 60.0
	maxTicksPerCall = 5
)

// Wind is the set of active wind directions. Several may blow at once.
type Wind struct {
	North, South, East, West bool
}

// Any reports whether at least one direction is active.
func (w Wind) Any() bool {
	return w.North || w.South || w.East || w.West
}

// Particle is one snowflake slot.
type Particle struct {
	Position     mgl32.Vec3
	Lifespan     float32
	Alive        bool
	Fade         float32 // lifespan lost per tick
	Velocity     float32 // vertical, grows downward every tick
	WindVelocity float32 // horizontal, grows while wind blows
}

// Field simulates a fixed pool of snowflakes. Dead flakes are respawned
// in place; the pool never grows or shrinks.
type Field struct {
	pool [MaxParticles]Particle

	tickRate float32
	accum    float32
	rng      *rand.Rand
}

// NewField returns a field with every slot spawned. seed makes the
// simulation reproducible.
func NewField(seed int64, tickRate float32) *Field {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	f := &Field{
		tickRate: tickRate,
		rng:      rand.New(rand.NewSource(seed)),
	}
	for i := range f.pool {
		f.respawn(i)
	}
	return f
}

// Particles exposes the pool for drawing. The slice aliases the pool.
func (f *Field) Particles() []Particle {
	return f.pool[:]
}

// Len returns the pool capacity.
func (f *Field) Len() int { return len(f.pool) }

// Advance runs as many fixed ticks as dt covers at the field's tick rate.
// Long frames are capped so a stall does not trigger a burst of ticks.
func (f *Field) Advance(dt float32, wind Wind) int {
	if dt <= 0 {
		return 0
	}
	step := 1 / f.tickRate
	f.accum += dt
	ticks := 0
	for f.accum >= step && ticks < maxTicksPerCall {
		f.Step(wind)
		f.accum -= step
		ticks++
	}
	if ticks == maxTicksPerCall {
		f.accum = 0
	}
	return ticks
}

// Step advances every live flake by one tick.
func (f *Field) Step(wind Wind) {
	for i := range f.pool {
		p := &f.pool[i]
		if !p.Alive {
			continue
		}

		p.Position[1] += p.Velocity / (slowdown * 1000)
		p.Velocity += gravityStep
		p.Lifespan -= p.Fade

		if p.Position[1] < windHeight {
			drift := p.WindVelocity / (slowdown * 1000)
			if wind.North {
				p.Position[0] += drift
				p.WindVelocity += windStep
			}
			if wind.South {
				p.Position[0] -= drift
				p.WindVelocity += windStep
			}
			if wind.West {
				p.Position[2] += drift
				p.WindVelocity += windStep
			}
			if wind.East {
				p.Position[2] -= drift
				p.WindVelocity += windStep
			}
		}

		if p.Position[1] < floorHeight {
			p.Lifespan = -1
		}

		if p.Lifespan < 0 {
			f.respawn(i)
		}
	}
}

func (f *Field) respawn(i int) {
	f.pool[i] = Particle{
		Position: mgl32.Vec3{
			float32(f.rng.Intn(2*spawnHalfExtent+1) - spawnHalfExtent),
			spawnHeight,
			float32(f.rng.Intn(2*spawnHalfExtent+1) - spawnHalfExtent),
		},
		Lifespan: ParticleLifespan,
		Alive:    true,
		Fade:     float32(f.rng.Intn(100))/1000 + fadeMin,
	}
}
