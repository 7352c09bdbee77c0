package spawn

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

type Particle struct {
	Position models.Point3D
	Velocity models.Point3D
	Life     float64
	MaxLife  float64
	Size     float64
	Color    colorful.Color
}

// Effect is one burst spawned for a recognized shape.
type Effect struct {
	ID        uuid.UUID
	Kind      models.Kind
	Symbol    models.Symbol
	Anchor    models.Point3D
	Particles []Particle
}

// Pool owns the live effects. It is driven by the host frame loop through
// Update and is not safe for concurrent use.
type Pool struct {
	effects []*Effect
	rng     *rand.Rand
	Gravity float64
}

func New(seed uint64) *Pool {
	return &Pool{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Gravity: 2,
	}
}

// Hue returns the base hue in degrees used for sym's effects.
func Hue(sym models.Symbol) float64 {
	return math.Mod(float64(sym)*360/float64(len(models.AllSymbols)), 360)
}

func (p *Pool) Spawn(anchor models.Point3D, r models.Result) {
	sym, ok := r.Category()
	if !ok {
		log.Warning.Printf("Not spawning an effect for %s", r)
		return
	}
	count, speed, life := 12, 1.5, 1.0
	switch r.Kind {
	case models.CircleMatch:
		count, speed = 24, 1.0
	case models.CornerMatch:
		count, life = 16, 0.8
	}

	e := &Effect{
		ID:        uuid.New(),
		Kind:      r.Kind,
		Symbol:    sym,
		Anchor:    anchor,
		Particles: make([]Particle, 0, count),
	}
	hue := Hue(e.Symbol)
	for range count {
		angle := p.rng.Float64() * 2 * math.Pi
		v := p.rng.Float64()*speed + speed/2
		e.Particles = append(e.Particles, Particle{
			Position: anchor,
			Velocity: models.Point3D{
				X: math.Cos(angle) * v,
				Y: p.rng.Float64()*v + 0.5,
				Z: math.Sin(angle) * v,
			},
			Life:    life,
			MaxLife: life,
			Size:    p.rng.Float64()*0.1 + 0.05,
			Color:   colorful.Hsv(math.Mod(hue+(p.rng.Float64()-0.5)*30+360, 360), 0.8, 1),
		})
	}
	p.effects = append(p.effects, e)
	log.Trace.Printf("Spawned %s effect %s at (%.2f, %.2f, %.2f)", e.Symbol, e.ID, anchor.X, anchor.Y, anchor.Z)
}

// Update advances every particle by dt seconds and drops expired effects.
func (p *Pool) Update(dt float64) {
	for i := 0; i < len(p.effects); i++ {
		e := p.effects[i]
		for j := 0; j < len(e.Particles); j++ {
			pt := &e.Particles[j]
			pt.Position = pt.Position.Add(pt.Velocity.Scale(dt))
			pt.Velocity.Y -= p.Gravity * dt
			pt.Life -= dt

			if pt.Life <= 0 {
				e.Particles[j] = e.Particles[len(e.Particles)-1]
				e.Particles = e.Particles[:len(e.Particles)-1]
				j--
			}
		}
		if len(e.Particles) == 0 {
			p.effects = append(p.effects[:i], p.effects[i+1:]...)
			i--
		}
	}
}

func (p *Pool) Effects() []*Effect { return p.effects }

// Particles is the number of live particles across all effects.
func (p *Pool) Particles() int {
	n := 0
	for _, e := range p.effects {
		n += len(e.Particles)
	}
	return n
}

func (p *Pool) Clear() { p.effects = nil }

// Alpha is the particle's fade factor in [0, 1].
func (pt Particle) Alpha() float64 {
	if pt.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, pt.Life/pt.MaxLife))
}
