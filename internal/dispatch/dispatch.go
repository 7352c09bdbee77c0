// Package dispatch turns a recognized shape into game effects: it selects
// the registered targets the shape applies to and destroys them or spawns
// an effect at the shape's anchor.
package dispatch

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ThatOtherAndrew/ecodigital/internal/geometry"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

type Scope int

const (
	InsideGesture Scope = iota
	AllOfType
	// Nearest picks the single target closest to Options.Origin.
	Nearest
)

var scopeNames = map[Scope]string{
	InsideGesture: "inside_gesture",
	AllOfType:     "all_of_type",
	Nearest:       "nearest",
}

func (s Scope) String() string { return scopeNames[s] }

func ParseScope(name string) (Scope, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range scopeNames {
		if n == name {
			return s, true
		}
	}
	return InsideGesture, false
}

type Action int

const (
	None Action = iota
	SpawnEffect
	Destroy
)

var actionNames = map[Action]string{
	None:        "none",
	SpawnEffect: "spawn_effect",
	Destroy:     "destroy",
}

func (a Action) String() string { return actionNames[a] }

func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return Destroy, false
}

// Spawner places an effect in the world for a recognized shape.
type Spawner interface {
	Spawn(anchor models.Point3D, r models.Result)
}

type Options struct {
	Action        Action
	CircleScope   Scope
	CornerScope   Scope
	TemplateScope Scope
	// SelectionRadiusMultiplier widens the drawn circle when selecting.
	SelectionRadiusMultiplier float64
	// AABBPadding grows the stroke's bounding box, in stroke units.
	AABBPadding float64
	// Origin is the reference point for Nearest. When nil the stroke's
	// centroid is used.
	Origin *models.Point2D
}

func DefaultOptions() Options {
	return Options{
		Action:                    Destroy,
		CircleScope:               InsideGesture,
		CornerScope:               InsideGesture,
		TemplateScope:             Nearest,
		SelectionRadiusMultiplier: 1.1,
		AABBPadding:               0.2,
	}
}

// Outcome records what a dispatch did.
type Outcome struct {
	Action    Action
	Selected  []uuid.UUID
	Destroyed int
	Spawned   bool
}

type Dispatcher struct {
	opts     Options
	registry *Registry
	spawner  Spawner
}

// New wires a dispatcher to its collaborators. spawner may be nil when the
// action never spawns.
func New(opts Options, registry *Registry, spawner Spawner) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Dispatcher{opts: opts, registry: registry, spawner: spawner}
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

func (d *Dispatcher) Options() Options { return d.opts }

func (d *Dispatcher) scopeFor(r models.Result) Scope {
	switch r.Kind {
	case models.CircleMatch:
		return d.opts.CircleScope
	case models.CornerMatch:
		return d.opts.CornerScope
	}
	return d.opts.TemplateScope
}

// Select returns the targets r applies to. points are the stroke's 2D
// samples.
func (d *Dispatcher) Select(r models.Result, points []models.Point2D) []uuid.UUID {
	category, ok := r.Category()
	if !ok {
		return nil
	}
	candidates := d.registry.live(category)

	var filter func(models.Point2D) bool
	switch d.scopeFor(r) {
	case AllOfType:
	case Nearest:
		origin := geometry.Centroid(points)
		if d.opts.Origin != nil {
			origin = *d.opts.Origin
		}
		return nearest(candidates, origin)
	case InsideGesture:
		filter = d.region(r, points)
	}

	var ids []uuid.UUID
	for _, e := range candidates {
		if filter == nil || filter(e.target.GesturePosition()) {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// region is the part of the gesture plane a result covers.
func (d *Dispatcher) region(r models.Result, points []models.Point2D) func(models.Point2D) bool {
	switch r.Kind {
	case models.CircleMatch:
		radius := r.MeanRadius * d.opts.SelectionRadiusMultiplier
		return func(p models.Point2D) bool {
			return geometry.Distance(p, r.Center) <= radius
		}
	case models.CornerMatch:
		return boxRegion(points, d.opts.AABBPadding)
	}
	return polygonRegion(points, d.opts.AABBPadding)
}

func boxRegion(points []models.Point2D, pad float64) func(models.Point2D) bool {
	box, err := geometry.Bounds(points)
	if err != nil {
		return func(models.Point2D) bool { return false }
	}
	return box.Expand(pad).Contains
}

func nearest(candidates []*entry, origin models.Point2D) []uuid.UUID {
	var best *entry
	bestDist := math.Inf(1)
	for _, e := range candidates {
		if d := geometry.Distance(e.target.GesturePosition(), origin); d < bestDist {
			best, bestDist = e, d
		}
	}
	if best == nil {
		return nil
	}
	return []uuid.UUID{best.id}
}

// Dispatch performs the configured action for r.
func (d *Dispatcher) Dispatch(r models.Result, points []models.Point2D) Outcome {
	out := Outcome{Action: d.opts.Action}
	if !r.Matched() {
		return out
	}

	switch d.opts.Action {
	case None:
		return out
	case SpawnEffect:
		if d.spawner == nil {
			log.Warning.Printf("No effect spawner configured, dropping %s", r)
			return out
		}
		d.spawner.Spawn(r.AnchorPoint(), r)
		out.Spawned = true
		return out
	}

	out.Selected = d.Select(r, points)
	for _, id := range out.Selected {
		t, ok := d.registry.Target(id)
		if !ok {
			continue
		}
		d.registry.Unregister(id)
		t.Destroy()
		out.Destroyed++
	}
	category, _ := r.Category()
	if out.Destroyed == 0 {
		log.Info.Printf("No %s targets matched the %s selection", category, d.scopeFor(r))
	} else {
		log.Trace.Printf("Destroyed %d %s target(s)", out.Destroyed, category)
	}
	return out
}
