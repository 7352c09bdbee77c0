package dispatch

import (
	"github.com/google/uuid"

	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

// Target is a game entity that can be removed by a gesture.
type Target interface {
	// GesturePosition is the entity's position projected into the same 2D
	// space as the stroke points.
	GesturePosition() models.Point2D
	Destroy()
}

// aliveChecker is implemented by targets that can disappear on their own.
type aliveChecker interface {
	Alive() bool
}

type entry struct {
	id       uuid.UUID
	category models.Symbol
	target   Target
}

// Registry is the set of targets interested in gesture results, in
// registration order.
type Registry struct {
	entries []*entry
	byID    map[uuid.UUID]*entry
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[uuid.UUID]*entry)}
}

// Register adds t under category and returns the handle to unregister it.
func (r *Registry) Register(category models.Symbol, t Target) uuid.UUID {
	e := &entry{id: uuid.New(), category: category, target: t}
	r.entries = append(r.entries, e)
	r.byID[e.id] = e
	return e.id
}

// Unregister forgets id. It reports whether id was registered.
func (r *Registry) Unregister(id uuid.UUID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) Target(id uuid.UUID) (Target, bool) {
	e, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return e.target, true
}

// live returns the usable entries of category, dropping entries whose target
// is nil or reports itself gone.
func (r *Registry) live(category models.Symbol) []*entry {
	var out []*entry
	var dead []uuid.UUID
	for _, e := range r.entries {
		if e.target == nil {
			dead = append(dead, e.id)
			continue
		}
		if a, ok := e.target.(aliveChecker); ok && !a.Alive() {
			dead = append(dead, e.id)
			continue
		}
		if e.category == category {
			out = append(out, e)
		}
	}
	for _, id := range dead {
		r.Unregister(id)
	}
	return out
}
