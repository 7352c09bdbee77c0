package classify

import (
	"strings"

	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

// Priority settles a stroke that both the circle and the corner classifier
// accepted.
type Priority int

const (
	// FirstWins keeps both results and leaves the choice to the caller.
	FirstWins Priority = iota
	PreferCorner
	PreferCircle
)

var priorityNames = map[Priority]string{
	FirstWins:    "first_wins",
	PreferCorner: "prefer_corner",
	PreferCircle: "prefer_circle",
}

func (p Priority) String() string { return priorityNames[p] }

func ParsePriority(name string) (Priority, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range priorityNames {
		if n == name {
			return p, true
		}
	}
	return FirstWins, false
}

// Resolve applies p to the circle and corner outcomes of one stroke and
// returns the results that survive, corner first.
func Resolve(p Priority, circle, corner models.Result) []models.Result {
	gotCircle, gotCorner := circle.Matched(), corner.Matched()
	switch {
	case p == PreferCorner && gotCorner:
		gotCircle = false
	case p == PreferCircle && gotCircle:
		gotCorner = false
	}

	var out []models.Result
	if gotCorner {
		out = append(out, corner)
	}
	if gotCircle {
		out = append(out, circle)
	}
	return out
}

// Pipeline runs an ordered set of classifiers over each stroke.
type Pipeline struct {
	classifiers []Classifier
	priority    Priority
}

func NewPipeline(priority Priority, classifiers ...Classifier) *Pipeline {
	return &Pipeline{classifiers: classifiers, priority: priority}
}

func (p *Pipeline) Classifiers() []Classifier { return p.classifiers }

func (p *Pipeline) Priority() Priority { return p.priority }

// Classify returns every accepted result for s. An empty slice means the
// stroke matched nothing.
func (p *Pipeline) Classify(s *models.Stroke) []models.Result {
	var circle, corner models.Result
	var others []models.Result
	for _, c := range p.classifiers {
		r := c.Classify(s)
		log.Trace.Printf("stroke %s: %s -> %s", s.ID, c.Name(), r)
		switch r.Kind {
		case models.NoMatch:
		case models.CircleMatch:
			circle = r
		case models.CornerMatch:
			corner = r
		default:
			others = append(others, r)
		}
	}
	return append(Resolve(p.priority, circle, corner), others...)
}
