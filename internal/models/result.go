package models

import (
	"fmt"
	"strings"
)

// Symbol names a template shape. Geometric results map onto it as well so
// targets only ever declare one category.
type Symbol int

const (
	Triangle Symbol = iota
	Square
	Circle
	Vee
	Lightning
	Bar
)

var AllSymbols = []Symbol{Triangle, Square, Circle, Vee, Lightning, Bar}

var symbolNames = map[Symbol]string{
	Triangle:  "triangle",
	Square:    "square",
	Circle:    "circle",
	Vee:       "vee",
	Lightning: "lightning",
	Bar:       "bar",
}

func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return fmt.Sprintf("symbol(%d)", int(s))
}

func ParseSymbol(name string) (Symbol, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range symbolNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

func (s Symbol) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Symbol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, ok := ParseSymbol(name)
	if !ok {
		return fmt.Errorf("unknown symbol %q", name)
	}
	*s = parsed
	return nil
}

type Kind int

const (
	NoMatch Kind = iota
	CircleMatch
	CornerMatch
	TemplateMatch
)

func (k Kind) String() string {
	switch k {
	case CircleMatch:
		return "circle"
	case CornerMatch:
		return "corner"
	case TemplateMatch:
		return "template"
	}
	return "no-match"
}

// Result is the outcome of classifying one stroke. Kind selects which of
// the remaining fields are meaningful.
type Result struct {
	Kind Kind

	// Circle
	Center     Point2D
	Anchor     Point3D
	MeanRadius float64

	// Corner
	VertexIndex int
	Vertex      Point3D
	AngleDeg    float64

	// Template
	Symbol Symbol
	Score  float64
}

func (r Result) Matched() bool { return r.Kind != NoMatch }

// Category is the target category a result acts on. ok is false for an
// unmatched result, which acts on nothing.
func (r Result) Category() (sym Symbol, ok bool) {
	switch r.Kind {
	case NoMatch:
		return 0, false
	case CircleMatch:
		return Circle, true
	case CornerMatch:
		return Vee, true
	}
	return r.Symbol, true
}

// AnchorPoint is where effects for this result are placed.
func (r Result) AnchorPoint() Point3D {
	switch r.Kind {
	case CircleMatch:
		return r.Anchor
	case CornerMatch:
		return r.Vertex
	}
	return r.Anchor
}

func (r Result) String() string {
	switch r.Kind {
	case CircleMatch:
		return fmt.Sprintf("circle center=(%.3f, %.3f) radius=%.3f", r.Center.X, r.Center.Y, r.MeanRadius)
	case CornerMatch:
		return fmt.Sprintf("corner vertex=%d at (%.3f, %.3f, %.3f) angle=%.1f°",
			r.VertexIndex, r.Vertex.X, r.Vertex.Y, r.Vertex.Z, r.AngleDeg)
	case TemplateMatch:
		return fmt.Sprintf("template %s score=%.3f", r.Symbol, r.Score)
	}
	return "no match"
}
