package stroke

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ThatOtherAndrew/ecodigital/internal/geometry"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

// MinRawPoints is the fewest sampled points a stroke needs before it is
// resampled.
const MinRawPoints = 8

// minBoxAspect is the narrowest side ratio a stroke's box may have before
// templates are projected into a square box instead.
const minBoxAspect = 0.1

type Options struct {
	Samples         int
	UnitSize        float64
	AngleRangeDeg   float64
	AngleStepDeg    float64
	ScoreAcceptance float64
	// MinStrokeLength is in pixels; it is scaled by the stroke's units per
	// pixel before comparing with the path length.
	MinStrokeLength float64
}

func DefaultOptions() Options {
	return Options{
		Samples:         64,
		UnitSize:        1,
		AngleRangeDeg:   30,
		AngleStepDeg:    2,
		ScoreAcceptance: 0.75,
		MinStrokeLength: 50,
	}
}

// Recognizer matches strokes against a fixed template set. It is safe for
// concurrent use; nothing is mutated after construction.
type Recognizer struct {
	opts       Options
	angleRange float64
	angleStep  float64
	templates  []Template
}

func NewRecognizer(opts Options, templates []Template) (*Recognizer, error) {
	if len(templates) == 0 {
		return nil, errors.Wrap(models.ErrConfiguration, "recognizer needs at least one template")
	}
	for _, t := range templates {
		if len(t.Points) < 2 || geometry.PathLength(t.Points) <= 0 {
			return nil, errors.Wrapf(models.ErrConfiguration, "template %s has no length", t.Symbol)
		}
	}
	if opts.Samples < 2 {
		return nil, errors.Wrapf(models.ErrConfiguration, "samples must be at least 2, got %d", opts.Samples)
	}
	if opts.UnitSize <= 0 {
		return nil, errors.Wrapf(models.ErrConfiguration, "unit size must be positive, got %v", opts.UnitSize)
	}
	if opts.AngleStepDeg <= 0 {
		return nil, errors.Wrapf(models.ErrConfiguration, "angle step must be positive, got %v", opts.AngleStepDeg)
	}

	return &Recognizer{
		opts:       opts,
		angleRange: math.Abs(opts.AngleRangeDeg) * math.Pi / 180,
		angleStep:  opts.AngleStepDeg * math.Pi / 180,
		templates:  append([]Template(nil), templates...),
	}, nil
}

func (r *Recognizer) Options() Options { return r.opts }

func (r *Recognizer) Templates() []Template { return r.templates }

// Normalize runs steps 1-3: resample, rotate the indicative angle to zero,
// scale and move the centroid to the origin.
func (r *Recognizer) Normalize(points []Point) ([]Point, error) {
	resampled, err := Resample(points, r.opts.Samples)
	if err != nil {
		return nil, err
	}
	resampled = RotateBy(resampled, -IndicativeAngle(resampled))
	resampled = ScaleTo(resampled, r.opts.UnitSize)
	return TranslateTo(resampled, Point{}), nil
}

// Scores reports the confidence of every template for a stroke given in
// stroke units. scale converts the pixel minimum length into those units.
func (r *Recognizer) Scores(points []Point, scale float64) ([]float64, error) {
	distances, err := r.distances(points, scale)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(distances))
	for i, d := range distances {
		scores[i] = r.score(d)
	}
	return scores, nil
}

// Recognize returns the nearest template and its score. ok reports whether
// the score reached the acceptance threshold.
func (r *Recognizer) Recognize(points []Point, scale float64) (symbol models.Symbol, score float64, ok bool, err error) {
	distances, err := r.distances(points, scale)
	if err != nil {
		return 0, 0, false, err
	}
	best := 0
	for i, d := range distances {
		if d < distances[best] {
			best = i
		}
	}
	score = r.score(distances[best])
	return r.templates[best].Symbol, score, score >= r.opts.ScoreAcceptance, nil
}

func (r *Recognizer) distances(points []Point, scale float64) ([]float64, error) {
	if len(points) < MinRawPoints {
		return nil, errors.Wrapf(models.ErrDegenerateInput, "%d points, need %d", len(points), MinRawPoints)
	}
	if l := geometry.PathLength(points); l <= 0 || l < r.opts.MinStrokeLength*scale {
		return nil, errors.Wrapf(models.ErrDegenerateInput, "path length %.3f too short", l)
	}

	candidate, err := r.Normalize(points)
	if err != nil {
		return nil, err
	}
	box, err := geometry.Bounds(points)
	if err != nil {
		return nil, err
	}
	box = squareUp(box)

	distances := make([]float64, len(r.templates))
	for i, t := range r.templates {
		T, err := r.Normalize(project(t.Points, box))
		if err != nil {
			// the template collapsed to a point inside an empty box
			distances[i] = math.Inf(1)
			continue
		}
		distances[i] = distanceAtBestAngle(candidate, T, r.angleRange, r.angleStep)
	}
	return distances, nil
}

func (r *Recognizer) score(d float64) float64 {
	return 1 - clamp01(d/(r.opts.UnitSize*0.5))
}

// project maps a unit-square template into box.
func project(template []Point, box geometry.Box) []Point {
	w, h := box.Width(), box.Height()
	out := make([]Point, len(template))
	for i, p := range template {
		out[i] = Point{X: box.Min.X + p.X*w, Y: box.Min.Y + p.Y*h}
	}
	return out
}

// squareUp replaces a box thinner than minBoxAspect with a square of the
// same centre whose side is the longer side.
func squareUp(box geometry.Box) geometry.Box {
	w, h := box.Width(), box.Height()
	side := math.Max(w, h)
	if math.Min(w, h) >= minBoxAspect*side {
		return box
	}
	cx, cy := (box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2
	return geometry.Box{
		Min: Point{X: cx - side/2, Y: cy - side/2},
		Max: Point{X: cx + side/2, Y: cy + side/2},
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
