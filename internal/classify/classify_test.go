package classify

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThatOtherAndrew/ecodigital/internal/models"
	"github.com/ThatOtherAndrew/ecodigital/internal/stroke"
)

func circlePoints(cx, cy, r float64, n int, closed bool) []models.Point2D {
	var points []models.Point2D
	for i := range n {
		t := float64(i) / float64(n) * 2 * math.Pi
		points = append(points, models.Point2D{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)})
	}
	if closed {
		points = append(points, points[0])
	}
	return points
}

func polyline(perSeg int, vertices ...models.Point2D) []models.Point2D {
	var points []models.Point2D
	for v := 1; v < len(vertices); v++ {
		a, b := vertices[v-1], vertices[v]
		for i := range perSeg {
			t := float64(i) / float64(perSeg)
			points = append(points, a.Add(b.Sub(a).Scale(t)))
		}
	}
	return append(points, vertices[len(vertices)-1])
}

// vStroke is 30 points from (0,10) down to (5,0) and back up to (10,10),
// with the vertex sampled at index 14.
func vStroke() []models.Point2D {
	legA := polyline(14, models.Point2D{Y: 10}, models.Point2D{X: 5})
	legB := polyline(15, models.Point2D{X: 5}, models.Point2D{X: 10, Y: 10})
	return append(legA, legB[1:]...)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinStrokeLength = 1.0
	return cfg
}

func TestCircleEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.ClosureToleranceR = 0.8
	cfg.RoundnessToleranceRsd = 0.35

	r := NewCircle(cfg).Classify(models.NewStroke(circlePoints(5, 5, 2, 40, false)))
	require.Equal(t, models.CircleMatch, r.Kind)
	assert.InDelta(t, 5, r.Center.X, 1e-9)
	assert.InDelta(t, 5, r.Center.Y, 1e-9)
	assert.InDelta(t, 2, r.MeanRadius, 1e-9)
	assert.Equal(t, models.Point3D{X: r.Center.X, Y: r.Center.Y}, r.Anchor)
}

func TestCircleRegularPolygon(t *testing.T) {
	for _, n := range []int{20, 24, 64} {
		r := NewCircle(testConfig()).Classify(models.NewStroke(circlePoints(0, 0, 30, n, true)))
		require.Equal(t, models.CircleMatch, r.Kind, "n=%d", n)
		assert.InDelta(t, 0, r.Center.X, 1.6, "closing point pulls the centroid slightly")
	}
}

func TestCircleAnchorUsesWorldPoints(t *testing.T) {
	points := circlePoints(5, 5, 2, 40, false)
	world := make([]models.Point3D, len(points))
	for i, p := range points {
		world[i] = models.Point3D{X: p.X, Y: 7, Z: p.Y}
	}
	s := models.NewStroke(points)
	s.World = world

	r := NewCircle(testConfig()).Classify(s)
	require.Equal(t, models.CircleMatch, r.Kind)
	assert.InDelta(t, 5, r.Anchor.X, 1e-9)
	assert.InDelta(t, 7, r.Anchor.Y, 1e-9)
	assert.InDelta(t, 5, r.Anchor.Z, 1e-9)
}

func TestCircleRejects(t *testing.T) {
	tests := []struct {
		name   string
		points []models.Point2D
		cfg    func(*Config)
	}{
		{"too few points", circlePoints(0, 0, 10, 7, false), nil},
		{"too short", circlePoints(0, 0, 0.1, 40, false), nil},
		{"open arc", circlePoints(0, 0, 10, 40, false)[:20], nil},
		{"straight line", polyline(30, models.Point2D{}, models.Point2D{X: 10, Y: 3}), nil},
		{"v shape", vStroke(), nil},
		{"square is not round enough at a strict tolerance", polyline(8,
			models.Point2D{}, models.Point2D{X: 10}, models.Point2D{X: 10, Y: 10}, models.Point2D{Y: 10}, models.Point2D{}),
			func(c *Config) { c.RoundnessToleranceRsd = 0.05 }},
		{"all points coincide", make([]models.Point2D, 12), func(c *Config) { c.MinStrokeLength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			r := NewCircle(cfg).Classify(models.NewStroke(tt.points))
			assert.Equal(t, models.NoMatch, r.Kind)
		})
	}
}

func TestCircleMinLengthScalesWithUnitsPerPixel(t *testing.T) {
	cfg := DefaultConfig() // 120px
	s := models.NewStroke(circlePoints(0, 0, 2, 40, false))
	assert.Equal(t, models.NoMatch, NewCircle(cfg).Classify(s).Kind)

	s.UnitsPerPixel = 0.01 // 120px is 1.2 units
	assert.Equal(t, models.CircleMatch, NewCircle(cfg).Classify(s).Kind)
}

func TestCornerEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.AngleMinDeg, cfg.AngleMaxDeg = 40, 110

	points := vStroke()
	require.Len(t, points, 30)

	r := NewCorner(cfg).Classify(models.NewStroke(points))
	require.Equal(t, models.CornerMatch, r.Kind)
	assert.Equal(t, 14, r.VertexIndex)
	assert.InDelta(t, 5, r.Vertex.X, 1e-9)
	assert.InDelta(t, 0, r.Vertex.Y, 1e-9)
	// legs of slope ±2 meet at 2·atan(1/2)
	assert.InDelta(t, 2*math.Atan(0.5)*180/math.Pi, r.AngleDeg, 1e-6)
}

func TestCornerRightAngle(t *testing.T) {
	points := polyline(10, models.Point2D{X: -10, Y: 10}, models.Point2D{}, models.Point2D{X: 10, Y: 10})
	r := NewCorner(testConfig()).Classify(models.NewStroke(points))
	require.Equal(t, models.CornerMatch, r.Kind)
	assert.InDelta(t, 90, r.AngleDeg, 1e-6)
	assert.Equal(t, 10, r.VertexIndex)
	assert.InDelta(t, 0.5, float64(r.VertexIndex)/float64(len(points)-1), 1e-9)
}

func TestCornerVertexFromWorldPoints(t *testing.T) {
	points := vStroke()
	world := make([]models.Point3D, len(points))
	for i, p := range points {
		world[i] = models.Point3D{X: p.X * 2, Y: 0, Z: p.Y * 2}
	}
	s := models.NewStroke(points)
	s.World = world

	r := NewCorner(testConfig()).Classify(s)
	require.Equal(t, models.CornerMatch, r.Kind)
	assert.InDelta(t, 10, r.Vertex.X, 1e-9)
	assert.InDelta(t, 0, r.Vertex.Z, 1e-9)
}

func TestCornerSwappedAngleRange(t *testing.T) {
	cfg := testConfig()
	cfg.AngleMinDeg, cfg.AngleMaxDeg = 110, 40
	cfg.VertexPosMinFrac, cfg.VertexPosMaxFrac = 0.75, 0.25

	r := NewCorner(cfg).Classify(models.NewStroke(vStroke()))
	assert.Equal(t, models.CornerMatch, r.Kind)
}

func TestCornerRejects(t *testing.T) {
	tests := []struct {
		name   string
		points []models.Point2D
		cfg    func(*Config)
	}{
		{"too few points", polyline(3, models.Point2D{}, models.Point2D{X: 5, Y: 5}, models.Point2D{X: 10}), nil},
		{"straight line", polyline(30, models.Point2D{}, models.Point2D{X: 10, Y: 3}), nil},
		{"circle", circlePoints(5, 5, 2, 40, false), nil},
		{"too sharp", vStroke(), func(c *Config) { c.AngleMinDeg = 60 }},
		{"too open", polyline(10, models.Point2D{}, models.Point2D{X: 10, Y: -2}, models.Point2D{X: 20}), nil},
		{"short first leg", append(polyline(3, models.Point2D{X: 4, Y: 4}, models.Point2D{}),
			polyline(20, models.Point2D{}, models.Point2D{X: 20})[1:]...), nil},
		{"vertex off centre", append(polyline(8, models.Point2D{X: -3, Y: 3}, models.Point2D{}),
			polyline(16, models.Point2D{}, models.Point2D{X: 10, Y: 10})[1:]...),
			func(c *Config) { c.MinLegFraction = 0.1 }},
		{"curved legs", append(reversed(arc(models.Point2D{X: -5, Y: 5}, 10)), arc(models.Point2D{X: 5, Y: 5}, 10)[1:]...), nil},
		{"too short", vStroke(), func(c *Config) { c.MinStrokeLength = 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			r := NewCorner(cfg).Classify(models.NewStroke(tt.points))
			assert.Equal(t, models.NoMatch, r.Kind)
		})
	}
}

func TestCornerRejectsNearlyClosedShape(t *testing.T) {
	// Narrow hairpin: sharp enough with a tolerant range, but the ends meet.
	points := polyline(10, models.Point2D{X: -1, Y: 10}, models.Point2D{}, models.Point2D{X: 1, Y: 10})
	cfg := testConfig()
	cfg.AngleMinDeg = 1

	r := NewCorner(cfg).Classify(models.NewStroke(points))
	assert.Equal(t, models.NoMatch, r.Kind)

	cfg.EndSpreadFraction = 0
	r = NewCorner(cfg).Classify(models.NewStroke(points))
	assert.Equal(t, models.CornerMatch, r.Kind)
}

func TestClassifiersArePure(t *testing.T) {
	points := vStroke()
	before := append([]models.Point2D(nil), points...)
	s := models.NewStroke(points)

	for _, c := range []Classifier{NewCircle(testConfig()), NewCorner(testConfig())} {
		assert.Equal(t, c.Classify(s), c.Classify(s), c.Name())
	}
	assert.Equal(t, before, points)
}

func TestResolve(t *testing.T) {
	circle := models.Result{Kind: models.CircleMatch, MeanRadius: 1}
	corner := models.Result{Kind: models.CornerMatch, AngleDeg: 80}
	none := models.Result{}

	tests := []struct {
		priority       Priority
		circle, corner models.Result
		want           []models.Kind
	}{
		{FirstWins, circle, corner, []models.Kind{models.CornerMatch, models.CircleMatch}},
		{PreferCorner, circle, corner, []models.Kind{models.CornerMatch}},
		{PreferCircle, circle, corner, []models.Kind{models.CircleMatch}},
		{PreferCorner, circle, none, []models.Kind{models.CircleMatch}},
		{PreferCircle, none, corner, []models.Kind{models.CornerMatch}},
		{FirstWins, none, none, nil},
	}
	for _, tt := range tests {
		t.Run(tt.priority.String(), func(t *testing.T) {
			var got []models.Kind
			for _, r := range Resolve(tt.priority, tt.circle, tt.corner) {
				got = append(got, r.Kind)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority(" Prefer_Circle ")
	assert.True(t, ok)
	assert.Equal(t, PreferCircle, p)

	p, ok = ParsePriority("loudest")
	assert.False(t, ok)
	assert.Equal(t, FirstWins, p)
}

func TestPipeline(t *testing.T) {
	rec, err := stroke.NewRecognizer(stroke.DefaultOptions(), stroke.DefaultTemplates())
	require.NoError(t, err)

	var classifiers []Classifier
	for _, name := range []string{"circle", "corner", "template"} {
		c, err := New(name, DefaultConfig(), rec)
		require.NoError(t, err)
		classifiers = append(classifiers, c)
	}
	p := NewPipeline(PreferCircle, classifiers...)

	results := p.Classify(models.NewStroke(circlePoints(200, 200, 100, 48, true)))
	require.Len(t, results, 2)
	assert.Equal(t, models.CircleMatch, results[0].Kind)
	assert.Equal(t, models.TemplateMatch, results[1].Kind)
	assert.Equal(t, models.Circle, results[1].Symbol)
	category, ok := results[1].Category()
	assert.True(t, ok)
	assert.Equal(t, models.Circle, category)

	assert.Empty(t, p.Classify(models.NewStroke(circlePoints(0, 0, 1, 5, false))))
}

func TestNewUnknownClassifier(t *testing.T) {
	_, err := New("hexagon", DefaultConfig(), nil)
	assert.True(t, errors.Is(err, models.ErrConfiguration))

	_, err = New("template", DefaultConfig(), nil)
	assert.True(t, errors.Is(err, models.ErrConfiguration))
}

// arc bows a stroke from 0 towards end through a point offset sideways.
func arc(end models.Point2D, n int) []models.Point2D {
	normal := models.Point2D{X: -end.Y, Y: end.X}.Scale(0.3)
	points := make([]models.Point2D, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		points = append(points, end.Scale(t).Add(normal.Scale(4*t*(1-t))))
	}
	return points
}

func reversed(points []models.Point2D) []models.Point2D {
	out := make([]models.Point2D, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}
