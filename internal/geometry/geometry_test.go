package geometry

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

func circlePoints(cx, cy, r float64, n int) []models.Point2D {
	points := make([]models.Point2D, n)
	for i := range n {
		t := float64(i) / float64(n) * 2 * math.Pi
		points[i] = models.Point2D{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)}
	}
	return points
}

// polyline samples each segment between consecutive vertices with perSeg
// points, including the final vertex once.
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

func TestPathLength(t *testing.T) {
	tests := []struct {
		name   string
		points []models.Point2D
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []models.Point2D{{X: 3, Y: 4}}, 0},
		{"segment", []models.Point2D{{X: 0, Y: 0}, {X: 3, Y: 4}}, 5},
		{"square", polyline(4, models.Point2D{}, models.Point2D{X: 1}, models.Point2D{X: 1, Y: 1}, models.Point2D{Y: 1}, models.Point2D{}), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PathLength(tt.points), 1e-9)
		})
	}
}

func TestPathLengthRange(t *testing.T) {
	points := polyline(1, models.Point2D{}, models.Point2D{X: 1}, models.Point2D{X: 1, Y: 2}, models.Point2D{X: 4, Y: 2})
	assert.InDelta(t, 1, PathLengthRange(points, 0, 1), 1e-9)
	assert.InDelta(t, 5, PathLengthRange(points, 1, 3), 1e-9)
	assert.Zero(t, PathLengthRange(points, 2, 2))
	assert.Zero(t, PathLengthRange(points, 3, 1))
}

func TestCentroidAndRadialStats(t *testing.T) {
	points := circlePoints(5, 5, 2, 40)

	c := Centroid(points)
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 5, c.Y, 1e-9)

	mean, std := RadialStats(points, c)
	assert.InDelta(t, 2, mean, 1e-9)
	assert.InDelta(t, 0, std, 1e-9)

	assert.Equal(t, models.Point2D{}, Centroid(nil))
}

func TestRadialStatsPopulationDeviation(t *testing.T) {
	points := []models.Point2D{{X: 1}, {X: -3}}
	mean, std := RadialStats(points, models.Point2D{})
	assert.InDelta(t, 2, mean, 1e-9)
	assert.InDelta(t, 1, std, 1e-9)
}

func TestCornerWindow(t *testing.T) {
	assert.Equal(t, 2, CornerWindow(8))
	assert.Equal(t, 2, CornerWindow(30))
	assert.Equal(t, 5, CornerWindow(60))
	assert.Equal(t, 8, CornerWindow(1000))
}

func TestCornerScanRightAngle(t *testing.T) {
	points := polyline(10, models.Point2D{X: -10, Y: 10}, models.Point2D{}, models.Point2D{X: 10, Y: 10})
	idx, angle := CornerScan(points)
	assert.Equal(t, 10, idx)
	assert.InDelta(t, 90, angle, 1e-6)
}

func TestCornerScanStraightLine(t *testing.T) {
	points := polyline(20, models.Point2D{}, models.Point2D{X: 10, Y: 4})
	idx, angle := CornerScan(points)
	require.GreaterOrEqual(t, idx, 0)
	assert.InDelta(t, 180, angle, 1e-3)
}

func TestCornerScanTooShort(t *testing.T) {
	points := polyline(2, models.Point2D{}, models.Point2D{X: 1}) // 3 points, window 2
	idx, angle := CornerScan(points)
	assert.Equal(t, -1, idx)
	assert.Equal(t, NoCornerAngle, angle)
}

func TestSegmentStraightnessRMS(t *testing.T) {
	straight := polyline(10, models.Point2D{}, models.Point2D{X: 10})
	assert.InDelta(t, 0, SegmentStraightnessRMS(straight, 0, len(straight)-1), 1e-12)

	// Interior points sit 1 unit off a chord of length 10.
	bent := []models.Point2D{{X: 0}, {X: 3, Y: 1}, {X: 7, Y: 1}, {X: 10}}
	assert.InDelta(t, 0.1, SegmentStraightnessRMS(bent, 0, 3), 1e-9)

	assert.Zero(t, SegmentStraightnessRMS(bent, 0, 2), "one interior point")
	closed := []models.Point2D{{X: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 0}}
	assert.Zero(t, SegmentStraightnessRMS(closed, 0, 3), "zero chord")
}

func TestDistanceToSegment(t *testing.T) {
	a, b := models.Point2D{}, models.Point2D{X: 10}
	assert.InDelta(t, 2, DistanceToSegment(models.Point2D{X: 5, Y: 2}, a, b), 1e-9)
	assert.InDelta(t, 5, DistanceToSegment(models.Point2D{X: -3, Y: 4}, a, b), 1e-9)
	assert.InDelta(t, 5, DistanceToSegment(models.Point2D{X: 3, Y: 4}, a, a), 1e-9)
}

func TestBounds(t *testing.T) {
	_, err := Bounds(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDegenerateInput))

	box, err := Bounds([]models.Point2D{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}})
	require.NoError(t, err)
	assert.Equal(t, models.Point2D{X: -2, Y: -1}, box.Min)
	assert.Equal(t, models.Point2D{X: 4, Y: 5}, box.Max)
	assert.InDelta(t, 6, box.Width(), 1e-9)
	assert.InDelta(t, 6, box.Height(), 1e-9)

	padded := box.Expand(0.5)
	assert.True(t, padded.Contains(models.Point2D{X: 4.4, Y: -1.4}))
	assert.False(t, box.Contains(models.Point2D{X: 4.4, Y: -1.4}))
}
