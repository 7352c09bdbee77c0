// Package geometry measures sampled 2D strokes: path length, centroid,
// radial spread, corner angles and leg straightness. Every function is pure
// and leaves its input untouched.
package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

// NoCornerAngle is reported by CornerScan when the stroke has no interior
// index to test.
const NoCornerAngle = 181.0

const epsilon = 1e-9

func Distance(a, b models.Point2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PathLength sums consecutive distances. It is 0 for fewer than 2 points.
func PathLength(points []models.Point2D) float64 {
	return PathLengthRange(points, 0, len(points)-1)
}

// PathLengthRange measures the sub-path points[i0..i1], both inclusive.
func PathLengthRange(points []models.Point2D, i0, i1 int) float64 {
	if i0 < 0 {
		i0 = 0
	}
	if i1 >= len(points) {
		i1 = len(points) - 1
	}
	d := 0.0
	for i := i0 + 1; i <= i1; i++ {
		d += Distance(points[i-1], points[i])
	}
	return d
}

// Centroid is the arithmetic mean of points, or the origin for none.
func Centroid(points []models.Point2D) models.Point2D {
	if len(points) == 0 {
		return models.Point2D{}
	}
	var c models.Point2D
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return models.Point2D{X: c.X / n, Y: c.Y / n}
}

func Centroid3D(points []models.Point3D) models.Point3D {
	if len(points) == 0 {
		return models.Point3D{}
	}
	var c models.Point3D
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(points)))
}

// RadialStats returns the mean and the population standard deviation of
// each point's distance to center.
func RadialStats(points []models.Point2D, center models.Point2D) (mean, stdDev float64) {
	if len(points) == 0 {
		return 0, 0
	}
	n := float64(len(points))
	for _, p := range points {
		mean += Distance(p, center)
	}
	mean /= n

	variance := 0.0
	for _, p := range points {
		d := Distance(p, center) - mean
		variance += d * d
	}
	variance /= n
	return mean, math.Sqrt(variance)
}

// CornerWindow is the neighbour offset used by CornerScan for n points.
func CornerWindow(n int) int {
	w := n / 12
	if w < 2 {
		return 2
	}
	if w > 8 {
		return 8
	}
	return w
}

// CornerScan finds the sharpest direction change along the stroke using
// CornerWindow(len(points)) as the offset.
func CornerScan(points []models.Point2D) (bestIndex int, bestAngleDeg float64) {
	return CornerScanWindow(points, CornerWindow(len(points)))
}

// CornerScanWindow measures, for every i with window <= i < n-window, the
// angle at points[i] between the vectors to points[i-window] and
// points[i+window], and returns the smallest one. It returns
// (-1, NoCornerAngle) when no such i exists.
func CornerScanWindow(points []models.Point2D, window int) (bestIndex int, bestAngleDeg float64) {
	bestIndex, bestAngleDeg = -1, NoCornerAngle
	n := len(points)
	for i := window; i < n-window; i++ {
		v1 := points[i-window].Sub(points[i])
		v2 := points[i+window].Sub(points[i])
		l1, l2 := v1.Len(), v2.Len()
		if l1 <= epsilon || l2 <= epsilon {
			continue
		}
		dot := clamp(v1.Dot(v2)/(l1*l2), -1, 1)
		angle := math.Acos(dot) * 180 / math.Pi
		if angle < bestAngleDeg {
			bestAngleDeg = angle
			bestIndex = i
		}
	}
	return bestIndex, bestAngleDeg
}

// DistanceToSegment is the distance from p to the closed segment ab.
func DistanceToSegment(p, a, b models.Point2D) float64 {
	ab := b.Sub(a)
	t := p.Sub(a).Dot(ab) / math.Max(ab.Dot(ab), 1e-12)
	t = clamp(t, 0, 1)
	return Distance(p, a.Add(ab.Scale(t)))
}

// SegmentStraightnessRMS is the RMS distance of the points strictly between
// i0 and i1 to the chord points[i0]-points[i1], divided by the chord length.
// Spans with fewer than 2 interior points or a vanishing chord yield 0.
func SegmentStraightnessRMS(points []models.Point2D, i0, i1 int) float64 {
	if i0 < 0 || i1 >= len(points) || i1-i0-1 < 2 {
		return 0
	}
	a, b := points[i0], points[i1]
	chord := Distance(a, b)
	if chord <= epsilon {
		return 0
	}

	sum2 := 0.0
	for i := i0 + 1; i < i1; i++ {
		d := DistanceToSegment(points[i], a, b)
		sum2 += d * d
	}
	rms := math.Sqrt(sum2 / float64(i1-i0-1))
	return rms / chord
}

// Box is an axis-aligned rectangle.
type Box struct {
	Min, Max models.Point2D
}

// Bounds returns the axis-aligned bounding box of a non-empty point set.
func Bounds(points []models.Point2D) (Box, error) {
	if len(points) == 0 {
		return Box{}, errors.Wrap(models.ErrDegenerateInput, "bounding box of zero points")
	}
	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b, nil
}

func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Expand grows the box by pad on every side.
func (b Box) Expand(pad float64) Box {
	return Box{
		Min: models.Point2D{X: b.Min.X - pad, Y: b.Min.Y - pad},
		Max: models.Point2D{X: b.Max.X + pad, Y: b.Max.Y + pad},
	}
}

func (b Box) Contains(p models.Point2D) bool {
	return p.X >= b.Min.X && p.Y >= b.Min.Y && p.X <= b.Max.X && p.Y <= b.Max.Y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
