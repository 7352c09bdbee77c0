// https://depts.washington.edu/acelab/proj/dollar/dollar.pdf

package stroke

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ThatOtherAndrew/ecodigital/internal/geometry"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

type Point = models.Point2D

// Step 1

// Resample walks the polyline and emits a point every pathLength/(n-1) of
// arc length, so the result always holds exactly n points.
func Resample(points []Point, n int) ([]Point, error) {
	if n < 2 {
		return nil, errors.Wrapf(models.ErrDegenerateInput, "resample to %d points", n)
	}
	L := geometry.PathLength(points)
	if len(points) < 2 || L <= 0 {
		return nil, errors.Wrap(models.ErrDegenerateInput, "resample a stroke of zero length")
	}

	I := L / float64(n-1)
	D := 0.0
	newPoints := make([]Point, 0, n)
	newPoints = append(newPoints, points[0])
	prev := points[0]
	for i := 1; i < len(points) && len(newPoints) < n; i++ {
		cur := points[i]
		d := geometry.Distance(prev, cur)
		if d == 0 {
			continue
		}
		for D+d >= I && len(newPoints) < n {
			t := (I - D) / d
			q := Point{X: prev.X + t*(cur.X-prev.X), Y: prev.Y + t*(cur.Y-prev.Y)}
			newPoints = append(newPoints, q)
			// the rest of the segment starts at q
			prev = q
			d = geometry.Distance(prev, cur)
			D = 0
		}
		D += d
		prev = cur
	}
	for len(newPoints) < n {
		newPoints = append(newPoints, points[len(points)-1])
	}
	return newPoints, nil
}

// Step 2

func IndicativeAngle(points []Point) float64 {
	c := geometry.Centroid(points)
	return math.Atan2(c.Y-points[0].Y, c.X-points[0].X)
}

// RotateBy rotates points around their centroid by angle radians.
func RotateBy(points []Point, angle float64) []Point {
	c := geometry.Centroid(points)
	cos, sin := math.Cos(angle), math.Sin(angle)
	newPoints := make([]Point, len(points))
	for i, p := range points {
		dx, dy := p.X-c.X, p.Y-c.Y
		newPoints[i] = Point{
			X: dx*cos - dy*sin + c.X,
			Y: dx*sin + dy*cos + c.Y,
		}
	}
	return newPoints
}

// Step 3

// ScaleTo scales uniformly so the larger bounding-box side equals size.
func ScaleTo(points []Point, size float64) []Point {
	B, err := geometry.Bounds(points)
	if err != nil {
		return nil
	}
	scale := size / math.Max(math.Max(B.Width(), B.Height()), 1e-6)
	newPoints := make([]Point, len(points))
	for i, p := range points {
		newPoints[i] = p.Sub(B.Min).Scale(scale)
	}
	return newPoints
}

func TranslateTo(points []Point, k Point) []Point {
	c := geometry.Centroid(points)
	newPoints := make([]Point, len(points))
	for i, p := range points {
		newPoints[i] = p.Add(k.Sub(c))
	}
	return newPoints
}

// Step 4

func PathDistance(A, B []Point) float64 {
	d := 0.0
	for i := range A {
		d += geometry.Distance(A[i], B[i])
	}
	return d / float64(len(A))
}

// distanceAtBestAngle searches rotations of T in [-angleRange, angleRange]
// stepping by angleStep and keeps the smallest path distance to points.
func distanceAtBestAngle(points, T []Point, angleRange, angleStep float64) float64 {
	best := math.Inf(1)
	for a := -angleRange; a <= angleRange+1e-9; a += angleStep {
		if d := PathDistance(points, RotateBy(T, a)); d < best {
			best = d
		}
	}
	return best
}
