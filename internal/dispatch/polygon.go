package dispatch

import (
	"math"

	"github.com/rclancey/earcut"

	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

const minTriangleArea = 1e-9

// polygonRegion treats the stroke as a closed outline and tests membership
// against its triangulation. Strokes that do not enclose any area fall back
// to the padded bounding box.
func polygonRegion(points []models.Point2D, pad float64) func(models.Point2D) bool {
	triangles := earClip(points)
	if len(triangles) == 0 {
		return boxRegion(points, pad)
	}
	return func(p models.Point2D) bool {
		for _, tri := range triangles {
			if inTriangle(p, tri) {
				return true
			}
		}
		return false
	}
}

// earClip triangulates the outline with the earcut algorithm.
func earClip(points []models.Point2D) [][3]models.Point2D {
	if len(points) < 3 {
		return nil
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	vertexCoords := make([]float64, len(points)*2)
	for i, p := range points {
		vertexCoords[i*2] = p.X
		vertexCoords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(vertexCoords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		log.Trace.Printf("Triangulation failed for %d-point stroke: %v", len(points), err)
		return nil
	}
	if len(indices)%3 != 0 {
		log.Trace.Printf("Invalid triangle count (indices: %d, not divisible by 3)", len(indices))
		return nil
	}

	triangles := make([][3]models.Point2D, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		tri := [3]models.Point2D{
			points[indices[i]],
			points[indices[i+1]],
			points[indices[i+2]],
		}
		// Skip slivers from collinear runs
		if math.Abs(cross(tri[0], tri[1], tri[2])) < minTriangleArea {
			continue
		}
		triangles = append(triangles, tri)
	}
	return triangles
}

func inTriangle(p models.Point2D, t [3]models.Point2D) bool {
	d1 := cross(p, t[0], t[1])
	d2 := cross(p, t[1], t[2])
	d3 := cross(p, t[2], t[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross(p, a, b models.Point2D) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}
