package classify

import (
	"github.com/ThatOtherAndrew/ecodigital/internal/geometry"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

const (
	CircleName   = "circle"
	CornerName   = "corner"
	TemplateName = "template"
)

const radiusEpsilon = 1e-9

// Circle accepts closed, round strokes.
type Circle struct {
	cfg Config
}

func NewCircle(cfg Config) *Circle {
	return &Circle{cfg: cfg.Normalized()}
}

func (c *Circle) Name() string { return CircleName }

func (c *Circle) Classify(s *models.Stroke) models.Result {
	points := s.Points
	if len(points) < MinPoints {
		return models.Result{}
	}
	if geometry.PathLength(points) < c.cfg.MinStrokeLength*s.Scale() {
		return models.Result{}
	}

	center := geometry.Centroid(points)
	meanR, stdR := geometry.RadialStats(points, center)
	if meanR <= radiusEpsilon {
		return models.Result{}
	}
	rsd := stdR / meanR
	closure := geometry.Distance(points[0], points[len(points)-1])

	if closure > c.cfg.ClosureToleranceR*meanR || rsd > c.cfg.RoundnessToleranceRsd {
		log.Trace.Printf("circle: rejected closure=%.3f (max %.3f) rsd=%.3f (max %.3f)",
			closure, c.cfg.ClosureToleranceR*meanR, rsd, c.cfg.RoundnessToleranceRsd)
		return models.Result{}
	}

	anchor := center.Lift(0)
	if len(s.World) > 0 {
		anchor = geometry.Centroid3D(s.World)
	}
	return models.Result{
		Kind:       models.CircleMatch,
		Center:     center,
		Anchor:     anchor,
		MeanRadius: meanR,
	}
}

// Corner accepts a single sharp turn between two straight legs, the "V".
type Corner struct {
	cfg Config
}

func NewCorner(cfg Config) *Corner {
	return &Corner{cfg: cfg.Normalized()}
}

func (c *Corner) Name() string { return CornerName }

func (c *Corner) Classify(s *models.Stroke) models.Result {
	points := s.Points
	n := len(points)
	if n < MinPoints {
		return models.Result{}
	}
	total := geometry.PathLength(points)
	if total < c.cfg.MinStrokeLength*s.Scale() || total <= 0 {
		return models.Result{}
	}

	idx, angle := geometry.CornerScan(points)
	if idx < 0 {
		return models.Result{}
	}

	lenA := geometry.PathLengthRange(points, 0, idx)
	lenB := geometry.PathLengthRange(points, idx, n-1)
	if lenA < c.cfg.MinLegFraction*total || lenB < c.cfg.MinLegFraction*total {
		log.Trace.Printf("corner: rejected legs %.3f/%.3f of %.3f", lenA, lenB, total)
		return models.Result{}
	}
	if frac := lenA / total; frac < c.cfg.VertexPosMinFrac || frac > c.cfg.VertexPosMaxFrac {
		log.Trace.Printf("corner: rejected vertex position %.3f", frac)
		return models.Result{}
	}
	if angle < c.cfg.AngleMinDeg || angle > c.cfg.AngleMaxDeg {
		log.Trace.Printf("corner: rejected angle %.1f", angle)
		return models.Result{}
	}
	rmsA := geometry.SegmentStraightnessRMS(points, 0, idx)
	rmsB := geometry.SegmentStraightnessRMS(points, idx, n-1)
	if rmsA > c.cfg.StraightnessRMS || rmsB > c.cfg.StraightnessRMS {
		log.Trace.Printf("corner: rejected straightness %.3f/%.3f", rmsA, rmsB)
		return models.Result{}
	}
	if geometry.Distance(points[0], points[n-1]) < c.cfg.EndSpreadFraction*total {
		log.Trace.Printf("corner: rejected, ends too close")
		return models.Result{}
	}

	return models.Result{
		Kind:        models.CornerMatch,
		VertexIndex: idx,
		Vertex:      s.WorldAt(idx),
		AngleDeg:    angle,
	}
}
