package gesture

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

const (
	// DefaultMinPointDistancePx is the default point spacing in pixels.
	DefaultMinPointDistancePx = 2
	DefaultMaxPoints          = 4096
)

// Sampler turns pointer positions into a filtered stroke. At most one stroke
// is open at a time. The point spacing is held in pixels and scaled by the
// stroke's units per pixel.
type Sampler struct {
	minPointDistancePx float64
	maxPoints          int

	open          bool
	hasWorld      bool
	points        []models.Point2D
	world         []models.Point3D
	unitsPerPixel float64
}

func New(minPointDistancePx float64, maxPoints int) *Sampler {
	if minPointDistancePx < 0 {
		minPointDistancePx = 0
	}
	if maxPoints < 8 {
		maxPoints = 8
	}
	return &Sampler{
		minPointDistancePx: minPointDistancePx,
		maxPoints:          maxPoints,
		points:             make([]models.Point2D, 0, 1024),
	}
}

// Begin opens a new stroke, dropping any stroke that was never ended.
func (s *Sampler) Begin() {
	s.open = true
	s.hasWorld = false
	s.points = s.points[:0]
	s.world = s.world[:0]
	s.unitsPerPixel = 1
}

func (s *Sampler) Drawing() bool { return s.open }

func (s *Sampler) Len() int { return len(s.points) }

// SetUnitsPerPixel records the world-per-pixel factor of the camera the
// stroke is being drawn through. It applies to the spacing of later points.
func (s *Sampler) SetUnitsPerPixel(u float64) {
	if u > 0 {
		s.unitsPerPixel = u
	}
}

// AddPoint appends p when it lies farther than the minimum spacing from the
// last accepted point. Once the cap is reached further points are ignored.
func (s *Sampler) AddPoint(p models.Point2D) (bool, error) {
	return s.add(p, nil)
}

// AddPointWorld is AddPoint with the world position p was projected from.
func (s *Sampler) AddPointWorld(p models.Point2D, w models.Point3D) (bool, error) {
	return s.add(p, &w)
}

func (s *Sampler) add(p models.Point2D, w *models.Point3D) (bool, error) {
	if !s.open {
		return false, errors.Wrap(models.ErrInvalidState, "add point: no open stroke")
	}
	if len(s.points) >= s.maxPoints {
		return false, nil
	}
	if n := len(s.points); n > 0 {
		d := p.Sub(s.points[n-1])
		spacing := s.minPointDistancePx * s.unitsPerPixel
		if d.Dot(d) <= spacing*spacing {
			return false, nil
		}
	}

	if w != nil && !s.hasWorld {
		// keep World parallel to Points
		for _, q := range s.points {
			s.world = append(s.world, q.Lift(0))
		}
		s.hasWorld = true
	}
	s.points = append(s.points, p)
	if s.hasWorld {
		if w != nil {
			s.world = append(s.world, *w)
		} else {
			s.world = append(s.world, p.Lift(0))
		}
	}
	return true, nil
}

// End seals the open stroke and returns it. The returned stroke owns copies
// of the sampled points.
func (s *Sampler) End() (*models.Stroke, error) {
	if !s.open {
		return nil, errors.Wrap(models.ErrInvalidState, "end: no open stroke")
	}
	s.open = false

	stroke := &models.Stroke{
		ID:            uuid.New(),
		Points:        append([]models.Point2D(nil), s.points...),
		UnitsPerPixel: s.unitsPerPixel,
	}
	if s.hasWorld {
		stroke.World = append([]models.Point3D(nil), s.world...)
	}
	s.points = s.points[:0]
	s.world = s.world[:0]
	return stroke, nil
}

// Reset drops the open stroke, if any, without producing it.
func (s *Sampler) Reset() {
	s.open = false
	s.hasWorld = false
	s.points = s.points[:0]
	s.world = s.world[:0]
}
