// Package classify decides which shape, if any, a finished stroke depicts.
//
// Three interchangeable classifiers implement Classifier: Circle and Corner
// apply closed-form geometric tests, Template runs the $1 recognizer. A
// Pipeline runs a configured list of them and settles conflicts between the
// two geometric ones with a Priority.
package classify

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/ThatOtherAndrew/ecodigital/internal/models"
	"github.com/ThatOtherAndrew/ecodigital/internal/stroke"
)

// MinPoints is the fewest samples any classifier will measure.
const MinPoints = 8

type Classifier interface {
	Name() string
	// Classify never fails: strokes that match nothing, including strokes
	// too short to measure, yield a NoMatch result.
	Classify(s *models.Stroke) models.Result
}

// Config holds the geometric tolerances. MinStrokeLength is in pixels and is
// converted with the stroke's units per pixel; the other values are ratios
// or degrees.
type Config struct {
	MinStrokeLength       float64
	ClosureToleranceR     float64
	RoundnessToleranceRsd float64
	AngleMinDeg           float64
	AngleMaxDeg           float64
	StraightnessRMS       float64
	MinLegFraction        float64
	VertexPosMinFrac      float64
	VertexPosMaxFrac      float64
	// EndSpreadFraction is the minimum distance between the stroke ends, as
	// a fraction of its length, for a corner to count.
	EndSpreadFraction float64
}

func DefaultConfig() Config {
	return Config{
		MinStrokeLength:       120,
		ClosureToleranceR:     0.8,
		RoundnessToleranceRsd: 0.35,
		AngleMinDeg:           40,
		AngleMaxDeg:           110,
		StraightnessRMS:       0.12,
		MinLegFraction:        0.25,
		VertexPosMinFrac:      0.25,
		VertexPosMaxFrac:      0.75,
		EndSpreadFraction:     0.30,
	}
}

// Normalized returns c with swapped ranges put back in order.
func (c Config) Normalized() Config {
	c.AngleMinDeg, c.AngleMaxDeg = math.Min(c.AngleMinDeg, c.AngleMaxDeg), math.Max(c.AngleMinDeg, c.AngleMaxDeg)
	c.VertexPosMinFrac, c.VertexPosMaxFrac = math.Min(c.VertexPosMinFrac, c.VertexPosMaxFrac), math.Max(c.VertexPosMinFrac, c.VertexPosMaxFrac)
	return c
}

// New builds a classifier by name. rec is only needed for "template".
func New(name string, cfg Config, rec *stroke.Recognizer) (Classifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CircleName:
		return NewCircle(cfg), nil
	case CornerName:
		return NewCorner(cfg), nil
	case TemplateName:
		if rec == nil {
			return nil, errors.Wrap(models.ErrConfiguration, "template classifier needs a recognizer")
		}
		return NewTemplate(rec), nil
	}
	return nil, errors.Wrapf(models.ErrConfiguration, "unknown classifier %q", name)
}
