package config

import (
	"github.com/ThatOtherAndrew/ecodigital/internal/classify"
	"github.com/ThatOtherAndrew/ecodigital/internal/dispatch"
	"github.com/ThatOtherAndrew/ecodigital/internal/execute"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

func checkRange(name string, v *float64, def, lo, hi float64) {
	if *v < lo || *v > hi {
		log.Warning.Printf("Invalid %s value %.2f, must be between %.2f and %.2f, using default %.2f",
			name, *v, lo, hi, def)
		*v = def
	}
}

func checkPositive(name string, v *float64, def float64) {
	if *v <= 0 {
		log.Warning.Printf("Invalid %s value %.2f, must be positive, using default %.2f", name, *v, def)
		*v = def
	}
}

func checkName(name string, v *string, def string, valid func(string) bool) {
	if !valid(*v) {
		log.Warning.Printf("Invalid %s value '%s', using default '%s'", name, *v, def)
		*v = def
	}
}

func orderPair(name string, lo, hi *float64) {
	if *lo > *hi {
		log.Warning.Printf("%s range is reversed (%.2f > %.2f), swapping", name, *lo, *hi)
		*lo, *hi = *hi, *lo
	}
}

// validate resets out-of-range values to their defaults and puts swapped
// ranges back in order. Every change is logged.
func (s *Settings) validate() {
	def := Default()

	checkRange("sampler.min_point_distance_px", &s.Sampler.MinPointDistancePx, def.Sampler.MinPointDistancePx, 0, 1e6)
	if s.Sampler.MaxPointsPerStroke < classify.MinPoints {
		log.Warning.Printf("Invalid sampler.max_points_per_stroke value %d, must be at least %d, using default %d",
			s.Sampler.MaxPointsPerStroke, classify.MinPoints, def.Sampler.MaxPointsPerStroke)
		s.Sampler.MaxPointsPerStroke = def.Sampler.MaxPointsPerStroke
	}
	checkName("plane", &s.Plane, def.Plane, func(n string) bool {
		_, ok := execute.ParsePlane(n)
		return ok
	})

	c, dc := &s.Classifier, def.Classifier
	checkRange("classifier.min_stroke_length_px", &c.MinStrokeLengthPx, dc.MinStrokeLengthPx, 0, 1e6)
	checkPositive("classifier.closure_tolerance_r", &c.ClosureToleranceR, dc.ClosureToleranceR)
	checkPositive("classifier.roundness_tolerance_rsd", &c.RoundnessToleranceRsd, dc.RoundnessToleranceRsd)
	checkRange("classifier.angle_min_deg", &c.AngleMinDeg, dc.AngleMinDeg, 0, 180)
	checkRange("classifier.angle_max_deg", &c.AngleMaxDeg, dc.AngleMaxDeg, 0, 180)
	orderPair("classifier angle", &c.AngleMinDeg, &c.AngleMaxDeg)
	checkPositive("classifier.straightness_rms", &c.StraightnessRMS, dc.StraightnessRMS)
	checkRange("classifier.min_leg_fraction", &c.MinLegFraction, dc.MinLegFraction, 0, 0.5)
	checkRange("classifier.vertex_pos_min_frac", &c.VertexPosMinFrac, dc.VertexPosMinFrac, 0, 1)
	checkRange("classifier.vertex_pos_max_frac", &c.VertexPosMaxFrac, dc.VertexPosMaxFrac, 0, 1)
	orderPair("classifier vertex position", &c.VertexPosMinFrac, &c.VertexPosMaxFrac)
	checkRange("classifier.end_spread_fraction", &c.EndSpreadFraction, dc.EndSpreadFraction, 0, 1)

	r, dr := &s.Recognizer, def.Recognizer
	if r.Samples < classify.MinPoints {
		log.Warning.Printf("Invalid recognizer.samples value %d, must be at least %d, using default %d",
			r.Samples, classify.MinPoints, dr.Samples)
		r.Samples = dr.Samples
	}
	checkPositive("recognizer.unit_size", &r.UnitSize, dr.UnitSize)
	checkRange("recognizer.angle_range_deg", &r.AngleRangeDeg, dr.AngleRangeDeg, 0, 180)
	checkPositive("recognizer.angle_step_deg", &r.AngleStepDeg, dr.AngleStepDeg)
	checkRange("recognizer.score_acceptance", &r.ScoreAcceptance, dr.ScoreAcceptance, 0, 1)
	checkRange("recognizer.min_stroke_length_px", &r.MinStrokeLengthPx, dr.MinStrokeLengthPx, 0, 1e6)
	var templates []string
	for _, name := range r.Templates {
		if _, ok := models.ParseSymbol(name); !ok {
			log.Warning.Printf("Ignoring unknown template '%s'", name)
			continue
		}
		templates = append(templates, name)
	}
	r.Templates = templates

	d, dd := &s.Dispatch, def.Dispatch
	checkName("dispatch.priority", &d.Priority, dd.Priority, func(n string) bool {
		_, ok := classify.ParsePriority(n)
		return ok
	})
	checkName("dispatch.action", &d.Action, dd.Action, func(n string) bool {
		_, ok := dispatch.ParseAction(n)
		return ok
	})
	validScope := func(n string) bool {
		_, ok := dispatch.ParseScope(n)
		return ok
	}
	checkName("dispatch.circle_scope", &d.CircleScope, dd.CircleScope, validScope)
	checkName("dispatch.corner_scope", &d.CornerScope, dd.CornerScope, validScope)
	checkName("dispatch.template_scope", &d.TemplateScope, dd.TemplateScope, validScope)
	checkPositive("dispatch.selection_radius_multiplier", &d.SelectionRadiusMultiplier, dd.SelectionRadiusMultiplier)
	checkRange("dispatch.aabb_padding", &d.AABBPadding, dd.AABBPadding, 0, 1e6)

	var names []string
	for _, name := range s.Classifiers {
		switch name {
		case classify.CircleName, classify.CornerName, classify.TemplateName:
			names = append(names, name)
		default:
			log.Warning.Printf("Ignoring unknown classifier '%s'", name)
		}
	}
	if len(names) == 0 {
		log.Warning.Printf("No classifiers enabled, using default %v", def.Classifiers)
		names = def.Classifiers
	}
	s.Classifiers = names
}
