package config

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ThatOtherAndrew/ecodigital/internal/classify"
	"github.com/ThatOtherAndrew/ecodigital/internal/dispatch"
	"github.com/ThatOtherAndrew/ecodigital/internal/execute"
	"github.com/ThatOtherAndrew/ecodigital/internal/gesture"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
	"github.com/ThatOtherAndrew/ecodigital/internal/stroke"
)

func (s *Settings) ClassifierConfig() classify.Config {
	c := s.Classifier
	return classify.Config{
		MinStrokeLength:       c.MinStrokeLengthPx,
		ClosureToleranceR:     c.ClosureToleranceR,
		RoundnessToleranceRsd: c.RoundnessToleranceRsd,
		AngleMinDeg:           c.AngleMinDeg,
		AngleMaxDeg:           c.AngleMaxDeg,
		StraightnessRMS:       c.StraightnessRMS,
		MinLegFraction:        c.MinLegFraction,
		VertexPosMinFrac:      c.VertexPosMinFrac,
		VertexPosMaxFrac:      c.VertexPosMaxFrac,
		EndSpreadFraction:     c.EndSpreadFraction,
	}.Normalized()
}

func (s *Settings) RecognizerOptions() stroke.Options {
	r := s.Recognizer
	return stroke.Options{
		Samples:         r.Samples,
		UnitSize:        r.UnitSize,
		AngleRangeDeg:   r.AngleRangeDeg,
		AngleStepDeg:    r.AngleStepDeg,
		ScoreAcceptance: r.ScoreAcceptance,
		MinStrokeLength: r.MinStrokeLengthPx,
	}
}

func (s *Settings) DispatchOptions() dispatch.Options {
	d := s.Dispatch
	opts := dispatch.DefaultOptions()
	opts.Action, _ = dispatch.ParseAction(d.Action)
	opts.CircleScope, _ = dispatch.ParseScope(d.CircleScope)
	opts.CornerScope, _ = dispatch.ParseScope(d.CornerScope)
	opts.TemplateScope, _ = dispatch.ParseScope(d.TemplateScope)
	opts.SelectionRadiusMultiplier = d.SelectionRadiusMultiplier
	opts.AABBPadding = d.AABBPadding
	return opts
}

func (s *Settings) Priority() classify.Priority {
	p, _ := classify.ParsePriority(s.Dispatch.Priority)
	return p
}

func (s *Settings) PlaneAxes() execute.Plane {
	p, _ := execute.ParsePlane(s.Plane)
	return p
}

func (s *Settings) NewSampler() *gesture.Sampler {
	return gesture.New(s.Sampler.MinPointDistancePx, s.Sampler.MaxPointsPerStroke)
}

// Templates returns the built-in templates narrowed to the configured
// symbols, with any template file laid over them. A relative template file
// is resolved against the settings file's directory.
func (s *Settings) Templates() ([]stroke.Template, error) {
	var symbols []models.Symbol
	for _, name := range s.Recognizer.Templates {
		if sym, ok := models.ParseSymbol(name); ok {
			symbols = append(symbols, sym)
		}
	}

	templates := stroke.DefaultTemplates()
	if file := s.Recognizer.TemplateFile; file != "" {
		if !filepath.IsAbs(file) && s.path != "" {
			file = filepath.Join(filepath.Dir(s.path), file)
		}
		var err error
		if templates, err = stroke.LoadTemplates(file, templates); err != nil {
			return nil, err
		}
	}
	return stroke.SelectTemplates(templates, symbols), nil
}

// Pipeline builds the enabled classifiers in their configured order. The
// recognizer is built only when the template classifier is enabled.
func (s *Settings) Pipeline() (*classify.Pipeline, *stroke.Recognizer, error) {
	var rec *stroke.Recognizer
	var classifiers []classify.Classifier
	cfg := s.ClassifierConfig()

	for _, name := range s.Classifiers {
		if name == classify.CornerName && !s.Classifier.CornerEnabled {
			log.Trace.Printf("Corner classifier disabled")
			continue
		}
		if name == classify.TemplateName && rec == nil {
			templates, err := s.Templates()
			if err != nil {
				return nil, nil, err
			}
			if rec, err = stroke.NewRecognizer(s.RecognizerOptions(), templates); err != nil {
				return nil, nil, errors.Wrap(err, "build recognizer")
			}
		}
		c, err := classify.New(name, cfg, rec)
		if err != nil {
			return nil, nil, err
		}
		classifiers = append(classifiers, c)
	}
	return classify.NewPipeline(s.Priority(), classifiers...), rec, nil
}
