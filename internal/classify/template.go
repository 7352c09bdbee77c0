package classify

import (
	"github.com/ThatOtherAndrew/ecodigital/internal/geometry"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
	"github.com/ThatOtherAndrew/ecodigital/internal/stroke"
)

// Template adapts the $1 recognizer to the Classifier interface.
type Template struct {
	rec *stroke.Recognizer
}

func NewTemplate(rec *stroke.Recognizer) *Template {
	return &Template{rec: rec}
}

func (t *Template) Name() string { return TemplateName }

func (t *Template) Classify(s *models.Stroke) models.Result {
	symbol, score, ok, err := t.rec.Recognize(s.Points, s.Scale())
	if err != nil {
		log.Trace.Printf("template: %v", err)
		return models.Result{}
	}
	if !ok {
		log.Trace.Printf("template: no confident match (best %s, score %.3f)", symbol, score)
		return models.Result{}
	}

	anchor := geometry.Centroid(s.Points).Lift(0)
	if len(s.World) > 0 {
		anchor = geometry.Centroid3D(s.World)
	}
	return models.Result{
		Kind:   models.TemplateMatch,
		Symbol: symbol,
		Score:  score,
		Anchor: anchor,
	}
}
