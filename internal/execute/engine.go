// Package execute runs a capture session: pointer events build a stroke,
// pointer-up classifies it and hands every result to the dispatcher.
package execute

import (
	"strings"

	"github.com/ThatOtherAndrew/ecodigital/internal/classify"
	"github.com/ThatOtherAndrew/ecodigital/internal/dispatch"
	"github.com/ThatOtherAndrew/ecodigital/internal/gesture"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

// Plane selects which world axes become the stroke's 2D coordinates.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
)

func (p Plane) String() string {
	if p == PlaneXZ {
		return "xz"
	}
	return "xy"
}

func ParsePlane(name string) (Plane, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xy":
		return PlaneXY, true
	case "xz":
		return PlaneXZ, true
	}
	return PlaneXY, false
}

// Projector maps a screen position onto the drawing surface. ok is false
// when the position does not hit the surface.
type Projector func(screen models.Point2D) (world models.Point3D, unitsPerPixel float64, ok bool)

type Options struct {
	Plane Plane
	// Projector is optional. Without one, screen coordinates are used as
	// stroke coordinates at one unit per pixel.
	Projector Projector

	OnStrokeFinished func(s *models.Stroke)
	OnRecognized     func(s *models.Stroke, r models.Result)
}

type Engine struct {
	sampler    *gesture.Sampler
	pipeline   *classify.Pipeline
	dispatcher *dispatch.Dispatcher
	opts       Options

	suppressed bool
}

// New builds an engine. dispatcher may be nil, in which case results are
// only reported through the callbacks.
func New(sampler *gesture.Sampler, pipeline *classify.Pipeline, dispatcher *dispatch.Dispatcher, opts Options) *Engine {
	return &Engine{
		sampler:    sampler,
		pipeline:   pipeline,
		dispatcher: dispatcher,
		opts:       opts,
	}
}

func (e *Engine) Drawing() bool { return e.sampler.Drawing() }

// Handle processes one input event. Results are returned for the pointer-up
// that completes a stroke and are nil otherwise.
func (e *Engine) Handle(ev models.InputEvent) ([]models.Result, error) {
	switch ev.Type {
	case models.PointerDown:
		if ev.OverUI {
			e.sampler.Reset()
			e.suppressed = true
			return nil, nil
		}
		if e.sampler.Drawing() {
			log.Trace.Printf("Discarding unfinished stroke of %d points", e.sampler.Len())
		}
		e.suppressed = false
		e.sampler.Begin()
		return nil, e.addPoint(ev.Screen)

	case models.PointerMove:
		if e.suppressed || !e.sampler.Drawing() {
			return nil, nil
		}
		return nil, e.addPoint(ev.Screen)

	case models.PointerUp:
		if e.suppressed {
			e.suppressed = false
			return nil, nil
		}
		if !e.sampler.Drawing() {
			return nil, nil
		}
		if err := e.addPoint(ev.Screen); err != nil {
			return nil, err
		}
		s, err := e.sampler.End()
		if err != nil {
			return nil, err
		}
		return e.Finish(s), nil
	}
	return nil, nil
}

func (e *Engine) addPoint(screen models.Point2D) error {
	if e.opts.Projector == nil {
		_, err := e.sampler.AddPoint(screen)
		return err
	}
	world, upp, ok := e.opts.Projector(screen)
	if !ok {
		return nil
	}
	e.sampler.SetUnitsPerPixel(upp)
	_, err := e.sampler.AddPointWorld(world.Planar(e.opts.Plane == PlaneXZ), world)
	return err
}

// Finish classifies a completed stroke and dispatches every accepted result.
func (e *Engine) Finish(s *models.Stroke) []models.Result {
	if e.opts.OnStrokeFinished != nil {
		e.opts.OnStrokeFinished(s)
	}

	results := e.pipeline.Classify(s)
	if len(results) == 0 {
		log.Trace.Printf("Stroke %s (%d points) matched nothing", s.ID, s.Len())
		return nil
	}
	for _, r := range results {
		log.Info.Printf("Recognized %s", r)
		if e.opts.OnRecognized != nil {
			e.opts.OnRecognized(s, r)
		}
		if e.dispatcher != nil {
			e.dispatcher.Dispatch(r, s.Points)
		}
	}
	return results
}

// Reset drops any open stroke and returns the session to idle.
func (e *Engine) Reset() {
	e.sampler.Reset()
	e.suppressed = false
}
