package cmd

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

// strokeFile is a recorded stroke:
//
//	units_per_pixel: 0.01
//	points: [[x, y], ...]
//	world: [[x, y, z], ...]   # optional, parallel to points
type strokeFile struct {
	UnitsPerPixel float64      `yaml:"units_per_pixel"`
	Points        [][2]float64 `yaml:"points"`
	World         [][3]float64 `yaml:"world"`
}

func loadStroke(path string) (*models.Stroke, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read stroke %s", path)
	}
	var f strokeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parse stroke %s", path)
	}
	if len(f.World) > 0 && len(f.World) != len(f.Points) {
		return nil, errors.Errorf("stroke %s: %d world points for %d points", path, len(f.World), len(f.Points))
	}

	points := make([]models.Point2D, len(f.Points))
	for i, p := range f.Points {
		points[i] = models.Point2D{X: p[0], Y: p[1]}
	}
	s := models.NewStroke(points)
	if f.UnitsPerPixel > 0 {
		s.UnitsPerPixel = f.UnitsPerPixel
	}
	for _, w := range f.World {
		s.World = append(s.World, models.Point3D{X: w[0], Y: w[1], Z: w[2]})
	}
	return s, nil
}

type replayEvent struct {
	Type   string  `yaml:"type"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	OverUI bool    `yaml:"over_ui"`
}

type replayTarget struct {
	Symbol models.Symbol `yaml:"symbol"`
	X      float64       `yaml:"x"`
	Y      float64       `yaml:"y"`
}

// replayFile is a recorded input session plus the targets on screen.
type replayFile struct {
	Events  []replayEvent  `yaml:"events"`
	Targets []replayTarget `yaml:"targets"`
}

func loadReplay(path string) (*replayFile, []models.InputEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read replay %s", path)
	}
	var f replayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, errors.Wrapf(err, "parse replay %s", path)
	}

	events := make([]models.InputEvent, 0, len(f.Events))
	for i, e := range f.Events {
		var typ models.EventType
		switch e.Type {
		case "down":
			typ = models.PointerDown
		case "move":
			typ = models.PointerMove
		case "up":
			typ = models.PointerUp
		default:
			return nil, nil, errors.Errorf("replay %s: event %d has unknown type '%s'", path, i, e.Type)
		}
		events = append(events, models.InputEvent{
			Type:   typ,
			Screen: models.Point2D{X: e.X, Y: e.Y},
			OverUI: e.OverUI,
		})
	}
	return &f, events, nil
}
