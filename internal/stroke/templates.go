package stroke

import (
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ThatOtherAndrew/ecodigital/internal/log"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

// Template is a canonical polyline in the unit square.
type Template struct {
	Symbol models.Symbol
	Points []Point
}

// DefaultTemplates returns the built-in shapes in symbol order.
func DefaultTemplates() []Template {
	return []Template{
		{Symbol: models.Triangle, Points: []Point{
			{X: 0.1, Y: 0.1}, {X: 0.5, Y: 0.9}, {X: 0.9, Y: 0.1}, {X: 0.1, Y: 0.1},
		}},
		{Symbol: models.Square, Points: []Point{
			{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.8, Y: 0.8}, {X: 0.2, Y: 0.8}, {X: 0.2, Y: 0.2},
		}},
		{Symbol: models.Circle, Points: circle(0.5, 0.5, 0.35, 40)},
		{Symbol: models.Vee, Points: []Point{
			{X: 0.15, Y: 0.8}, {X: 0.5, Y: 0.2}, {X: 0.85, Y: 0.8},
		}},
		// three-segment zig-zag
		{Symbol: models.Lightning, Points: []Point{
			{X: 0.2, Y: 0.85}, {X: 0.8, Y: 0.6}, {X: 0.2, Y: 0.4}, {X: 0.8, Y: 0.15},
		}},
		{Symbol: models.Bar, Points: []Point{
			{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.8},
		}},
	}
}

func circle(cx, cy, r float64, steps int) []Point {
	points := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps) * 2 * math.Pi
		points = append(points, Point{X: cx + math.Cos(t)*r, Y: cy + math.Sin(t)*r})
	}
	return points
}

// SelectTemplates keeps the templates whose symbol is listed, in the order
// of the list. An empty list keeps everything.
func SelectTemplates(templates []Template, symbols []models.Symbol) []Template {
	if len(symbols) == 0 {
		return templates
	}
	var selected []Template
	for _, s := range symbols {
		for _, t := range templates {
			if t.Symbol == s {
				selected = append(selected, t)
				break
			}
		}
	}
	return selected
}

type templateFile struct {
	Templates map[string][][2]float64 `yaml:"templates"`
}

// LoadTemplates reads polylines from a YAML file of the form
//
//	templates:
//	  vee: [[0.1, 0.9], [0.5, 0.1], [0.9, 0.9]]
//
// and lays them over base, replacing templates with the same symbol and
// appending new ones.
func LoadTemplates(path string, base []Template) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read template file %s", path)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(models.ErrConfiguration, "parse template file %s: %v", path, err)
	}

	names := make([]string, 0, len(file.Templates))
	for name := range file.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	out := append([]Template(nil), base...)
	for _, name := range names {
		raw := file.Templates[name]
		symbol, ok := models.ParseSymbol(name)
		if !ok {
			log.Warning.Printf("Ignoring template for unknown symbol '%s' in %s", name, path)
			continue
		}
		if len(raw) < 2 {
			return nil, errors.Wrapf(models.ErrConfiguration, "template %s needs at least 2 points", name)
		}
		points := make([]Point, len(raw))
		for i, xy := range raw {
			if xy[0] < 0 || xy[0] > 1 || xy[1] < 0 || xy[1] > 1 {
				return nil, errors.Wrapf(models.ErrConfiguration,
					"template %s point %d (%.3f, %.3f) is outside the unit square", name, i, xy[0], xy[1])
			}
			points[i] = Point{X: xy[0], Y: xy[1]}
		}

		replaced := false
		for i := range out {
			if out[i].Symbol == symbol {
				out[i].Points = points
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, Template{Symbol: symbol, Points: points})
		}
		log.Trace.Printf("Loaded template %s (%d points) from %s", symbol, len(points), path)
	}
	return out, nil
}
