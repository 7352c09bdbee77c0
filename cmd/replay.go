package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ThatOtherAndrew/ecodigital/internal/dispatch"
	"github.com/ThatOtherAndrew/ecodigital/internal/execute"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
	"github.com/ThatOtherAndrew/ecodigital/internal/spawn"
)

// frameTime is the simulated time between two replayed events.
const frameTime = 1.0 / 60

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Replay a recorded input session against a set of targets",
	Args:  cobra.ExactArgs(1),
	RunE:  replay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

// demoTarget is a target read from a replay file.
type demoTarget struct {
	name      string
	pos       models.Point2D
	destroyed bool
}

func (t *demoTarget) GesturePosition() models.Point2D { return t.pos }
func (t *demoTarget) Destroy()                        { t.destroyed = true }
func (t *demoTarget) Alive() bool                     { return !t.destroyed }

func replay(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	file, events, err := loadReplay(args[0])
	if err != nil {
		return err
	}
	pipeline, _, err := settings.Pipeline()
	if err != nil {
		return err
	}

	registry := dispatch.NewRegistry()
	targets := make([]*demoTarget, 0, len(file.Targets))
	for i, t := range file.Targets {
		dt := &demoTarget{
			name: fmt.Sprintf("%s#%d", t.Symbol, i),
			pos:  models.Point2D{X: t.X, Y: t.Y},
		}
		targets = append(targets, dt)
		registry.Register(t.Symbol, dt)
	}

	pool := spawn.New(1)
	dispatcher := dispatch.New(settings.DispatchOptions(), registry, pool)

	out := cmd.OutOrStdout()
	strokes := 0
	engine := execute.New(settings.NewSampler(), pipeline, dispatcher, execute.Options{
		OnStrokeFinished: func(s *models.Stroke) {
			strokes++
			fmt.Fprintf(out, "stroke %d: %d points\n", strokes, s.Len())
		},
		OnRecognized: func(s *models.Stroke, r models.Result) {
			fmt.Fprintf(out, "  %s\n", r)
		},
	})

	for i, ev := range events {
		if _, err := engine.Handle(ev); err != nil {
			return errors.Wrapf(err, "event %d (%s)", i, ev.Type)
		}
		pool.Update(frameTime)
	}

	for _, t := range targets {
		if t.destroyed {
			fmt.Fprintf(out, "destroyed %s at (%.1f, %.1f)\n", t.name, t.pos.X, t.pos.Y)
		}
	}
	fmt.Fprintf(out, "%d stroke(s), %d of %d target(s) left, %d live effect(s)\n",
		strokes, registry.Len(), len(targets), len(pool.Effects()))
	return nil
}
