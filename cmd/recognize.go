package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ThatOtherAndrew/ecodigital/internal/classify"
	"github.com/ThatOtherAndrew/ecodigital/internal/stroke"
)

var showScores bool

var recognizeCmd = &cobra.Command{
	Use:   "recognize FILE...",
	Short: "Classify recorded strokes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  recognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().BoolVarP(&showScores, "scores", "s", false, "print the score of every template")
}

func recognize(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	pipeline, rec, err := settings.Pipeline()
	if err != nil {
		return err
	}

	reports := make([]string, len(args))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		g.Go(func() error {
			report, err := recognizeFile(path, pipeline, rec)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range reports {
		fmt.Fprint(out, r)
	}
	return nil
}

func recognizeFile(path string, pipeline *classify.Pipeline, rec *stroke.Recognizer) (string, error) {
	s, err := loadStroke(path)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	results := pipeline.Classify(s)
	if len(results) == 0 {
		fmt.Fprintf(&b, "%s: no match\n", path)
	}
	for _, r := range results {
		fmt.Fprintf(&b, "%s: %s\n", path, r)
	}

	if showScores && rec != nil {
		scores, err := rec.Scores(s.Points, s.Scale())
		if err != nil {
			fmt.Fprintf(&b, "  scores unavailable: %v\n", err)
			return b.String(), nil
		}
		for i, t := range rec.Templates() {
			fmt.Fprintf(&b, "  %-10s %.3f\n", t.Symbol, scores[i])
		}
	}
	return b.String(), nil
}
