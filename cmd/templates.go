package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the loaded shape templates",
	Args:  cobra.NoArgs,
	RunE:  listTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func listTemplates(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	templates, err := settings.Templates()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(templates) == 0 {
		fmt.Fprintln(out, "No templates loaded")
		return nil
	}
	fmt.Fprintln(out, "Loaded templates:")
	for _, t := range templates {
		fmt.Fprintf(out, "  %-10s %d points\n", t.Symbol, len(t.Points))
	}
	return nil
}
