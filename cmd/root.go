package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ThatOtherAndrew/ecodigital/internal/config"
	"github.com/ThatOtherAndrew/ecodigital/internal/log"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ecodigital",
	Short: "Freehand gesture recognition for the Eco Digital minigame",
	Long: `ecodigital classifies freehand strokes as circles, corners or template
shapes and resolves which targets a recognized shape destroys.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.InitLog(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default $XDG_CONFIG_HOME/ecodigital/settings.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable trace logging")
	_ = rootCmd.MarkPersistentFlagFilename("config", yamlExtensions...)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings() (*config.Settings, error) {
	return config.LoadSettings(configPath)
}
