package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// yamlExtensions are the extensions of stroke, replay and settings files.
var yamlExtensions = []string{"yaml", "yml"}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Generate completions for recognize, replay and the settings flag",
	RunE:                  GetCompletion,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(completionCmd)

	recognizeCmd.ValidArgsFunction = completeStrokeFiles
	replayCmd.ValidArgsFunction = completeReplayFile
}

func GetCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	out := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletionV2(out, true)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(out)
	}
	return errors.Errorf("unsupported shell: %s", args[0])
}

// completeStrokeFiles offers recorded stroke files for every argument.
func completeStrokeFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return yamlExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeReplayFile offers a single recorded session file.
func completeReplayFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return yamlExtensions, cobra.ShellCompDirectiveFilterFileExt
}
