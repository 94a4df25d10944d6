package cmd

import (
	"github.com/morler/codeassist/orchestrator"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <readme|analyze|all>",
	Short: "Run a task without the interactive prompt.",
	Long: `The 'run' subcommand executes one task non-interactively:
  readme   send every collected file in one request and save README.md
  analyze  send one request per file and save a report under 'AI analysis'
  all      readme, then analyze`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(orchestrator.ModeReadme), string(orchestrator.ModeAnalyze), string(orchestrator.ModeAll)},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := orchestrator.ParseMode(args[0])
		if err != nil {
			return err
		}

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		defer rootDependencies.Logger.Close()

		return runMode(cmd.Context(), rootDependencies, mode)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
