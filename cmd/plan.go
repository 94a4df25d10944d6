package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/morler/codeassist/constants/lipgloss"
	"github.com/morler/codeassist/orchestrator"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [readme|analyze|all]",
	Short: "Show the requests a task would send, with token and cost estimates.",
	Long: `The 'plan' subcommand collects files and assembles the requests for a task without
contacting the endpoint or writing any output. Each request is listed with its output
file, source file count, estimated tokens, estimated input cost and a content checksum.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(orchestrator.ModeReadme), string(orchestrator.ModeAnalyze), string(orchestrator.ModeAll)},
	RunE: func(cmd *cobra.Command, args []string) error {
		rawMode := string(orchestrator.ModeAll)
		if len(args) == 1 {
			rawMode = args[0]
		}
		mode, err := orchestrator.ParseMode(rawMode)
		if err != nil {
			return err
		}

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		defer rootDependencies.Logger.Close()

		return handlePlanCommand(rootDependencies, mode)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func handlePlanCommand(rootDependencies *RootDependencies, mode orchestrator.TaskMode) error {
	rootDependencies.Assembler.SkipOutputDirs = true

	fileSet, err := rootDependencies.Collector.CollectFiles(rootDependencies.Config.ProjectRoot())
	if err != nil {
		rootDependencies.Logger.Warning("%v, exiting", err)
		return err
	}

	items := rootDependencies.Orchestrator.Plan(mode, fileSet)
	root := rootDependencies.Config.ProjectRoot()

	tableData := pterm.TableData{{"Mode", "Output", "Files", "Tokens", "Cost $", "Checksum", "Status"}}
	totalTokens := 0
	totalCost := 0.0
	for _, item := range items {
		status := "ready"
		if item.Err != nil {
			status = item.Err.Error()
		}
		output := item.SavePath
		if rel, err := filepath.Rel(root, item.SavePath); err == nil && item.SavePath != "" {
			output = rel
		}
		checksum := ""
		if item.Checksum != 0 {
			checksum = fmt.Sprintf("%016x", item.Checksum)
		}
		tableData = append(tableData, []string{
			string(item.Mode),
			output,
			strconv.Itoa(len(item.Sources)),
			strconv.Itoa(item.Tokens),
			fmt.Sprintf("%.6f", item.Cost),
			checksum,
			status,
		})
		totalTokens += item.Tokens
		totalCost += item.Cost
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d request(s) - %d tokens - estimated input cost %.6f $ - model %s",
		len(items), totalTokens, totalCost, rootDependencies.Config.Model)
	fmt.Println(lipgloss.BoxStyle.Render(summary))
	return nil
}
