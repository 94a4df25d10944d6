package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/morler/codeassist/app_errors"
	"github.com/morler/codeassist/code_collector"
	collector_contracts "github.com/morler/codeassist/code_collector/contracts"
	"github.com/morler/codeassist/config"
	"github.com/morler/codeassist/constants/lipgloss"
	"github.com/morler/codeassist/logger"
	"github.com/morler/codeassist/orchestrator"
	"github.com/morler/codeassist/providers/chatai"
	"github.com/morler/codeassist/providers/models"
	"github.com/morler/codeassist/request_assembler"
	"github.com/morler/codeassist/token_management"
	token_contracts "github.com/morler/codeassist/token_management/contracts"
	"github.com/morler/codeassist/utils"
	"github.com/spf13/cobra"
)

// RootDependencies holds everything a command needs for one run.
type RootDependencies struct {
	Cwd             string
	Config          *config.Config
	Logger          *logger.Logger
	Collector       collector_contracts.ICodeCollector
	Assembler       *request_assembler.Assembler
	TokenManagement token_contracts.ITokenManagement
	Orchestrator    *orchestrator.Orchestrator
}

var rootCmd = &cobra.Command{
	Use:   "codeassist",
	Short: "Generate a README and per-file analysis reports for a project with a chat model.",
	Long: `codeassist scans a project directory for source files matching the configured patterns,
sends them to a chat model endpoint and saves the answers as README.md and as one
analysis report per file under 'AI analysis'. Run it without arguments to pick a task
interactively, or use 'codeassist run <readme|analyze|all>'.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println(config.DefaultConfig.Version)
			return nil
		}

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		defer rootDependencies.Logger.Close()

		return handleInteractiveCommand(cmd.Context(), rootDependencies, bufio.NewReader(os.Stdin))
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on a terminal failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(err.Error()))
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Println(lipgloss.BoxStyle.Render(lipgloss.Info.Render("codeassist") + "\nAI code refactoring and documentation assistant"))
}

// handleRootCommand loads the configuration, opens the run log and wires the pipeline.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	printBanner()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	logDir := cfg.LogDir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(cwd, logDir)
	}
	log, err := logger.New(logDir, time.Now())
	if err != nil {
		return nil, fmt.Errorf("cannot create local log object: %w", err)
	}
	log.Info("new instance running")
	if used := config.UsedConfigFile(); used != "" {
		log.Info("using config file: %s", used)
	}

	return buildDependencies(cwd, cfg, log), nil
}

func buildDependencies(cwd string, cfg *config.Config, log *logger.Logger) *RootDependencies {
	assembler := request_assembler.NewAssembler(cfg, log)
	tokenManagement := token_management.NewTokenManager()

	orch := &orchestrator.Orchestrator{
		Assembler:       assembler,
		Estimator:       token_management.NewTokenEstimator(),
		TokenManagement: tokenManagement,
		Client: spinnerClient{next: chatai.NewChatAIProvider(&chatai.ChatAIConfig{
			ApiKeyVar:      cfg.ApiKeyVar,
			ApiEndpointVar: cfg.ApiEndpointVar,
			ApiKeyHeader:   cfg.ApiKeyHeader,
			RequestTimeout: cfg.RequestTimeout,
			Log:            log,
		})},
		Model: cfg.Model,
		Log:   log,
	}

	if cfg.Preview {
		orch.OnDelivered = func(result models.DeliveryResult) {
			if err := utils.RenderMarkdown(os.Stdout, result.Content, cfg.Theme); err != nil {
				log.Warning("cannot render preview of %s: %v", result.WrittenPath, err)
			}
		}
	}

	return &RootDependencies{
		Cwd:             cwd,
		Config:          cfg,
		Logger:          log,
		Collector:       code_collector.NewCodeCollector(cfg.IncludedExtensions, cfg.ExcludedFiles, cfg.IgnoredDirs, log),
		Assembler:       assembler,
		TokenManagement: tokenManagement,
		Orchestrator:    orch,
	}
}

func handleInteractiveCommand(ctx context.Context, rootDependencies *RootDependencies, reader *bufio.Reader) error {
	log := rootDependencies.Logger

	log.Info("select task to perform")
	log.Info("readme - ask for a README.md for a project")
	log.Info("analyze - ask for a code analysis of project files")
	log.Info("all - perform all requests")

	userInput, err := utils.ModePrompt(reader, os.Stdout)
	if err != nil {
		log.Critical("%v", err)
		return err
	}

	mode, err := orchestrator.ParseMode(userInput)
	if err != nil {
		log.Critical("%v, exiting...", err)
		return err
	}

	return runMode(ctx, rootDependencies, mode)
}

// runMode collects the project files and hands them to the orchestrator. Collector
// failures end the run before any request is built.
func runMode(ctx context.Context, rootDependencies *RootDependencies, mode orchestrator.TaskMode) error {
	log := rootDependencies.Logger
	log.Info("proceeding with %s", mode)

	fileSet, err := rootDependencies.Collector.CollectFiles(rootDependencies.Config.ProjectRoot())
	if err != nil {
		if errors.Is(err, app_errors.ErrNoEligibleFiles) {
			log.Warning("%v, exiting", err)
		} else {
			log.Critical("%v, exiting", err)
		}
		return err
	}

	summary := rootDependencies.Orchestrator.Run(ctx, mode, fileSet)

	displaySummary(rootDependencies, summary)
	return nil
}

func displaySummary(rootDependencies *RootDependencies, summary orchestrator.Summary) {
	rootDependencies.TokenManagement.DisplayTokens(rootDependencies.Config.Model)

	status := fmt.Sprintf("Requests: %d succeeded, %d failed, %d skipped", summary.Succeeded, summary.Failed, summary.Skipped)
	switch {
	case summary.Failed > 0:
		fmt.Println(lipgloss.Yellow.Render(status))
	default:
		fmt.Println(lipgloss.Green.Render(status))
	}
	for _, path := range summary.Written {
		fmt.Println(lipgloss.Green.Render("✔️ " + path))
	}
	if path := rootDependencies.Logger.Path(); path != "" {
		fmt.Println("Log file: " + path)
	}
}
