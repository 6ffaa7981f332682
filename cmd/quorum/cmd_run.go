package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juparave/quorum/internal/app"
	"github.com/juparave/quorum/internal/config"
	"github.com/juparave/quorum/internal/output"
	"github.com/juparave/quorum/internal/provider"
)

var runFlags struct {
	target    string
	depth     string
	rubric    string
	cfgFile   string
	outputDir string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate an artifact against a rubric",
	Long: `Validate an artifact against a rubric.

Examples:

  quorum run --target my-config.yaml

  quorum run --target research.md --depth standard --rubric research-synthesis

  quorum run --target agent.yaml --rubric agent-config --depth thorough`,
	RunE: runValidation,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.target, "target", "t", "", "Path to the artifact file to validate (required)")
	f.StringVarP(&runFlags.depth, "depth", "d", "quick", "Validation depth profile (quick|standard|thorough)")
	f.StringVarP(&runFlags.rubric, "rubric", "r", "", "Rubric name (built-in) or path to a JSON rubric file; auto-detected if omitted")
	f.StringVarP(&runFlags.cfgFile, "config", "c", "", "Path to a custom YAML config file")
	f.StringVarP(&runFlags.outputDir, "output-dir", "o", "", "Directory for run outputs (default: ./quorum-runs/)")

	_ = runCmd.MarkFlagRequired("target")
}

func runValidation(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(runFlags.cfgFile, runFlags.depth)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Verbose = rootFlags.verbose

	if !hasAPIKey(cfg) {
		return fmt.Errorf("no API key configured: set OPENAI_API_KEY, GEMINI_API_KEY, " +
			"or GOOGLE_API_KEY in your environment, or run 'quorum config init'")
	}

	logger := log.New(io.Discard, "[quorum] ", log.LstdFlags)
	if cfg.Verbose {
		logger.SetOutput(os.Stderr)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Running Quorum (%s depth, critics: %s) ...\n",
		cfg.DepthProfile, strings.Join(cfg.Critics, ", "))

	client, err := provider.NewClient(cfg.Provider, logger)
	if err != nil {
		return fmt.Errorf("initializing provider: %w", err)
	}

	runner := app.NewRunner(cfg, client, logger)
	result, err := runner.Run(cmd.Context(), runFlags.target, runFlags.rubric, runFlags.outputDir)
	if err != nil {
		return err
	}

	output.PrintVerdict(cmd.OutOrStdout(), result.Verdict, result.RunDir, cfg.Verbose)

	// Distinct exit code for actionable verdicts so CI can branch on it
	if result.Verdict.IsActionable() {
		os.Exit(2)
	}
	return nil
}

func hasAPIKey(cfg *config.Config) bool {
	if cfg.Provider.APIKey != "" {
		return true
	}
	for _, key := range cfg.APIKeys {
		if key != "" {
			return true
		}
	}
	for _, name := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
