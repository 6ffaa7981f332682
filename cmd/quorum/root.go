package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var rootFlags struct {
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "quorum",
	Short: "Multi-critic quality validation",
	Long: "Quorum evaluates artifacts (configs, research, code) against domain-specific\n" +
		"rubrics using specialized critics, each required to provide grounded evidence.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(rubricsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.Version = version
}
