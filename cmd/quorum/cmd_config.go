package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juparave/quorum/internal/util"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage quorum configuration",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter quorum-config.yaml in the current directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := "quorum-config.yaml"
		if util.FileExists(path) && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Edit it, then run: quorum run --target <file> --config "+path)
		return nil
	},
}

const starterConfig = `# Quorum configuration
#
# Pass this file with: quorum run --config quorum-config.yaml
# Values here override the depth-profile defaults.

# Critics to dispatch. Valid: correctness, completeness, security,
# architecture, delegation, style, tester.
critics:
  - correctness
  - completeness

provider:
  name: googleai        # openai or googleai
  # model: gpt-4o-mini  # override the tiered defaults
  # base_url: ""        # custom OpenAI-compatible endpoint

model_tier1: gemini-2.0-pro    # judgment-heavy roles
model_tier2: gemini-2.0-flash  # critics default here

depth_profile: standard
temperature: 0.1
max_tokens: 4096
max_fix_loops: 0

# API keys resolve "$VAR" entries from the environment.
api_keys:
  openai: $OPENAI_API_KEY
  googleai: $GEMINI_API_KEY

runs_dir: quorum-runs
`

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
