package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/juparave/quorum/internal/output"
	"github.com/juparave/quorum/internal/rubric"
)

var rubricsCmd = &cobra.Command{
	Use:   "rubrics",
	Short: "Manage rubrics",
}

var rubricsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available built-in rubrics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		loader := rubric.NewLoader(log.New(io.Discard, "", 0))
		names := loader.ListBuiltin()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No built-in rubrics found.")
			return nil
		}
		output.PrintRubricList(cmd.OutOrStdout(), names)
		return nil
	},
}

var rubricsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show criteria for a rubric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := rubric.NewLoader(log.New(io.Discard, "", 0))
		rub, err := loader.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n%s (v%s)\n", rub.Name, rub.Version)
		fmt.Fprintf(out, "Domain: %s\n", rub.Domain)
		if rub.Description != "" {
			fmt.Fprintln(out, rub.Description)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-12s %-10s %s\n", "ID", "Severity", "Criterion")
		fmt.Fprintln(out, "--------------------------------------------------------------------------------")
		for _, c := range rub.Criteria {
			criterion := c.Criterion
			if len(criterion) > 60 {
				criterion = criterion[:60]
			}
			fmt.Fprintf(out, "%-12s %-10s %s\n", c.ID, c.Severity, criterion)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rubricsCmd.AddCommand(rubricsListCmd)
	rubricsCmd.AddCommand(rubricsShowCmd)
}
