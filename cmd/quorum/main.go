// quorum is the multi-critic validation CLI.
//
// Usage:
//
//	quorum run --target <file> [--depth quick|standard|thorough] [--rubric <name>]
//	quorum rubrics list
//	quorum rubrics show <name>
//	quorum config init
//
// Exit codes: 0 when the artifact passes, 2 when the verdict is
// actionable (REVISE/REJECT), 1 on unexpected errors.
package main

import (
	"os"

	"github.com/juparave/quorum/internal/output"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		output.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
