package critic

import "github.com/juparave/quorum/internal/domain"

// Critic is one specialized unit of judgment. Implementations supply
// the role instruction and a rubric-aware prompt; the shared Evaluator
// owns the call to the judgment source and the evidence gate.
type Critic interface {
	// Name uniquely identifies the critic in configuration and results.
	Name() string

	// SystemPrompt is the static role definition sent with every call.
	SystemPrompt() string

	// BuildPrompt constructs the evaluation prompt for an artifact.
	// Implementations may select the subset of rubric criteria relevant
	// to their specialty.
	BuildPrompt(artifactText string, rubric *domain.Rubric) string
}

// findingsSchema is the structured-output contract every critic
// requests from the judgment source. evidence_tool and evidence_result
// are mandatory; findings missing evidence are rejected at the gate.
const findingsSchema = `{
  "type": "object",
  "required": ["findings"],
  "properties": {
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["severity", "description", "evidence_tool", "evidence_result"],
        "properties": {
          "severity": {
            "type": "string",
            "enum": ["CRITICAL", "HIGH", "MEDIUM", "LOW", "INFO"]
          },
          "description": {"type": "string"},
          "evidence_tool": {
            "type": "string",
            "description": "How you verified this (grep, schema, read, analysis)"
          },
          "evidence_result": {
            "type": "string",
            "description": "The actual excerpt, match, or output that proves this finding"
          },
          "location": {
            "type": "string",
            "description": "Where in the artifact (section name, line, key path)"
          },
          "rubric_criterion": {
            "type": "string",
            "description": "The rubric criterion ID this finding addresses"
          }
        }
      }
    }
  }
}`
