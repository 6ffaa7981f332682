package domain

import "fmt"

// RubricCriterion is a single evaluation criterion in a rubric.
type RubricCriterion struct {
	ID               string   `json:"id"`
	Criterion        string   `json:"criterion"`
	Severity         Severity `json:"severity"`
	EvidenceRequired string   `json:"evidence_required"`
	Why              string   `json:"why"`
	Category         string   `json:"category,omitempty"`
}

// Rubric is the domain-specific checklist critics evaluate against.
// Read-only to the pipeline once loaded.
type Rubric struct {
	Name        string            `json:"name"`
	Domain      string            `json:"domain"`
	Version     string            `json:"version"`
	Description string            `json:"description,omitempty"`
	Criteria    []RubricCriterion `json:"criteria"`
}

// Validate checks the rubric invariants before it enters the pipeline.
func (r *Rubric) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rubric is missing a name")
	}
	if len(r.Criteria) == 0 {
		return fmt.Errorf("rubric %q must have at least one criterion", r.Name)
	}
	return nil
}
