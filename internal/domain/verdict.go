package domain

// VerdictStatus is the final accept/revise/reject decision for a run
type VerdictStatus string

const (
	StatusPass          VerdictStatus = "PASS"
	StatusPassWithNotes VerdictStatus = "PASS_WITH_NOTES"
	StatusRevise        VerdictStatus = "REVISE"
	StatusReject        VerdictStatus = "REJECT"
)

// Verdict is the terminal artifact of a validation run.
type Verdict struct {
	Status     VerdictStatus     `json:"status"`
	Reasoning  string            `json:"reasoning"`
	Confidence float64           `json:"confidence"`
	Report     *AggregatedReport `json:"report,omitempty"`
}

// IsActionable returns true if the artifact needs rework.
// Callers use this to pick the process exit code.
func (v *Verdict) IsActionable() bool {
	return v.Status == StatusRevise || v.Status == StatusReject
}
