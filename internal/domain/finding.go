package domain

// Evidence is the verification record attached to a finding.
// Result must be non-empty for the finding to survive the evidence gate.
type Evidence struct {
	Tool     string `json:"tool"`
	Result   string `json:"result"`
	Citation string `json:"citation,omitempty"`
}

// Finding represents a single issue discovered by a critic.
// Every finding that exists after aggregation is evidence-backed.
type Finding struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Evidence    Evidence `json:"evidence"`
	Location    string   `json:"location,omitempty"`
	// CriticSource is a comma-joined list of the critics that reported
	// this issue. The aggregator appends to it when merging duplicates.
	CriticSource    string `json:"critic_source"`
	RubricCriterion string `json:"rubric_criterion,omitempty"`
}

// IsGrounded reports whether the finding carries a non-empty evidence result.
func (f *Finding) IsGrounded() bool {
	return f.Evidence.Result != ""
}

// MultiSource reports whether more than one critic contributed this finding.
func (f *Finding) MultiSource() bool {
	for _, c := range f.CriticSource {
		if c == ',' {
			return true
		}
	}
	return false
}
