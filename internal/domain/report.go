package domain

// AggregatedReport is the synthesized view over all critic results.
// Built exactly once per run by the aggregator.
type AggregatedReport struct {
	Findings          []Finding      `json:"findings"`
	Confidence        float64        `json:"confidence"`
	ConflictsResolved int            `json:"conflicts_resolved"`
	CriticResults     []CriticResult `json:"critic_results"`
}

func (r *AggregatedReport) countBySeverity(s Severity) int {
	count := 0
	for i := range r.Findings {
		if r.Findings[i].Severity == s {
			count++
		}
	}
	return count
}

// CriticalCount returns the number of CRITICAL findings
func (r *AggregatedReport) CriticalCount() int {
	return r.countBySeverity(SeverityCritical)
}

// HighCount returns the number of HIGH findings
func (r *AggregatedReport) HighCount() int {
	return r.countBySeverity(SeverityHigh)
}

// MediumCount returns the number of MEDIUM findings
func (r *AggregatedReport) MediumCount() int {
	return r.countBySeverity(SeverityMedium)
}

// LowCount returns the number of LOW findings
func (r *AggregatedReport) LowCount() int {
	return r.countBySeverity(SeverityLow)
}

// InfoCount returns the number of INFO findings
func (r *AggregatedReport) InfoCount() int {
	return r.countBySeverity(SeverityInfo)
}

// TotalFindings returns the total number of deduplicated findings
func (r *AggregatedReport) TotalFindings() int {
	return len(r.Findings)
}
