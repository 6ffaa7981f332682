package domain

// CriticResult is the output of a single critic's evaluation.
// Produced once per dispatched critic and never mutated afterwards.
// A skipped result always carries zero findings and zero confidence.
type CriticResult struct {
	CriticName string    `json:"critic_name"`
	Findings   []Finding `json:"findings"`
	Confidence float64   `json:"confidence"`
	RuntimeMS  int64     `json:"runtime_ms"`
	Skipped    bool      `json:"skipped"`
	SkipReason string    `json:"skip_reason,omitempty"`
}

// SkippedResult builds the degraded result recorded when a critic
// could not run at all.
func SkippedResult(criticName, reason string) CriticResult {
	return CriticResult{
		CriticName: criticName,
		Skipped:    true,
		SkipReason: reason,
	}
}
