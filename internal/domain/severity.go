package domain

import "strings"

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

var severityRank = map[Severity]int{
	SeverityCritical: 5,
	SeverityHigh:     4,
	SeverityMedium:   3,
	SeverityLow:      2,
	SeverityInfo:     1,
}

// Rank returns the ordinal weight of the severity, higher is worse.
// Unknown severities rank below INFO.
func (s Severity) Rank() int {
	return severityRank[s]
}

// IsValid reports whether s is one of the known severity levels.
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// ParseSeverity coerces a raw string to a Severity, case-insensitively.
// Unknown values default to MEDIUM so a sloppy judgment source cannot
// silently drop or inflate a finding.
func ParseSeverity(raw string) Severity {
	s := Severity(strings.ToUpper(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s
	}
	return SeverityMedium
}
