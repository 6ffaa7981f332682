package aggregate

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/juparave/quorum/internal/domain"
)

// DedupThreshold is the description similarity above which two
// findings are considered the same issue.
const DedupThreshold = 0.72

const skipPenaltyPerCritic = 0.05

// Aggregator synthesizes findings from all critics into one verdict.
// It is fully deterministic and never calls the judgment source.
type Aggregator struct {
	logger *log.Logger
}

// New creates an Aggregator.
func New(logger *log.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Run collects findings from every non-skipped critic result,
// deduplicates them, recalibrates confidence, and assigns the verdict.
func (a *Aggregator) Run(criticResults []domain.CriticResult) domain.Verdict {
	all := collectFindings(criticResults)
	deduped, conflictsResolved := deduplicate(all)
	confidence := calculateConfidence(criticResults, deduped)

	report := &domain.AggregatedReport{
		Findings:          deduped,
		Confidence:        confidence,
		ConflictsResolved: conflictsResolved,
		CriticResults:     criticResults,
	}

	verdict := assignVerdict(report)
	a.logf("aggregator: %d findings -> %d deduped -> verdict=%s (confidence=%.3f)",
		len(all), len(deduped), verdict.Status, confidence)

	return verdict
}

// collectFindings flattens findings from all non-skipped results,
// preserving encounter order.
func collectFindings(results []domain.CriticResult) []domain.Finding {
	var findings []domain.Finding
	for i := range results {
		if results[i].Skipped {
			continue
		}
		findings = append(findings, results[i].Findings...)
	}
	return findings
}

// deduplicate merges findings that describe the same issue.
//
// Each candidate is compared against the already-kept findings in
// order; the first kept finding above DedupThreshold claims it (first
// match wins, not best match). On a duplicate the higher-severity
// finding survives, ties keep the existing one, and the survivor's
// critic source always becomes "existing,candidate" so cross-critic
// attribution is never lost. Returns the kept findings and the number
// of merges performed.
func deduplicate(findings []domain.Finding) ([]domain.Finding, int) {
	if len(findings) == 0 {
		return []domain.Finding{}, 0
	}

	kept := make([]domain.Finding, 0, len(findings))
	conflictsResolved := 0

	for _, candidate := range findings {
		duplicate := false
		for i := range kept {
			if Similarity(candidate.Description, kept[i].Description) < DedupThreshold {
				continue
			}
			duplicate = true
			conflictsResolved++

			mergedSource := kept[i].CriticSource + "," + candidate.CriticSource
			if candidate.Severity.Rank() > kept[i].Severity.Rank() {
				merged := candidate
				merged.CriticSource = mergedSource
				kept[i] = merged
			} else {
				kept[i].CriticSource = mergedSource
			}
			break
		}

		if !duplicate {
			kept = append(kept, candidate)
		}
	}

	return kept, conflictsResolved
}

// calculateConfidence derives overall confidence from the average
// critic confidence, a penalty per skipped critic, and a small bonus
// for inter-critic agreement.
func calculateConfidence(results []domain.CriticResult, findings []domain.Finding) float64 {
	active := 0
	sum := 0.0
	skipped := 0
	for i := range results {
		if results[i].Skipped {
			skipped++
			continue
		}
		active++
		sum += results[i].Confidence
	}
	if active == 0 {
		return 0.0
	}

	avg := sum / float64(active)
	skipPenalty := skipPenaltyPerCritic * float64(skipped)

	agreementBonus := 0.0
	if active > 1 && len(findings) > 0 {
		multiSource := 0
		for i := range findings {
			if findings[i].MultiSource() {
				multiSource++
			}
		}
		agreementBonus = math.Min(0.1, 0.02*float64(multiSource))
	}

	confidence := math.Max(0.0, math.Min(1.0, avg-skipPenalty+agreementBonus))
	return math.Round(confidence*1000) / 1000
}

// assignVerdict maps severity counts to a status, evaluated top-down
// with first match winning. INFO findings never count toward
// PASS_WITH_NOTES and are excluded from the reported breakdown.
func assignVerdict(report *domain.AggregatedReport) domain.Verdict {
	critical := report.CriticalCount()
	high := report.HighCount()
	medium := report.MediumCount()
	low := report.LowCount()

	var status domain.VerdictStatus
	var reasoning string

	switch {
	case critical > 0:
		status = domain.StatusReject
		reasoning = fmt.Sprintf(
			"Found %d CRITICAL issue(s) that must be resolved before acceptance. "+
				"Critical issues represent fundamental problems with the artifact.", critical)
	case high > 0:
		status = domain.StatusRevise
		reasoning = fmt.Sprintf(
			"Found %d HIGH severity issue(s) requiring rework. "+
				"Address these before the artifact can be accepted.", high)
	case medium > 0 || low > 0:
		status = domain.StatusPassWithNotes
		reasoning = fmt.Sprintf(
			"Artifact passes with %d note(s). "+
				"No blocking issues found; recommendations are advisory.", medium+low)
	default:
		status = domain.StatusPass
		reasoning = "No issues found. The artifact meets all evaluated criteria."
	}

	var counts []string
	if critical > 0 {
		counts = append(counts, fmt.Sprintf("%d CRITICAL", critical))
	}
	if high > 0 {
		counts = append(counts, fmt.Sprintf("%d HIGH", high))
	}
	if medium > 0 {
		counts = append(counts, fmt.Sprintf("%d MEDIUM", medium))
	}
	if low > 0 {
		counts = append(counts, fmt.Sprintf("%d LOW", low))
	}
	if len(counts) > 0 {
		reasoning += fmt.Sprintf(" Issues: %s.", strings.Join(counts, ", "))
	}

	return domain.Verdict{
		Status:     status,
		Reasoning:  reasoning,
		Confidence: report.Confidence,
		Report:     report,
	}
}

func (a *Aggregator) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}
