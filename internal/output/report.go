package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/juparave/quorum/internal/domain"
)

// severityOrder drives the grouping in the markdown report.
var severityOrder = []domain.Severity{
	domain.SeverityCritical,
	domain.SeverityHigh,
	domain.SeverityMedium,
	domain.SeverityLow,
	domain.SeverityInfo,
}

// MarkdownReport renders the human-readable validation report written
// into each run directory.
func MarkdownReport(verdict *domain.Verdict, target, depth string, rubric *domain.Rubric, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Quorum Validation Report\n\n")
	sb.WriteString(fmt.Sprintf("**Target:** `%s`  \n", target))
	sb.WriteString(fmt.Sprintf("**Rubric:** %s v%s  \n", rubric.Name, rubric.Version))
	sb.WriteString(fmt.Sprintf("**Depth:** %s  \n", depth))
	sb.WriteString(fmt.Sprintf("**Date:** %s  \n\n", now.Format("2006-01-02 15:04")))
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("## Verdict: %s\n\n", verdict.Status))
	sb.WriteString(fmt.Sprintf("> %s\n\n", verdict.Reasoning))
	sb.WriteString(fmt.Sprintf("**Confidence:** %.0f%%\n\n", verdict.Confidence*100))

	report := verdict.Report
	if report != nil && len(report.Findings) > 0 {
		for _, sev := range severityOrder {
			var group []domain.Finding
			for _, f := range report.Findings {
				if f.Severity == sev {
					group = append(group, f)
				}
			}
			if len(group) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("## %s (%d)\n\n", sev, len(group)))
			for i, f := range group {
				writeFinding(&sb, i+1, &f)
			}
		}
	} else {
		sb.WriteString("## Findings\n\nNo issues found.\n\n")
	}

	if report != nil {
		sb.WriteString("---\n\n## Summary\n\n")
		sb.WriteString("| Severity | Count |\n")
		sb.WriteString("|----------|-------|\n")
		sb.WriteString(fmt.Sprintf("| CRITICAL | %d |\n", report.CriticalCount()))
		sb.WriteString(fmt.Sprintf("| HIGH     | %d |\n", report.HighCount()))
		sb.WriteString(fmt.Sprintf("| MEDIUM   | %d |\n", report.MediumCount()))
		sb.WriteString(fmt.Sprintf("| LOW      | %d |\n", report.LowCount()))
		sb.WriteString(fmt.Sprintf("| INFO     | %d |\n", report.InfoCount()))
		sb.WriteString(fmt.Sprintf("| **Total** | **%d** |\n\n", report.TotalFindings()))
	}

	return sb.String()
}

func writeFinding(sb *strings.Builder, index int, f *domain.Finding) {
	title := f.Description
	if len(title) > 100 {
		title = title[:100]
	}
	sb.WriteString(fmt.Sprintf("### %d. %s\n", index, title))
	if f.Location != "" {
		sb.WriteString(fmt.Sprintf("**Location:** `%s`  \n", f.Location))
	}
	sb.WriteString(fmt.Sprintf("**Critic:** %s  \n", f.CriticSource))
	if f.RubricCriterion != "" {
		sb.WriteString(fmt.Sprintf("**Criterion:** %s  \n", f.RubricCriterion))
	}
	sb.WriteString(fmt.Sprintf("\n**Evidence (%s):**\n", f.Evidence.Tool))
	sb.WriteString("```\n")
	result := f.Evidence.Result
	if len(result) > 500 {
		result = result[:500]
	}
	sb.WriteString(result)
	sb.WriteString("\n```\n\n")
}
