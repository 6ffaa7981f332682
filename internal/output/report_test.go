package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/juparave/quorum/internal/domain"
)

func sampleVerdict() *domain.Verdict {
	return &domain.Verdict{
		Status:     domain.StatusRevise,
		Reasoning:  "Found 1 HIGH severity issue(s) requiring rework. Address these before the artifact can be accepted. Issues: 1 HIGH, 1 LOW.",
		Confidence: 0.9,
		Report: &domain.AggregatedReport{
			Confidence:        0.9,
			ConflictsResolved: 1,
			Findings: []domain.Finding{
				{
					Severity:     domain.SeverityLow,
					Description:  "The runbook never names an owner",
					Evidence:     domain.Evidence{Tool: "grep", Result: "(no matches found)"},
					CriticSource: "completeness",
				},
				{
					Severity:        domain.SeverityHigh,
					Description:     "Missing error handling in section 3",
					Evidence:        domain.Evidence{Tool: "llm-analysis", Result: "section 3 has no failure branch"},
					Location:        "section 3",
					CriticSource:    "correctness,completeness",
					RubricCriterion: "T1",
				},
			},
		},
	}
}

func TestMarkdownReport(t *testing.T) {
	rub := &domain.Rubric{Name: "deploy-checklist", Version: "1.0",
		Criteria: []domain.RubricCriterion{{ID: "T1", Criterion: "x"}}}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	md := MarkdownReport(sampleVerdict(), "runbook.md", "standard", rub, now)

	for _, want := range []string{
		"## Verdict: REVISE",
		"**Target:** `runbook.md`",
		"**Rubric:** deploy-checklist v1.0",
		"**Date:** 2026-03-14 09:30",
		"**Confidence:** 90%",
		"## HIGH (1)",
		"## LOW (1)",
		"**Critic:** correctness,completeness",
		"**Criterion:** T1",
		"section 3 has no failure branch",
		"| HIGH     | 1 |",
		"| **Total** | **2** |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// HIGH group renders before LOW
	if strings.Index(md, "## HIGH (1)") > strings.Index(md, "## LOW (1)") {
		t.Error("severity groups out of order")
	}
}

func TestMarkdownReportNoFindings(t *testing.T) {
	verdict := &domain.Verdict{
		Status:     domain.StatusPass,
		Reasoning:  "No issues found. The artifact meets all evaluated criteria.",
		Confidence: 0.75,
		Report:     &domain.AggregatedReport{Confidence: 0.75, Findings: []domain.Finding{}},
	}
	rub := &domain.Rubric{Name: "r", Version: "1.0",
		Criteria: []domain.RubricCriterion{{ID: "A", Criterion: "x"}}}

	md := MarkdownReport(verdict, "doc.md", "quick", rub, time.Now())
	if !strings.Contains(md, "No issues found.") {
		t.Error("empty report should say so")
	}
	if !strings.Contains(md, "| **Total** | **0** |") {
		t.Error("summary table should show zero total")
	}
}

func TestMarkdownReportTruncatesEvidence(t *testing.T) {
	verdict := sampleVerdict()
	verdict.Report.Findings[1].Evidence.Result = strings.Repeat("x", 600)
	rub := &domain.Rubric{Name: "r", Version: "1.0",
		Criteria: []domain.RubricCriterion{{ID: "A", Criterion: "x"}}}

	md := MarkdownReport(verdict, "doc.md", "quick", rub, time.Now())
	if strings.Contains(md, strings.Repeat("x", 501)) {
		t.Error("evidence should be truncated to 500 chars")
	}
	if !strings.Contains(md, strings.Repeat("x", 500)) {
		t.Error("truncated evidence missing")
	}
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	PrintVerdict(&buf, sampleVerdict(), "/tmp/run-dir", false)
	out := buf.String()

	for _, want := range []string{
		"QUORUM VERDICT: REVISE",
		"Confidence: 90%",
		"1 HIGH",
		"1 LOW",
		"(1 duplicate findings merged)",
		"Missing error handling in section 3",
		"section 3 has no failure branch", // HIGH evidence shows without verbose
		"Run directory: /tmp/run-dir",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// LOW evidence stays hidden without verbose
	if strings.Contains(out, "(no matches found)") {
		t.Error("low-severity evidence should require verbose mode")
	}

	var verbose bytes.Buffer
	PrintVerdict(&verbose, sampleVerdict(), "", true)
	if !strings.Contains(verbose.String(), "(no matches found)") {
		t.Error("verbose mode should show all evidence")
	}
}

func TestSortedBySeverity(t *testing.T) {
	findings := []domain.Finding{
		{Severity: domain.SeverityLow, Description: "a"},
		{Severity: domain.SeverityCritical, Description: "b"},
		{Severity: domain.SeverityMedium, Description: "c"},
		{Severity: domain.SeverityMedium, Description: "d"},
	}
	sorted := sortedBySeverity(findings)

	var got []string
	for _, f := range sorted {
		got = append(got, f.Description)
	}
	// Stable: the two MEDIUM findings keep their relative order
	want := []string{"b", "c", "d", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}

	if findings[0].Severity != domain.SeverityLow {
		t.Error("input slice must not be mutated")
	}
}
