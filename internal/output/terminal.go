package output

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/juparave/quorum/internal/domain"
)

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	notesStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	reviseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	rejectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	severityStyles = map[domain.Severity]lipgloss.Style{
		domain.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		domain.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		domain.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		domain.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		domain.SeverityInfo:     dimStyle,
	}
)

func verdictStyle(status domain.VerdictStatus) lipgloss.Style {
	switch status {
	case domain.StatusPass:
		return passStyle
	case domain.StatusPassWithNotes:
		return notesStyle
	case domain.StatusRevise:
		return reviseStyle
	case domain.StatusReject:
		return rejectStyle
	}
	return dimStyle
}

// PrintVerdict writes the complete verdict report: banner, reasoning,
// severity summary, findings with evidence previews, and the run
// directory pointers.
func PrintVerdict(w io.Writer, verdict *domain.Verdict, runDir string, verbose bool) {
	fmt.Fprintln(w)

	banner := fmt.Sprintf(" * QUORUM VERDICT: %s ", verdict.Status)
	fmt.Fprintln(w, verdictStyle(verdict.Status).Render(banner))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("-", len(banner))))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", verdict.Reasoning)
	fmt.Fprintf(w, "  Confidence: %.0f%%\n\n", verdict.Confidence*100)

	report := verdict.Report
	if report == nil {
		fmt.Fprintln(w, dimStyle.Render("  (no report data)"))
		return
	}

	printSummary(w, report)

	if len(report.Findings) > 0 {
		fmt.Fprintln(w, dimStyle.Render("-- Findings "+strings.Repeat("-", 48)))
		fmt.Fprintln(w)
		for i, f := range sortedBySeverity(report.Findings) {
			printFinding(w, i+1, &f, verbose)
		}
	}

	if runDir != "" {
		fmt.Fprintln(w, dimStyle.Render("-- Outputs "+strings.Repeat("-", 49)))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Run directory: %s\n", runDir)
		fmt.Fprintf(w, "  Detailed report: %s\n", filepath.Join(runDir, "report.md"))
		fmt.Fprintf(w, "  Machine-readable: %s\n\n", filepath.Join(runDir, "verdict.json"))
	}
}

func printSummary(w io.Writer, report *domain.AggregatedReport) {
	if report.TotalFindings() == 0 {
		fmt.Fprintln(w, passStyle.Render("  OK No issues found"))
	} else {
		var counts []string
		if n := report.CriticalCount(); n > 0 {
			counts = append(counts, severityStyles[domain.SeverityCritical].Render(fmt.Sprintf("%d CRITICAL", n)))
		}
		if n := report.HighCount(); n > 0 {
			counts = append(counts, severityStyles[domain.SeverityHigh].Render(fmt.Sprintf("%d HIGH", n)))
		}
		if n := report.MediumCount(); n > 0 {
			counts = append(counts, severityStyles[domain.SeverityMedium].Render(fmt.Sprintf("%d MEDIUM", n)))
		}
		if n := report.LowCount(); n > 0 {
			counts = append(counts, severityStyles[domain.SeverityLow].Render(fmt.Sprintf("%d LOW", n)))
		}
		if n := report.InfoCount(); n > 0 {
			counts = append(counts, dimStyle.Render(fmt.Sprintf("%d INFO", n)))
		}
		fmt.Fprintf(w, "  Issues: %s  (%d total)\n", strings.Join(counts, " / "), report.TotalFindings())
	}

	if report.ConflictsResolved > 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  (%d duplicate findings merged)", report.ConflictsResolved)))
	}
	fmt.Fprintln(w)
}

func printFinding(w io.Writer, index int, f *domain.Finding, verbose bool) {
	label := severityStyles[f.Severity].Render(fmt.Sprintf("[%-8s]", f.Severity))
	fmt.Fprintf(w, "  %2d. %s %s\n", index, label, f.Description)

	if f.Location != "" {
		fmt.Fprintln(w, dimStyle.Render("       Location: "+f.Location))
	}
	if f.CriticSource != "" {
		fmt.Fprintln(w, dimStyle.Render("       Critic:   "+strings.Trim(f.CriticSource, ",")))
	}
	if f.RubricCriterion != "" {
		fmt.Fprintln(w, dimStyle.Render("       Criterion: "+f.RubricCriterion))
	}

	// Evidence always shows for CRITICAL/HIGH; for the rest only in verbose mode
	if verbose || f.Severity == domain.SeverityCritical || f.Severity == domain.SeverityHigh {
		preview := strings.TrimSpace(strings.ReplaceAll(f.Evidence.Result, "\n", " "))
		if len(preview) > 120 {
			preview = preview[:117] + "..."
		}
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("       Evidence [%s]: %s", f.Evidence.Tool, preview)))
	}
	fmt.Fprintln(w)
}

func sortedBySeverity(findings []domain.Finding) []domain.Finding {
	sorted := append([]domain.Finding(nil), findings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
	})
	return sorted
}

// PrintRubricList prints the available rubric names.
func PrintRubricList(w io.Writer, names []string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render("Available built-in rubrics:"))
	for _, name := range names {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	fmt.Fprintln(w)
}

// PrintError prints an error message.
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, errorStyle.Render("x Error: "+message))
}

// PrintWarning prints a warning message.
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w, warningStyle.Render("! "+message))
}
