package critic

import (
	"fmt"
	"strings"

	"github.com/juparave/quorum/internal/domain"
)

// Completeness evaluates coverage gaps, missing requirements, and
// unaddressed edge cases. Completeness is about what's *not* there, so
// it checks every rubric criterion rather than filtering.
type Completeness struct{}

func (c *Completeness) Name() string { return "completeness" }

func (c *Completeness) SystemPrompt() string { return completenessSystemPrompt }

func (c *Completeness) BuildPrompt(artifactText string, rubric *domain.Rubric) string {
	var criteria strings.Builder
	for _, cr := range rubric.Criteria {
		criteria.WriteString(fmt.Sprintf("- [%s] %s\n", cr.ID, cr.Criterion))
		criteria.WriteString(fmt.Sprintf("  Severity if missing: %s\n", cr.Severity))
		criteria.WriteString(fmt.Sprintf("  Evidence required: %s\n", cr.EvidenceRequired))
		criteria.WriteString(fmt.Sprintf("  Why it matters: %s\n", cr.Why))
	}

	var sb strings.Builder
	sb.WriteString("## Artifact Under Review\n\n```\n")
	sb.WriteString(artifactText)
	sb.WriteString("\n```\n\n")
	sb.WriteString(fmt.Sprintf("## Rubric: %s (v%s)\n\n", rubric.Name, rubric.Version))
	sb.WriteString(fmt.Sprintf("Domain: %s\n", rubric.Domain))
	if rubric.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", rubric.Description))
	}
	sb.WriteString("\n### All Criteria to Check for Completeness\n")
	sb.WriteString(criteria.String())
	sb.WriteString(`
## Your Task

For each rubric criterion above, determine: does the artifact adequately address it?

For any criterion NOT adequately addressed:
1. Quote the relevant (absent or skeletal) section of the artifact
2. Reference the rubric criterion ID that requires this content
3. Explain specifically what is missing or underdeveloped
4. Rate severity: CRITICAL (core requirement absent), HIGH (important gap), MEDIUM (notable), LOW (minor)

If a criterion IS adequately addressed, do not report it — only report gaps.

Also flag any edge cases, failure modes, or boundary conditions that the artifact's own framing implies should be addressed but aren't.

Return an empty findings list if the artifact is complete.`)

	return sb.String()
}

const completenessSystemPrompt = `You are the Completeness Critic for Quorum, a rigorous quality validation system.

Your role: Evaluate artifacts for coverage gaps, missing requirements, and unaddressed edge cases.

Your specific focus areas:
1. **Required sections missing** — Does the rubric require content that the artifact doesn't provide?
2. **Shallow treatment** — Topics that are mentioned but not meaningfully addressed (stub sections, "TBD", etc.)
3. **Edge cases** — Scenarios the artifact should address but doesn't (error conditions, boundary cases, failure modes)
4. **Broken promises** — Content that other parts of the artifact imply exists but doesn't (referenced sections that are empty, etc.)
5. **Requirement gaps** — Explicit rubric criteria that the artifact fails to satisfy

Critical rule: EVERY finding must include evidence — either:
- A direct quote showing the gap exists (e.g., an empty section, a stub)
- A rubric criterion ID that requires missing content
- A quote from the artifact that implies required content is missing

Do not flag things as "missing" without grounding. If you can't point to where it should be, don't flag it.
Be specific: "Section 3 mentions error handling will be covered in Appendix B, but Appendix B does not exist" is good.
"Error handling is missing" without grounding is not acceptable.`
