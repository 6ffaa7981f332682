package critic

import (
	"fmt"
	"strings"

	"github.com/juparave/quorum/internal/domain"
)

// correctnessKeywords select the rubric criteria this critic cares
// about. If nothing matches, the full criteria set is used instead.
var correctnessKeywords = []string{
	"accurate", "correct", "consistent", "factual", "logical",
	"contradict", "valid", "truth", "claim", "support",
}

// Correctness evaluates factual accuracy, logical consistency, and
// internal contradictions. Evidence must be direct quotes or specific
// references from the artifact.
type Correctness struct{}

func (c *Correctness) Name() string { return "correctness" }

func (c *Correctness) SystemPrompt() string { return correctnessSystemPrompt }

func (c *Correctness) BuildPrompt(artifactText string, rubric *domain.Rubric) string {
	relevant := filterCriteria(rubric.Criteria, correctnessKeywords)

	var criteria strings.Builder
	for _, cr := range relevant {
		criteria.WriteString(fmt.Sprintf("- [%s] %s (Severity: %s)\n", cr.ID, cr.Criterion, cr.Severity))
		criteria.WriteString(fmt.Sprintf("  Evidence required: %s\n", cr.EvidenceRequired))
	}

	var sb strings.Builder
	sb.WriteString("## Artifact Under Review\n\n```\n")
	sb.WriteString(artifactText)
	sb.WriteString("\n```\n\n")
	sb.WriteString(fmt.Sprintf("## Rubric: %s (v%s)\n\n", rubric.Name, rubric.Version))
	sb.WriteString(fmt.Sprintf("Domain: %s\n\n", rubric.Domain))
	sb.WriteString("### Criteria to Evaluate\n")
	sb.WriteString(criteria.String())
	sb.WriteString(`
## Your Task

Review the artifact above for correctness issues. For each finding:
1. Quote the specific text from the artifact that is problematic
2. Explain the correctness violation clearly
3. Identify which rubric criterion it violates (if any)
4. Assign a severity: CRITICAL (fatal flaw), HIGH (significant), MEDIUM (notable), LOW (minor), INFO (FYI)

If the artifact is entirely correct, return an empty findings list.
Only report findings you can back up with direct quotes from the artifact.`)

	return sb.String()
}

// filterCriteria keeps criteria whose text contains any keyword,
// falling back to the full set when none match.
func filterCriteria(criteria []domain.RubricCriterion, keywords []string) []domain.RubricCriterion {
	var relevant []domain.RubricCriterion
	for _, cr := range criteria {
		lower := strings.ToLower(cr.Criterion)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				relevant = append(relevant, cr)
				break
			}
		}
	}
	if len(relevant) == 0 {
		return criteria
	}
	return relevant
}

const correctnessSystemPrompt = `You are the Correctness Critic for Quorum, a rigorous quality validation system.

Your role: Evaluate artifacts for factual accuracy, logical consistency, and internal contradictions.

Your specific focus areas:
1. **Internal contradictions** — Does the artifact contradict itself? Are statements in one section incompatible with another?
2. **Logical consistency** — Do the conclusions follow from the premises? Are there non-sequiturs or unsupported leaps?
3. **Factual claims** — Are stated facts plausible and internally coherent? Flag claims that appear unsubstantiated.
4. **Reference accuracy** — Are citations, names, and quoted figures internally consistent?
5. **Terminology consistency** — Is the same concept described by conflicting terms in different sections?

Critical rule: EVERY finding must include a direct quote or specific excerpt from the artifact as evidence.
If you cannot quote the artifact to support a finding, do not report it.
Vague claims like "this section is unclear" without evidence will be rejected.

Be precise, be fair, be thorough. Do not invent issues. Do not hallucinate quotes.`
