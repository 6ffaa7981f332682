package critic

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/juparave/quorum/internal/config"
	"github.com/juparave/quorum/internal/domain"
	"github.com/juparave/quorum/internal/provider"
)

// Evaluator runs critics against artifacts. It owns the behavior every
// critic shares: prompt assembly, the judgment-source call, the
// evidence gate, and runtime accounting.
type Evaluator struct {
	provider provider.Provider
	config   *config.Config
	logger   *log.Logger
}

// NewEvaluator creates an Evaluator bound to a judgment source.
func NewEvaluator(p provider.Provider, cfg *config.Config, logger *log.Logger) *Evaluator {
	return &Evaluator{provider: p, config: cfg, logger: logger}
}

// Evaluate runs one critic against the artifact and rubric.
//
// Judgment-source failures (call errors, unparseable output) degrade to
// an empty-findings, zero-confidence result rather than an error: a
// single critic's failure must never abort the run. The returned error
// covers only precondition violations the caller should surface.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	c Critic,
	artifactText string,
	rubric *domain.Rubric,
	extraContext string,
) (domain.CriticResult, error) {
	if rubric == nil {
		return domain.CriticResult{}, fmt.Errorf("critic %s: rubric is required", c.Name())
	}
	if err := rubric.Validate(); err != nil {
		return domain.CriticResult{}, fmt.Errorf("critic %s: %w", c.Name(), err)
	}

	start := time.Now()
	e.logf("[%s] starting evaluation", c.Name())

	prompt := c.BuildPrompt(artifactText, rubric)
	if extraContext != "" {
		prompt += "\n\n### Additional Context\n" + extraContext
	}

	var findings []domain.Finding
	var confidence float64

	raw, err := e.provider.CompleteJSON(ctx, provider.Request{
		System:      c.SystemPrompt(),
		Prompt:      prompt,
		Model:       e.config.CriticModel(),
		Schema:      findingsSchema,
		Temperature: e.config.Temperature,
	})
	if err != nil {
		e.logf("[%s] evaluation failed: %v", c.Name(), err)
		findings = nil
		confidence = 0.0
	} else {
		findings = e.gateFindings(c.Name(), raw)
		confidence = estimateConfidence(findings)
	}

	runtime := time.Since(start).Milliseconds()
	e.logf("[%s] done: %d findings in %dms (confidence=%.2f)",
		c.Name(), len(findings), runtime, confidence)

	return domain.CriticResult{
		CriticName: c.Name(),
		Findings:   findings,
		Confidence: confidence,
		RuntimeMS:  runtime,
	}, nil
}

// gateFindings converts raw structured output into validated findings.
// Any proposed finding whose evidence result is empty after trimming is
// discarded, not downgraded. Rejected findings are not retained; only
// their count is logged.
func (e *Evaluator) gateFindings(criticName string, raw map[string]any) []domain.Finding {
	rawFindings, _ := raw["findings"].([]any)
	valid := make([]domain.Finding, 0, len(rawFindings))

	for i, entry := range rawFindings {
		f, _ := entry.(map[string]any)
		if f == nil {
			continue
		}

		evidenceResult := strings.TrimSpace(stringField(f, "evidence_result"))
		if evidenceResult == "" {
			e.logf("[%s] finding #%d rejected: no evidence provided. Description: %.80s",
				criticName, i, stringField(f, "description"))
			continue
		}

		evidenceTool := stringField(f, "evidence_tool")
		if evidenceTool == "" {
			evidenceTool = "llm-analysis"
		}
		citation := stringField(f, "rubric_criterion")

		valid = append(valid, domain.Finding{
			Severity:    domain.ParseSeverity(stringField(f, "severity")),
			Description: stringField(f, "description"),
			Evidence: domain.Evidence{
				Tool:     evidenceTool,
				Result:   evidenceResult,
				Citation: citation,
			},
			Location:        stringField(f, "location"),
			CriticSource:    criticName,
			RubricCriterion: citation,
		})
	}

	if rejected := len(rawFindings) - len(valid); rejected > 0 {
		e.logf("[%s] rejected %d ungrounded findings", criticName, rejected)
	}

	return valid
}

// estimateConfidence maps the grounded ratio to a confidence score.
// With no findings it returns a fixed 0.75: an empty result plausibly
// means a clean artifact, not a failed critic. Otherwise the score is
// 0.5 + 0.45*ratio in [0.50, 0.95]; post-gate the ratio is always 1.0.
// The mapping is an uncalibrated heuristic kept for behavioral
// compatibility, not a probability model.
func estimateConfidence(findings []domain.Finding) float64 {
	if len(findings) == 0 {
		return 0.75
	}
	grounded := 0
	for i := range findings {
		if findings[i].IsGrounded() {
			grounded++
		}
	}
	ratio := float64(grounded) / float64(len(findings))
	return math.Round((0.5+ratio*0.45)*100) / 100
}

func (e *Evaluator) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
