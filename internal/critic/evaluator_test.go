package critic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/juparave/quorum/internal/config"
	"github.com/juparave/quorum/internal/domain"
	"github.com/juparave/quorum/internal/provider"
)

// fakeProvider returns a canned structured response and records the
// last request so prompt assembly can be asserted.
type fakeProvider struct {
	response map[string]any
	err      error
	lastReq  provider.Request
}

func (f *fakeProvider) Complete(_ context.Context, req provider.Request) (string, error) {
	f.lastReq = req
	return "", f.err
}

func (f *fakeProvider) CompleteJSON(_ context.Context, req provider.Request) (map[string]any, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func testRubric() *domain.Rubric {
	return &domain.Rubric{
		Name:    "test-rubric",
		Domain:  "docs",
		Version: "1.0",
		Criteria: []domain.RubricCriterion{
			{ID: "T1", Criterion: "Claims must be internally consistent", Severity: domain.SeverityHigh,
				EvidenceRequired: "quote the contradicting passages"},
		},
	}
}

func newTestEvaluator(p provider.Provider) *Evaluator {
	return NewEvaluator(p, config.DefaultConfig("quick"), nil)
}

func rawFinding(severity, description, tool, result string) map[string]any {
	return map[string]any{
		"severity":        severity,
		"description":     description,
		"evidence_tool":   tool,
		"evidence_result": result,
	}
}

func TestEvaluateGatesUngroundedFindings(t *testing.T) {
	fake := &fakeProvider{response: map[string]any{
		"findings": []any{
			rawFinding("HIGH", "Section 2 contradicts section 4", "grep", "sec 2: 'always'; sec 4: 'never'"),
			rawFinding("CRITICAL", "This feels wrong somehow", "analysis", "   "),
		},
	}}

	result, err := newTestEvaluator(fake).Evaluate(context.Background(), &Correctness{}, "artifact", testRubric(), "")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	want := []domain.Finding{{
		Severity:    domain.SeverityHigh,
		Description: "Section 2 contradicts section 4",
		Evidence: domain.Evidence{
			Tool:   "grep",
			Result: "sec 2: 'always'; sec 4: 'never'",
		},
		CriticSource: "correctness",
	}}
	if diff := cmp.Diff(want, result.Findings); diff != "" {
		t.Errorf("findings (-want +got):\n%s", diff)
	}
	if result.Confidence != 0.95 {
		t.Errorf("confidence: got %v, want 0.95 (all surviving findings grounded)", result.Confidence)
	}
	if result.Skipped {
		t.Error("a gated finding must not mark the result skipped")
	}
}

func TestEvaluateDefaultsToolAndSeverity(t *testing.T) {
	fake := &fakeProvider{response: map[string]any{
		"findings": []any{
			rawFinding("BLOCKER", "Unclear ownership of step 3", "", "step 3 names no owner"),
		},
	}}

	result, err := newTestEvaluator(fake).Evaluate(context.Background(), &Correctness{}, "artifact", testRubric(), "")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("findings: got %d, want 1", len(result.Findings))
	}
	f := result.Findings[0]
	if f.Severity != domain.SeverityMedium {
		t.Errorf("unknown severity should default to MEDIUM, got %s", f.Severity)
	}
	if f.Evidence.Tool != "llm-analysis" {
		t.Errorf("empty evidence_tool should default to llm-analysis, got %q", f.Evidence.Tool)
	}
}

func TestEvaluateNoFindingsConfidence(t *testing.T) {
	fake := &fakeProvider{response: map[string]any{"findings": []any{}}}

	result, err := newTestEvaluator(fake).Evaluate(context.Background(), &Correctness{}, "artifact", testRubric(), "")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Findings) != 0 {
		t.Errorf("findings: got %d, want 0", len(result.Findings))
	}
	if result.Confidence != 0.75 {
		t.Errorf("empty-findings confidence: got %v, want 0.75", result.Confidence)
	}
}

func TestEvaluateDegradesOnProviderFailure(t *testing.T) {
	fake := &fakeProvider{err: errors.New("rate limited")}

	result, err := newTestEvaluator(fake).Evaluate(context.Background(), &Correctness{}, "artifact", testRubric(), "")
	if err != nil {
		t.Fatalf("provider failure must degrade, not error: %v", err)
	}
	if result.Skipped {
		t.Error("degraded result must not be skipped")
	}
	if len(result.Findings) != 0 || result.Confidence != 0.0 {
		t.Errorf("degraded result: got %d findings, confidence %v; want 0 and 0.0",
			len(result.Findings), result.Confidence)
	}
	if result.CriticName != "correctness" {
		t.Errorf("critic name: got %q", result.CriticName)
	}
}

func TestEvaluateRubricPreconditions(t *testing.T) {
	e := newTestEvaluator(&fakeProvider{})

	if _, err := e.Evaluate(context.Background(), &Correctness{}, "artifact", nil, ""); err == nil {
		t.Error("nil rubric should error")
	}
	invalid := &domain.Rubric{Name: ""}
	if _, err := e.Evaluate(context.Background(), &Correctness{}, "artifact", invalid, ""); err == nil {
		t.Error("invalid rubric should error")
	}
}

func TestEvaluatePromptAssembly(t *testing.T) {
	fake := &fakeProvider{response: map[string]any{"findings": []any{}}}

	_, err := newTestEvaluator(fake).Evaluate(
		context.Background(), &Correctness{}, "the artifact body", testRubric(), "prior run found two issues")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	req := fake.lastReq
	if !strings.Contains(req.Prompt, "the artifact body") {
		t.Error("prompt missing artifact text")
	}
	if !strings.Contains(req.Prompt, "Additional Context\nprior run found two issues") {
		t.Error("prompt missing extra context section")
	}
	if req.System == "" {
		t.Error("system prompt not set")
	}
	if req.Schema == "" {
		t.Error("findings schema not set")
	}
	if req.Model != config.DefaultConfig("quick").CriticModel() {
		t.Errorf("model: got %q", req.Model)
	}
}

func TestFilterCriteriaFallsBackToFullSet(t *testing.T) {
	criteria := []domain.RubricCriterion{
		{ID: "A", Criterion: "Every step names an owner"},
		{ID: "B", Criterion: "Rollback procedure is documented"},
	}
	got := filterCriteria(criteria, correctnessKeywords)
	if diff := cmp.Diff(criteria, got); diff != "" {
		t.Errorf("no keyword hits should keep the full set (-want +got):\n%s", diff)
	}

	criteria = append(criteria, domain.RubricCriterion{ID: "C", Criterion: "Totals are consistent across sections"})
	got = filterCriteria(criteria, correctnessKeywords)
	if len(got) != 1 || got[0].ID != "C" {
		t.Errorf("keyword filter: got %+v, want only criterion C", got)
	}
}
