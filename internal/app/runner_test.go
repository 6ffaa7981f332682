package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juparave/quorum/internal/config"
	"github.com/juparave/quorum/internal/domain"
	"github.com/juparave/quorum/internal/provider"
)

type fakeProvider struct {
	response map[string]any
}

func (f *fakeProvider) Complete(context.Context, provider.Request) (string, error) {
	return "", nil
}

func (f *fakeProvider) CompleteJSON(context.Context, provider.Request) (map[string]any, error) {
	return f.response, nil
}

func findingResponse() map[string]any {
	return map[string]any{
		"findings": []any{
			map[string]any{
				"severity":        "HIGH",
				"description":     "Missing error handling in section 3",
				"evidence_tool":   "llm-analysis",
				"evidence_result": "section 3 has no failure branch",
			},
		},
	}
}

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesRunDirectory(t *testing.T) {
	cfg := config.DefaultConfig("standard")
	runner := NewRunner(cfg, &fakeProvider{response: findingResponse()}, nil)

	target := writeArtifact(t, "agent.yaml", "agent:\n  model: gpt-4o\n")
	runsDir := t.TempDir()

	result, err := runner.Run(context.Background(), target, "agent-config", runsDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Both critics report the same issue; it merges to one HIGH finding
	if result.Verdict.Status != domain.StatusRevise {
		t.Errorf("status: got %s, want REVISE", result.Verdict.Status)
	}
	if got := result.Verdict.Report.TotalFindings(); got != 1 {
		t.Errorf("findings: got %d, want 1 after dedup", got)
	}
	if result.Verdict.Report.ConflictsResolved != 1 {
		t.Errorf("conflicts_resolved: got %d, want 1", result.Verdict.Report.ConflictsResolved)
	}

	if !strings.HasPrefix(result.RunDir, runsDir) {
		t.Errorf("run dir %q not under %q", result.RunDir, runsDir)
	}
	for _, name := range []string{
		"run-manifest.json",
		"artifact.txt",
		"rubric.json",
		"verdict.json",
		"report.md",
		filepath.Join("critics", "correctness-findings.json"),
		filepath.Join("critics", "completeness-findings.json"),
	} {
		if _, err := os.Stat(filepath.Join(result.RunDir, name)); err != nil {
			t.Errorf("missing run output %s: %v", name, err)
		}
	}

	// Manifest carries a run id and the inputs
	data, err := os.ReadFile(filepath.Join(result.RunDir, "run-manifest.json"))
	if err != nil {
		t.Fatal(err)
	}
	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if manifest["run_id"] == "" || manifest["run_id"] == nil {
		t.Error("manifest missing run_id")
	}
	if manifest["rubric"] != "agent-config" {
		t.Errorf("manifest rubric: got %v", manifest["rubric"])
	}

	// Persisted verdict round-trips
	data, err = os.ReadFile(filepath.Join(result.RunDir, "verdict.json"))
	if err != nil {
		t.Fatal(err)
	}
	var persisted domain.Verdict
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("verdict.json is not valid JSON: %v", err)
	}
	if persisted.Status != result.Verdict.Status {
		t.Errorf("persisted status %s != returned %s", persisted.Status, result.Verdict.Status)
	}
}

func TestRunCleanArtifactPasses(t *testing.T) {
	cfg := config.DefaultConfig("quick")
	runner := NewRunner(cfg, &fakeProvider{response: map[string]any{"findings": []any{}}}, nil)

	target := writeArtifact(t, "doc.md", "A short, unobjectionable document.")
	result, err := runner.Run(context.Background(), target, "research-synthesis", t.TempDir())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Verdict.Status != domain.StatusPass {
		t.Errorf("status: got %s, want PASS", result.Verdict.Status)
	}
	if result.Verdict.IsActionable() {
		t.Error("PASS must not be actionable")
	}
}

func TestRunMissingTarget(t *testing.T) {
	runner := NewRunner(config.DefaultConfig("quick"), &fakeProvider{}, nil)
	_, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "absent.md"), "", t.TempDir())
	if err == nil {
		t.Fatal("missing target should error")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig("quick")
	cfg.Critics = nil
	runner := NewRunner(cfg, &fakeProvider{}, nil)

	target := writeArtifact(t, "doc.md", "content")
	if _, err := runner.Run(context.Background(), target, "", t.TempDir()); err == nil {
		t.Fatal("invalid config should error before any work")
	}
}

func TestSelectRubric(t *testing.T) {
	runner := NewRunner(config.DefaultConfig("quick"), &fakeProvider{}, nil)

	cases := []struct {
		name     string
		explicit string
		path     string
		text     string
		want     string
	}{
		{"explicit name wins", "research-synthesis", "agent.yaml", "agent: x", "research-synthesis"},
		{"agent yaml detected", "", "pipeline.yaml", "model: gpt-4o\nworkflow: review", "agent-config"},
		{"research markdown detected", "", "paper.md", "Abstract: we present findings from a study", "research-synthesis"},
		{"plain markdown falls back", "", "notes.md", "a grocery list", "agent-config"},
		{"unknown extension falls back", "", "data.csv", "a,b,c", "agent-config"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rub, err := runner.selectRubric(tc.explicit, tc.path, tc.text)
			if err != nil {
				t.Fatalf("selectRubric: %v", err)
			}
			if rub.Name != tc.want {
				t.Errorf("got rubric %q, want %q", rub.Name, tc.want)
			}
		})
	}
}
