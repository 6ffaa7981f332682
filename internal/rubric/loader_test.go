package rubric

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/juparave/quorum/internal/domain"
)

func TestListBuiltin(t *testing.T) {
	got := NewLoader(nil).ListBuiltin()
	want := []string{"agent-config", "research-synthesis"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("builtin rubrics (-want +got):\n%s", diff)
	}
}

func TestLoadBuiltin(t *testing.T) {
	loader := NewLoader(nil)
	for _, name := range loader.ListBuiltin() {
		rub, err := loader.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if rub.Name == "" || len(rub.Criteria) == 0 {
			t.Errorf("builtin %q loaded incomplete: name=%q criteria=%d", name, rub.Name, len(rub.Criteria))
		}
		for _, c := range rub.Criteria {
			if !c.Severity.IsValid() {
				t.Errorf("builtin %q criterion %s has invalid severity %q", name, c.ID, c.Severity)
			}
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	content := `{
  "name": "deploy-checklist",
  "domain": "ops",
  "criteria": [
    {"id": "D1", "criterion": "Rollback steps present", "severity": "high",
     "evidence_required": "quote the rollback section"},
    {"id": "D2", "criterion": "Owner named", "severity": "blocker"}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rub, err := NewLoader(nil).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rub.Name != "deploy-checklist" {
		t.Errorf("name: got %q", rub.Name)
	}
	if rub.Version != "1.0" {
		t.Errorf("missing version should default to 1.0, got %q", rub.Version)
	}
	if got := rub.Criteria[0].Severity; got != domain.SeverityHigh {
		t.Errorf("lowercase severity should coerce: got %s", got)
	}
	if got := rub.Criteria[1].Severity; got != domain.SeverityMedium {
		t.Errorf("unknown severity should default to MEDIUM, got %s", got)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := NewLoader(nil).Load("no-such-rubric")
	if err == nil {
		t.Fatal("expected error for unknown rubric")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(nil).Load(badJSON); err == nil {
		t.Error("malformed JSON should error")
	}

	noCriteria := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(noCriteria, []byte(`{"name": "empty", "criteria": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(nil).Load(noCriteria); err == nil {
		t.Error("rubric without criteria should error")
	}
}
