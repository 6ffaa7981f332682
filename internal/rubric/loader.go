package rubric

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/juparave/quorum/internal/domain"
	"github.com/juparave/quorum/internal/util"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// rawCriterion mirrors the on-disk criterion shape so severity can be
// coerced leniently before it becomes a domain type.
type rawCriterion struct {
	ID               string `json:"id"`
	Criterion        string `json:"criterion"`
	Severity         string `json:"severity"`
	EvidenceRequired string `json:"evidence_required"`
	Why              string `json:"why"`
	Category         string `json:"category"`
}

type rawRubric struct {
	Name        string         `json:"name"`
	Domain      string         `json:"domain"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Criteria    []rawCriterion `json:"criteria"`
}

// Loader reads JSON rubric files, by builtin name or file path.
type Loader struct {
	logger *log.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load resolves nameOrPath as a file path first, then as a builtin
// rubric name, and returns the validated rubric.
func (l *Loader) Load(nameOrPath string) (*domain.Rubric, error) {
	expanded := util.ExpandPath(nameOrPath)
	if util.FileExists(expanded) {
		data, err := os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("reading rubric %s: %w", expanded, err)
		}
		return l.parse(data, expanded)
	}

	data, err := builtinFS.ReadFile("builtin/" + nameOrPath + ".json")
	if err == nil {
		return l.parse(data, nameOrPath)
	}

	return nil, fmt.Errorf(
		"rubric not found: %q (built-in rubrics: %s; or provide a path to a JSON rubric file)",
		nameOrPath, strings.Join(l.ListBuiltin(), ", "))
}

// ListBuiltin returns the names of all built-in rubrics.
func (l *Loader) ListBuiltin() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

func (l *Loader) parse(data []byte, source string) (*domain.Rubric, error) {
	var raw rawRubric
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in rubric %s: %w", source, err)
	}

	criteria := make([]domain.RubricCriterion, 0, len(raw.Criteria))
	for _, rc := range raw.Criteria {
		severity := domain.Severity(strings.ToUpper(rc.Severity))
		if !severity.IsValid() {
			l.logf("unknown severity %q in rubric %s criterion %s — defaulting to MEDIUM",
				rc.Severity, filepath.Base(source), rc.ID)
			severity = domain.SeverityMedium
		}
		criteria = append(criteria, domain.RubricCriterion{
			ID:               rc.ID,
			Criterion:        rc.Criterion,
			Severity:         severity,
			EvidenceRequired: rc.EvidenceRequired,
			Why:              rc.Why,
			Category:         rc.Category,
		})
	}

	version := raw.Version
	if version == "" {
		version = "1.0"
	}

	rubric := &domain.Rubric{
		Name:        raw.Name,
		Domain:      raw.Domain,
		Version:     version,
		Description: raw.Description,
		Criteria:    criteria,
	}
	if err := rubric.Validate(); err != nil {
		return nil, fmt.Errorf("rubric %s: %w", source, err)
	}

	l.logf("loaded rubric: %s v%s (%d criteria)", rubric.Name, rubric.Version, len(criteria))
	return rubric, nil
}

func (l *Loader) logf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Printf(format, args...)
	}
}
