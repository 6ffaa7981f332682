package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/juparave/quorum/internal/aggregate"
	"github.com/juparave/quorum/internal/config"
	"github.com/juparave/quorum/internal/domain"
	"github.com/juparave/quorum/internal/output"
	"github.com/juparave/quorum/internal/provider"
	"github.com/juparave/quorum/internal/rubric"
	"github.com/juparave/quorum/internal/supervisor"
	"github.com/juparave/quorum/internal/util"
)

// Runner drives a full validation: rubric selection, critic dispatch,
// aggregation, and run-directory persistence.
type Runner struct {
	config   *config.Config
	logger   *log.Logger
	provider provider.Provider
	rubrics  *rubric.Loader
}

// RunResult pairs the verdict with the directory its outputs landed in.
type RunResult struct {
	Verdict *domain.Verdict
	RunDir  string
}

// NewRunner creates a Runner. The provider is injected so tests can
// substitute a fake judgment source.
func NewRunner(cfg *config.Config, p provider.Provider, logger *log.Logger) *Runner {
	return &Runner{
		config:   cfg,
		logger:   logger,
		provider: p,
		rubrics:  rubric.NewLoader(logger),
	}
}

// Run validates the artifact at targetPath against a rubric.
// rubricName may be a builtin name, a file path, or empty for
// auto-detection from the artifact's extension and content.
func (r *Runner) Run(ctx context.Context, targetPath, rubricName, runsDir string) (*RunResult, error) {
	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		return nil, fmt.Errorf("reading target artifact: %w", err)
	}
	artifactText := string(data)

	rub, err := r.selectRubric(rubricName, targetPath, artifactText)
	if err != nil {
		return nil, err
	}

	if runsDir == "" {
		runsDir = r.config.RunsDir
	}
	runDir, err := createRunDir(runsDir, targetPath)
	if err != nil {
		return nil, err
	}

	// Persist inputs up front for auditability
	manifest := map[string]any{
		"run_id":     uuid.NewString(),
		"target":     targetPath,
		"depth":      r.config.DepthProfile,
		"rubric":     rub.Name,
		"critics":    r.config.Critics,
		"started_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := util.WriteJSON(filepath.Join(runDir, "run-manifest.json"), manifest); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(runDir, "artifact.txt"), data, 0644); err != nil {
		return nil, fmt.Errorf("writing artifact copy: %w", err)
	}
	if err := util.WriteJSON(filepath.Join(runDir, "rubric.json"), rub); err != nil {
		return nil, err
	}

	evidenceCtx := buildEvidenceContext(artifactText, targetPath, rub)
	if evidenceCtx != "" {
		r.logf("evidence tools produced %d bytes of context", len(evidenceCtx))
	}

	sup := supervisor.New(r.provider, r.config, r.logger)
	criticResults, err := sup.Run(ctx, artifactText, targetPath, rub, evidenceCtx)
	if err != nil {
		return nil, err
	}

	for i := range criticResults {
		path := filepath.Join(runDir, "critics", criticResults[i].CriticName+"-findings.json")
		if err := util.WriteJSON(path, criticResults[i]); err != nil {
			return nil, err
		}
	}

	verdict := aggregate.New(r.logger).Run(criticResults)

	if err := util.WriteJSON(filepath.Join(runDir, "verdict.json"), verdict); err != nil {
		return nil, err
	}
	reportMD := output.MarkdownReport(&verdict, targetPath, r.config.DepthProfile, rub, time.Now())
	if err := os.WriteFile(filepath.Join(runDir, "report.md"), []byte(reportMD), 0644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	r.logf("run complete: verdict=%s, %d findings, run_dir=%s",
		verdict.Status, verdict.Report.TotalFindings(), runDir)

	return &RunResult{Verdict: &verdict, RunDir: runDir}, nil
}

// selectRubric resolves the rubric: an explicit name wins; otherwise
// extension and content signals pick a builtin, falling back to the
// first builtin available.
func (r *Runner) selectRubric(rubricName, targetPath, artifactText string) (*domain.Rubric, error) {
	if rubricName != "" {
		return r.rubrics.Load(rubricName)
	}

	ext := strings.ToLower(filepath.Ext(targetPath))
	lower := strings.ToLower(artifactText)

	if ext == ".yaml" || ext == ".yml" || ext == ".json" {
		for _, kw := range []string{"agent", "model", "workflow", "pipeline"} {
			if strings.Contains(lower, kw) {
				if rub, err := r.rubrics.Load("agent-config"); err == nil {
					return rub, nil
				}
				break
			}
		}
	}

	if ext == ".md" || ext == ".txt" || ext == ".rst" {
		signals := 0
		for _, s := range []string{"abstract", "methodology", "findings", "hypothesis", "study"} {
			if strings.Contains(lower, s) {
				signals++
			}
		}
		if signals >= 2 {
			if rub, err := r.rubrics.Load("research-synthesis"); err == nil {
				return rub, nil
			}
		}
	}

	builtins := r.rubrics.ListBuiltin()
	if len(builtins) == 0 {
		return nil, fmt.Errorf("no rubric specified and no built-in rubrics found; use --rubric to specify one")
	}
	r.logf("no rubric specified and auto-detection failed, falling back to: %s", builtins[0])
	return r.rubrics.Load(builtins[0])
}

// createRunDir creates the timestamped per-run output directory.
func createRunDir(runsDir, targetPath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(targetPath), filepath.Ext(targetPath))
	runName := time.Now().Format("20060102-150405") + "-" + stem
	runDir := filepath.Join(util.ExpandPath(runsDir), runName)
	if err := util.EnsureDir(filepath.Join(runDir, "critics")); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}
	return runDir, nil
}

func (r *Runner) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
