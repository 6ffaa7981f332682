package supervisor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/juparave/quorum/internal/config"
	"github.com/juparave/quorum/internal/critic"
	"github.com/juparave/quorum/internal/domain"
	"github.com/juparave/quorum/internal/provider"
)

// Supervisor orchestrates the validation pipeline: it resolves the
// configured critic set, classifies the artifact, and dispatches every
// critic against the same artifact and rubric.
type Supervisor struct {
	evaluator *critic.Evaluator
	config    *config.Config
	logger    *log.Logger
}

// New creates a Supervisor bound to a judgment source.
func New(p provider.Provider, cfg *config.Config, logger *log.Logger) *Supervisor {
	return &Supervisor{
		evaluator: critic.NewEvaluator(p, cfg, logger),
		config:    cfg,
		logger:    logger,
	}
}

// BuildCritics resolves the configured critic names against the
// registry. Unimplemented names are skipped with a warning; an empty
// resolved set is an error, since the run would validate nothing.
func (s *Supervisor) BuildCritics() ([]critic.Critic, error) {
	var critics []critic.Critic
	for _, name := range s.config.Critics {
		c, ok := critic.Lookup(name)
		if !ok {
			s.logf("critic %q is not yet implemented — skipping (available: %s)",
				name, strings.Join(critic.Names(), ", "))
			continue
		}
		critics = append(critics, c)
	}

	if len(critics) == 0 {
		return nil, fmt.Errorf(
			"no valid critics could be built from config %v (available: %s)",
			s.config.Critics, strings.Join(critic.Names(), ", "))
	}

	return critics, nil
}

// Run dispatches every built critic, in configured order, against the
// identical artifact and rubric. A critic that fails is converted to a
// skipped result carrying the failure text; the run continues. The
// returned slice preserves dispatch order, skipped entries included —
// the aggregator must see every critic that was supposed to run.
func (s *Supervisor) Run(
	ctx context.Context,
	artifactText string,
	artifactPath string,
	rubric *domain.Rubric,
	extraContext string,
) ([]domain.CriticResult, error) {
	artifactDomain := ClassifyDomain(artifactText, artifactPath)
	s.logf("supervisor: artifact=%q domain=%q depth=%q critics=%v",
		artifactPath, artifactDomain, s.config.DepthProfile, s.config.Critics)

	critics, err := s.BuildCritics()
	if err != nil {
		return nil, err
	}

	// One slot per critic keeps the ordering contract intact even if
	// dispatch is ever parallelized.
	results := make([]domain.CriticResult, len(critics))

	for i, c := range critics {
		s.logf("running critic: %s", c.Name())
		results[i] = s.dispatch(ctx, c, artifactText, rubric, extraContext)
		if results[i].Skipped {
			s.logf("critic %s skipped: %s", c.Name(), results[i].SkipReason)
		} else {
			s.logf("critic %s: %d findings (confidence=%.2f)",
				c.Name(), len(results[i].Findings), results[i].Confidence)
		}
	}

	return results, nil
}

// dispatch runs one critic, converting any failure — returned error or
// panic — into a skipped result. The evaluator already degrades
// judgment-source failures internally; this layer is the outer guard
// so a broken critic can never abort the run.
func (s *Supervisor) dispatch(
	ctx context.Context,
	c critic.Critic,
	artifactText string,
	rubric *domain.Rubric,
	extraContext string,
) (result domain.CriticResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.SkippedResult(c.Name(), fmt.Sprintf("critic panicked: %v", r))
		}
	}()

	res, err := s.evaluator.Evaluate(ctx, c, artifactText, rubric, extraContext)
	if err != nil {
		return domain.SkippedResult(c.Name(), err.Error())
	}
	return res
}

func (s *Supervisor) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
