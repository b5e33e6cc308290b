// Package gate turns the structure engine into a pass/fail check for
// pipelines. It bounds input size, runs the engine inside a trace span,
// records metrics and decides whether a tree may proceed.
package gate

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
	"github.com/felixgeelhaar/treecheck/internal/config"
	"github.com/felixgeelhaar/treecheck/internal/errors"
	"github.com/felixgeelhaar/treecheck/internal/log"
	"github.com/felixgeelhaar/treecheck/internal/metrics"
	"github.com/felixgeelhaar/treecheck/internal/structure"
	"github.com/felixgeelhaar/treecheck/internal/telemetry"
)

// Outcome labels a check for metrics and logs.
type Outcome string

const (
	OutcomePassed   Outcome = "passed"
	OutcomeRejected Outcome = "rejected"
	OutcomeRefused  Outcome = "refused"
	OutcomeFailed   Outcome = "failed"
)

// Verdict is the result of one gate check.
type Verdict struct {
	Result      structure.Result `json:"result" yaml:"result"`
	Fingerprint string           `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Passed      bool             `json:"passed" yaml:"passed"`
	Outcome     Outcome          `json:"outcome" yaml:"outcome"`
	Nodes       int              `json:"nodes" yaml:"nodes"`
}

// Gate checks trees against a validator and a gate policy.
type Gate struct {
	validator *structure.Validator
	policy    config.GateConfig
	metrics   *metrics.Metrics
	logger    *log.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithMetrics records checks on m instead of a private registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

// WithLogger replaces the process default logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Gate) { g.logger = l }
}

// New creates a gate from the rules and gate sections of cfg.
func New(cfg config.Config, opts ...Option) *Gate {
	g := &Gate{
		validator: structure.New(structure.WithRules(cfg.Rules)),
		policy:    cfg.Gate,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.metrics == nil {
		_, g.metrics = metrics.NewRegistry()
	}
	if g.logger == nil {
		g.logger = log.DefaultLogger()
	}
	return g
}

// Check validates f and applies the gate policy. The verdict is filled in
// whenever the engine ran, so callers can report it even when the returned
// error rejects the tree. Rejections carry GATE-* codes; a tree the engine
// could not traverse yields TREE-005 alongside the degraded result. Metadata
// that cannot be encoded leaves Fingerprint empty but never fails the check.
func (g *Gate) Check(ctx context.Context, f analysis.Forest) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Verdict{}, fmt.Errorf("gate check: %w", err)
	}

	size := measure(f)
	if err := g.checkLimits(size); err != nil {
		g.metrics.RecordError(string(err.Code), "gate")
		g.logger.WithError(err).WarnContext(ctx, "tree refused", "nodes", size.nodes, "depth", size.depth)
		return Verdict{Outcome: OutcomeRefused, Nodes: size.nodes}, err
	}

	ctx, span := telemetry.StartValidationSpan(ctx, size.nodes, size.depth)
	defer span.End()

	start := time.Now()
	result, runErr := g.validator.Run(f)
	elapsed := time.Since(start)

	verdict := Verdict{Result: result, Nodes: size.nodes}

	if runErr != nil {
		err := errors.NewTreeMalformedError(runErr)
		verdict.Outcome = OutcomeFailed
		g.metrics.RecordValidation(string(OutcomeFailed), result, size.nodes, elapsed)
		g.metrics.RecordError(string(err.Code), "gate")
		telemetry.RecordError(span, err)
		g.logger.WithError(err).ErrorContext(ctx, "validation failed")
		return verdict, err
	}

	// Metadata is opaque, so a tree that cannot be fingerprinted is still
	// judged; it just has no fingerprint.
	fingerprint, err := analysis.Fingerprint(f)
	if err != nil {
		wrapped := errors.Wrap(errors.ErrCodeTreeMarshal, "failed to fingerprint tree", err).
			WithSuggestion("Metadata values must be JSON-encodable")
		g.metrics.RecordError(string(wrapped.Code), "gate")
		g.logger.WithError(wrapped).WarnContext(ctx, "tree not fingerprinted")
	}
	verdict.Fingerprint = fingerprint

	decision := g.decide(result)
	verdict.Passed = decision == nil
	verdict.Outcome = OutcomePassed
	if decision != nil {
		verdict.Outcome = OutcomeRejected
	}

	g.metrics.RecordValidation(string(verdict.Outcome), result, size.nodes, elapsed)

	logger := g.logger.With(
		"outcome", verdict.Outcome,
		"score", result.Score,
		"errors", result.Count(structure.KindError),
		"warnings", result.Count(structure.KindWarning),
		"nodes", size.nodes,
		"fingerprint", fingerprint,
		"duration", elapsed,
	)

	if decision != nil {
		g.metrics.RecordError(string(decision.Code), "gate")
		telemetry.RecordError(span, decision)
		logger.WithError(decision).InfoContext(ctx, "tree rejected")
		return verdict, decision
	}

	telemetry.RecordSuccess(span, telemetry.ResultAttributes(result)...)
	logger.InfoContext(ctx, "tree passed")
	return verdict, nil
}

// decide applies the policy in order of severity: errors, then score,
// then warnings.
func (g *Gate) decide(r structure.Result) *errors.Error {
	if !r.IsValid {
		return errors.NewGateInvalidError(r.Count(structure.KindError))
	}
	if r.Score < g.policy.MinScore {
		return errors.NewGateLowScoreError(r.Score, g.policy.MinScore)
	}
	if g.policy.FailOnWarnings {
		if n := r.Count(structure.KindWarning); n > 0 {
			return errors.NewGateWarningsError(n)
		}
	}
	return nil
}

func (g *Gate) checkLimits(s treeSize) *errors.Error {
	if g.policy.MaxNodes > 0 && s.nodes > g.policy.MaxNodes {
		return errors.NewGateLimitError(errors.ErrCodeGateTooManyNodes, "node count", s.nodes, g.policy.MaxNodes)
	}
	if g.policy.MaxDepth > 0 && s.depth > g.policy.MaxDepth {
		return errors.NewGateLimitError(errors.ErrCodeGateTooDeep, "depth", s.depth, g.policy.MaxDepth)
	}
	return nil
}

type treeSize struct {
	nodes int
	depth int
}

// measure sizes the forest without trusting its shape: each node pointer is
// counted once, so self-containing inputs terminate and are left for the
// engine to reject.
func measure(f analysis.Forest) treeSize {
	var s treeSize
	seen := make(map[*analysis.Node]bool)

	var visit func(n *analysis.Node, depth int)
	visit = func(n *analysis.Node, depth int) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		s.nodes++
		s.depth = max(s.depth, depth)
		for _, child := range n.Children {
			visit(child, depth+1)
		}
	}

	for _, root := range f {
		visit(root, 0)
	}
	return s
}
