package matching

import (
	"context"

	"github.com/jonathan/candidate-matcher/internal/config"
)

// SimilarityMatcher is the embedding boundary the engine depends on.
// *semantic.Matcher satisfies it; tests inject fakes.
type SimilarityMatcher interface {
	BestMatch(ctx context.Context, query string, candidates []string) (int, float64, error)
}

// Engine bundles the deterministic scorers with their thresholds, weights
// and similarity provider. An Engine is stateless between calls and safe
// for concurrent use if its SimilarityMatcher is.
type Engine struct {
	sim        SimilarityMatcher
	thresholds config.Thresholds
	weights    config.Weights
}

// NewEngine creates a scoring engine.
func NewEngine(sim SimilarityMatcher, cfg *config.Config) *Engine {
	return &Engine{
		sim:        sim,
		thresholds: cfg.Thresholds,
		weights:    cfg.Weights,
	}
}
