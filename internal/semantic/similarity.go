// Package semantic provides the embedding-based similarity boundary used by
// the deterministic matchers. The Encoder is an external capability; the
// similarity math and best-match selection are core and deterministic.
package semantic

import (
	"context"
	"fmt"
	"math"
)

// Encoder converts texts into embedding vectors. Implementations must be
// safe for concurrent use; the process holds a single Encoder shared across
// analysis sessions.
type Encoder interface {
	// Encode returns one vector per input text, in input order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Matcher computes similarities between a query text and candidate texts
// using an injected Encoder.
type Matcher struct {
	encoder Encoder
}

// NewMatcher creates a Matcher backed by the given encoder.
func NewMatcher(encoder Encoder) *Matcher {
	return &Matcher{encoder: encoder}
}

// Similarities returns the cosine similarity of query against each
// candidate, in candidate order.
func (m *Matcher) Similarities(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate texts to compare against")
	}

	vectors, err := m.encoder.Encode(ctx, append([]string{query}, candidates...))
	if err != nil {
		return nil, fmt.Errorf("encoding failed: %w", err)
	}
	if len(vectors) != len(candidates)+1 {
		return nil, fmt.Errorf("encoder returned %d vectors for %d texts", len(vectors), len(candidates)+1)
	}

	queryVec := vectors[0]
	sims := make([]float64, len(candidates))
	for i, vec := range vectors[1:] {
		sims[i] = CosineSimilarity(queryVec, vec)
	}
	return sims, nil
}

// BestMatch returns the index and similarity of the single best candidate.
// Ties break toward the first occurrence (stable argmax), so results are
// reproducible for equal-similarity candidates.
func (m *Matcher) BestMatch(ctx context.Context, query string, candidates []string) (int, float64, error) {
	sims, err := m.Similarities(ctx, query, candidates)
	if err != nil {
		return -1, 0, err
	}
	idx := ArgMax(sims)
	return idx, sims[idx], nil
}

// ArgMax returns the index of the first maximum value. Assumes a non-empty
// slice.
func ArgMax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// CosineSimilarity computes the cosine similarity of two vectors. Returns 0
// for zero-magnitude or mismatched-length inputs.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
