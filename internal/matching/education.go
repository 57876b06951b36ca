package matching

import (
	"context"
	"fmt"
)

// Education/qualification tier scores.
const (
	scoreFullMatch    = 100.0
	scorePartialMatch = 70.0
	scoreNoMatch      = 0.0
)

// EducationResult is the outcome of scoring one required education or
// qualification item against the candidate's full list for that category.
type EducationResult struct {
	Required           string  `json:"required"`
	Category           string  `json:"category"`
	BestCandidateMatch string  `json:"best_candidate_match"`
	Score              float64 `json:"score"`
	Note               string  `json:"note"`
}

// ScoreEducationOrQualification scores exactly one requirement against the
// candidate's items of that category. Category is a free-text indicator
// ("education" or "qualification") carried through for the reviewer. The
// caller invokes this once per requirement item and aggregates.
func (e *Engine) ScoreEducationOrQualification(ctx context.Context, required string, candidateItems []string, category string) (*EducationResult, error) {
	if Normalize(required) == "" {
		return &EducationResult{
			Category:           category,
			BestCandidateMatch: firstOrEmpty(candidateItems),
			Score:              scorePartialMatch,
			Note:               fmt.Sprintf("Job does not specify %s requirement.", category),
		}, nil
	}
	if len(candidateItems) == 0 {
		return &EducationResult{
			Required: required,
			Category: category,
			Score:    scoreCandidateUnknown,
			Note:     fmt.Sprintf("Candidate %s not specified.", category),
		}, nil
	}

	reqNorm := Normalize(required)
	candNorm := normalizeAll(candidateItems)

	if indexOf(candNorm, reqNorm) >= 0 {
		return &EducationResult{
			Required:           required,
			Category:           category,
			BestCandidateMatch: required,
			Score:              scoreFullMatch,
			Note:               "Candidate meets requirement (exact match).",
		}, nil
	}

	idx, sim, err := e.sim.BestMatch(ctx, reqNorm, candNorm)
	if err != nil {
		return nil, fmt.Errorf("%s similarity failed: %w", category, err)
	}

	result := &EducationResult{
		Required:           required,
		Category:           category,
		BestCandidateMatch: candidateItems[idx],
	}

	switch {
	case sim >= e.thresholds.SemanticMatch:
		result.Score = scoreFullMatch
		result.Note = "Candidate meets requirement."
	case sim > e.thresholds.EducationPartialMin:
		result.Score = scorePartialMatch
		result.Note = "Candidate partially meets requirement."
	default:
		result.Score = scoreNoMatch
		result.Note = "Candidate does not meet requirement."
	}

	return result, nil
}
