package matching

import (
	"context"
	"fmt"
)

// Neutral and floor scores used when one side of a comparison is missing.
const (
	scoreNeutral          = 70.0
	scoreCandidateUnknown = 50.0
	scoreNoHistory        = 30.0
)

// YearsResult is the outcome of the experience-years sub-scorer.
type YearsResult struct {
	CandidateYears *float64 `json:"candidate_years"`
	RequiredYears  *float64 `json:"required_years"`
	Score          float64  `json:"score"`
	Note           string   `json:"note"`
}

// ScoreExperienceYears scores candidate experience years against the job
// requirement. The ratio score is deliberately uncapped: a candidate with
// double the required years scores 200. Downstream consumers treat values
// above 100 as an over-qualification signal.
func (e *Engine) ScoreExperienceYears(candidateYears, requiredYears *float64) *YearsResult {
	result := &YearsResult{CandidateYears: candidateYears, RequiredYears: requiredYears}

	switch {
	case requiredYears == nil:
		result.Score = scoreNeutral
		result.Note = "Job years requirement not specified."
	case candidateYears == nil:
		result.Score = scoreCandidateUnknown
		result.Note = "Candidate years not specified."
	case *requiredYears <= 0:
		result.Score = scoreNeutral
		result.Note = "Non-positive required years treated as unspecified."
	default:
		ratio := *candidateYears / *requiredYears
		result.Score = ratio * 100
		result.Note = fmt.Sprintf("Candidate/required ratio=%.2f.", ratio)
	}

	return result
}

// KindResult is the outcome of the experience-kind sub-scorer.
type KindResult struct {
	RequiredKind      string  `json:"ad_required_kind"`
	BestCandidateText string  `json:"candidate_matching_text"`
	Score             float64 `json:"score"`
	Similarity        float64 `json:"similarity"`
}

// ScoreExperienceKind evaluates the kind of experience required by the job
// against the candidate's experience descriptions.
func (e *Engine) ScoreExperienceKind(ctx context.Context, requiredKind string, candidateTexts []string) (*KindResult, error) {
	if Normalize(requiredKind) == "" {
		return &KindResult{
			RequiredKind:      "",
			BestCandidateText: firstOrEmpty(candidateTexts),
			Score:             scoreNeutral,
		}, nil
	}
	if len(candidateTexts) == 0 {
		return &KindResult{RequiredKind: requiredKind, Score: scoreNoHistory}, nil
	}

	reqNorm := Normalize(requiredKind)
	candNorm := normalizeAll(candidateTexts)

	if indexOf(candNorm, reqNorm) >= 0 {
		return &KindResult{
			RequiredKind:      requiredKind,
			BestCandidateText: requiredKind,
			Score:             100,
			Similarity:        1.0,
		}, nil
	}

	idx, sim, err := e.sim.BestMatch(ctx, reqNorm, candNorm)
	if err != nil {
		return nil, fmt.Errorf("experience kind similarity failed: %w", err)
	}

	score := sim * 100
	if sim >= e.thresholds.ExperienceKindMatch {
		score = 100
	}

	return &KindResult{
		RequiredKind:      requiredKind,
		BestCandidateText: candidateTexts[idx],
		Score:             score,
		Similarity:        sim,
	}, nil
}

// CombinedExperience is the deterministic fusion of the two sub-scores.
type CombinedExperience struct {
	YearsScore    float64 `json:"years_score"`
	KindScore     float64 `json:"kind_score"`
	CombinedScore float64 `json:"combined_score"`
}

// CombineExperienceScores fuses years and kind scores with the configured
// weights, rounded to two decimals.
func (e *Engine) CombineExperienceScores(yearsScore, kindScore float64) *CombinedExperience {
	combined := yearsScore*e.weights.ExperienceYears + kindScore*e.weights.ExperienceKind
	return &CombinedExperience{
		YearsScore:    yearsScore,
		KindScore:     kindScore,
		CombinedScore: round2(combined),
	}
}

// firstOrEmpty is the evidence anchor used when a requirement is
// unspecified: the literal first candidate item. Arbitrary, kept for
// compatibility; isolated here so the policy can be revisited in one place.
func firstOrEmpty(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
