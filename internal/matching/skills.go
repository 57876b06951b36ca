package matching

import (
	"context"
	"fmt"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// SkillEvaluation is the result of classifying one job skill against the
// candidate's full skill list.
type SkillEvaluation struct {
	JobSkill           string  `json:"job_skill"`
	BestCandidateSkill string  `json:"best_candidate_skill"`
	Classification     string  `json:"classification"`
	Similarity         float64 `json:"similarity"`
}

// EvaluateSkill classifies a single job skill against all candidate skills
// using lexical then semantic similarity. An exact match after
// normalization wins outright with similarity 1.0, regardless of what the
// embedding provider would report. Otherwise the best semantic candidate is
// selected (first occurrence wins ties) and thresholded:
// sim >= match threshold -> match, strictly between the transferable floor
// and the match threshold -> transferable, else missing with the reported
// similarity floored to 0.
func (e *Engine) EvaluateSkill(ctx context.Context, jobSkill string, candidateSkills []string) (*SkillEvaluation, error) {
	if len(candidateSkills) == 0 {
		return &SkillEvaluation{
			JobSkill:       jobSkill,
			Classification: types.SkillResultMissing,
			Similarity:     0,
		}, nil
	}

	jobNorm := Normalize(jobSkill)
	candNorm := normalizeAll(candidateSkills)

	if indexOf(candNorm, jobNorm) >= 0 {
		return &SkillEvaluation{
			JobSkill:           jobSkill,
			BestCandidateSkill: jobSkill,
			Classification:     types.SkillResultMatch,
			Similarity:         1.0,
		}, nil
	}

	idx, sim, err := e.sim.BestMatch(ctx, jobNorm, candNorm)
	if err != nil {
		return nil, fmt.Errorf("skill similarity failed for %q: %w", jobSkill, err)
	}

	result := &SkillEvaluation{
		JobSkill:           jobSkill,
		BestCandidateSkill: candidateSkills[idx],
	}

	switch {
	case sim >= e.thresholds.SemanticMatch:
		result.Classification = types.SkillResultMatch
		result.Similarity = sim
	case sim > e.thresholds.SkillTransferableMin:
		result.Classification = types.SkillResultTransferable
		result.Similarity = sim
	default:
		// Missing always reports zero, not the true similarity.
		result.Classification = types.SkillResultMissing
		result.Similarity = 0
	}

	return result, nil
}
