package matching

// ComputeOverallFitScore combines the five dimension scores into the
// overall fit score using the configured weights, rounded to two decimals.
// The result is not clamped: uncapped upstream scores (the years ratio)
// can push the overall score above 100, which is a preserved
// characteristic, not an error.
func (e *Engine) ComputeOverallFitScore(requiredSkillScore, preferredSkillScore, experienceScore, qualificationScore, seniorityScore float64) float64 {
	overall := requiredSkillScore*e.weights.RequiredSkills +
		preferredSkillScore*e.weights.PreferredSkills +
		experienceScore*e.weights.Experience +
		qualificationScore*e.weights.Qualification +
		seniorityScore*e.weights.Seniority
	return round2(overall)
}
