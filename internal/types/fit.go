package types

import "time"

// Skill match classifications.
const (
	SkillResultMatch        = "match"
	SkillResultTransferable = "transferable"
	SkillResultMissing      = "missing"
)

// Seniority statuses assigned by the reasoning step.
const (
	SeniorityUnderQualified = "under-qualified"
	SeniorityQualified      = "qualified"
	SeniorityOverQualified  = "over-qualified"
)

// SkillMatch classifies one job skill against the candidate's skill list.
type SkillMatch struct {
	Skill          string    `json:"skill"`
	Result         string    `json:"result" validate:"oneof=match transferable missing"`
	Similarity     float64   `json:"similarity"`
	ResumeEvidence *Evidence `json:"resume_evidence,omitempty"`
	JobEvidence    *Evidence `json:"job_evidence,omitempty"`
}

// ExperienceAssessment combines the years and kind sub-scores.
// Scores above 100 are possible: the years ratio is deliberately uncapped
// so significant over-qualification stays visible downstream.
type ExperienceAssessment struct {
	YearsScore    float64   `json:"years_score"`
	KindScore     float64   `json:"kind_score"`
	CombinedScore float64   `json:"experience_match_score"`
	Confidence    float64   `json:"llm_confidence" validate:"gte=0,lte=100"`
	Evidence      *Evidence `json:"evidence,omitempty"`
}

// QualificationsAssessment covers education and other qualifications.
type QualificationsAssessment struct {
	EducationScore           float64   `json:"education_match_score"`
	OtherQualificationsScore float64   `json:"other_qualifications_score"`
	Confidence               float64   `json:"llm_confidence" validate:"gte=0,lte=100"`
	Evidence                 *Evidence `json:"evidence,omitempty"`
}

// SeniorityAssessment records the tri-state seniority status. The status is
// produced by the reasoning step, not by a deterministic scorer.
type SeniorityAssessment struct {
	Status     string    `json:"status" validate:"oneof=under-qualified qualified over-qualified"`
	Confidence float64   `json:"llm_confidence" validate:"gte=0,lte=100"`
	Evidence   *Evidence `json:"evidence,omitempty"`
	Note       string    `json:"note,omitempty"`
}

// FitAnalysis aggregates all scored dimensions for one candidate-job pair.
// Immutable after creation.
type FitAnalysis struct {
	CandidateID    string  `json:"candidate_id"`
	JobID          string  `json:"job_id"`
	OverallFitScore float64 `json:"overall_fit_score"`
	KeyStrengths   []string `json:"key_strengths"`

	Recommendation           string  `json:"recommendation"`
	RecommendationConfidence float64 `json:"recommendation_confidence" validate:"gte=0,lte=100"`

	SkillMatchScore      float64 `json:"skill_match_score"`
	ExperienceMatchScore float64 `json:"experience_match_score"`
	EducationMatchScore  float64 `json:"education_match_score"`

	SkillMatches       []SkillMatch             `json:"skill_matches"`
	ExperienceMatch    ExperienceAssessment     `json:"experience_match"`
	QualificationsMatch QualificationsAssessment `json:"qualifications_match"`
	SeniorityMatch     SeniorityAssessment      `json:"seniority_match"`

	AnalysedAt time.Time `json:"analysed_at"`
}
