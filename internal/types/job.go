package types

// ParsedJob is the structured extraction result for a job description.
// JobID is assigned by the orchestrator after extraction. Every list field
// has an evidence list of equal cardinality; the extraction layer enforces
// this invariant before the job is handed downstream.
type ParsedJob struct {
	JobID   string `json:"job_id"`
	Company string `json:"company,omitempty"`

	RoleTitle         []string   `json:"role_title"`
	RoleTitleEvidence []Evidence `json:"role_title_evidence"`
	Seniority         []string   `json:"seniority"`
	SeniorityEvidence []Evidence `json:"seniority_evidence"`
	Industry          []string   `json:"industry"`
	IndustryEvidence  []Evidence `json:"industry_evidence"`

	RequiredSkills          []string   `json:"required_skills"`
	RequiredSkillsEvidence  []Evidence `json:"required_skills_evidence"`
	PreferredSkills         []string   `json:"preferred_skills"`
	PreferredSkillsEvidence []Evidence `json:"preferred_skills_evidence"`

	RequiredExperienceYears         *float64  `json:"required_experience_years,omitempty"`
	RequiredExperienceYearsEvidence *Evidence `json:"required_experience_years_evidence,omitempty"`
	RequiredExperienceKind          string    `json:"required_experience_kind,omitempty"`
	RequiredExperienceKindEvidence  *Evidence `json:"required_experience_kind_evidence,omitempty"`

	EducationRequirement         string     `json:"education_requirement,omitempty"`
	EducationRequirementEvidence *Evidence  `json:"education_requirement_evidence,omitempty"`
	OtherQualifications          []string   `json:"other_qualifications"`
	OtherQualificationsEvidence  []Evidence `json:"other_qualifications_evidence"`

	Responsibilities         []string   `json:"responsibilities"`
	ResponsibilitiesEvidence []Evidence `json:"responsibilities_evidence"`

	ConfidenceOverall float64 `json:"llm_confidence_overall" validate:"gte=0,lte=100"`
	Description       string  `json:"description"`
}
