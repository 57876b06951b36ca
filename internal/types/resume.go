package types

// Evidence is a verbatim text excerpt plus model confidence, justifying an
// extracted fact to a human reviewer. Immutable once created.
type Evidence struct {
	Text       string  `json:"evidence_text"`
	Confidence float64 `json:"llm_confidence" validate:"gte=0,lte=100"`
}

// Education represents one educational qualification entry.
type Education struct {
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree,omitempty"`
	FieldOfStudy   string   `json:"field_of_study,omitempty"`
	GraduationYear int      `json:"graduation_year,omitempty"`
	Evidence       Evidence `json:"evidence"`
}

// Experience represents one work experience entry.
type Experience struct {
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	DurationMonths   int      `json:"duration_months,omitempty"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Evidence         Evidence `json:"evidence"`
}

// ParsedResume is the structured extraction result for a redacted resume.
// CandidateID is assigned by the orchestrator after extraction; the
// extractor owns content, the orchestrator owns identity.
type ParsedResume struct {
	CandidateID             string              `json:"candidate_id"`
	Summary                 string              `json:"summary,omitempty"`
	Skills                  []string            `json:"skills"`
	SkillsEvidence          map[string]Evidence `json:"skills_evidence"`
	Education               []Education         `json:"education"`
	Experience              []Experience        `json:"experience"`
	Qualifications          []string            `json:"qualifications"`
	QualificationsEvidence  map[string]Evidence `json:"qualifications_evidence"`
	TotalExperienceYears    *float64            `json:"total_experience_years,omitempty"`
	TotalExperienceEvidence Evidence            `json:"total_experience_evidence"`
	ConfidenceOverall       float64             `json:"llm_confidence_overall" validate:"gte=0,lte=100"`
}

// ExperienceTexts returns the description of every experience entry,
// falling back to the title when the description is empty. Used as the
// candidate side of experience-kind matching.
func (r *ParsedResume) ExperienceTexts() []string {
	texts := make([]string, 0, len(r.Experience))
	for _, exp := range r.Experience {
		if exp.Description != "" {
			texts = append(texts, exp.Description)
		} else {
			texts = append(texts, exp.Title)
		}
	}
	return texts
}

// EducationTexts returns a flat text rendering of every education entry.
func (r *ParsedResume) EducationTexts() []string {
	texts := make([]string, 0, len(r.Education))
	for _, edu := range r.Education {
		text := edu.Institution
		if edu.Degree != "" {
			text = edu.Degree + ", " + text
		}
		if edu.FieldOfStudy != "" {
			text += " (" + edu.FieldOfStudy + ")"
		}
		texts = append(texts, text)
	}
	return texts
}
