package types

import "time"

// SummaryGenerated is the natural-language fit summary for a hiring manager.
type SummaryGenerated struct {
	CandidateID string `json:"candidate_id"`
	JobID       string `json:"job_id"`
	Summary     string `json:"summary"`
}

// AnalysisReport is the top-level aggregate produced at pipeline completion.
// The Summary field is the only field replaced in place during the
// human-feedback loop; everything else is frozen after assembly.
type AnalysisReport struct {
	CandidateDetails CandidateDetail  `json:"candidate_details"`
	JobID            string           `json:"job_id"`
	Summary          SummaryGenerated `json:"summary"`
	FitAnalysis      FitAnalysis      `json:"fit_analysis"`
	Resume           ParsedResume     `json:"resume"`
	Job              ParsedJob        `json:"job"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// RedactionDegraded reports whether the report was produced on the
// redaction fallback path: no PII entities and an empty contact card.
func (r *AnalysisReport) RedactionDegraded() bool {
	return r.CandidateDetails.Name == "" &&
		r.CandidateDetails.Email == "" &&
		r.CandidateDetails.Phone == "" &&
		r.CandidateDetails.Location == "" &&
		len(r.CandidateDetails.URLs) == 0
}
