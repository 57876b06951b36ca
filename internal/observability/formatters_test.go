package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-matcher/internal/types"
)

func TestPrintRedaction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	redacted := &types.RedactedResume{
		ID: "cand_1",
		PIIEntities: []types.PIIEntity{
			{EntityType: types.PIITypeName, Text: "Jane Doe", Confidence: 95},
			{EntityType: types.PIITypeEmail, Text: "jane@example.com", Confidence: 100},
		},
	}
	details := &types.CandidateDetail{ID: "cand_1", Name: "Jane Doe", Email: "jane@example.com", URLs: []string{"github.com/janedoe"}}

	p.PrintRedaction(redacted, details)
	output := buf.String()

	assert.Contains(t, output, "PII REDACTION")
	assert.Contains(t, output, "Entities detected: 2")
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "github.com/janedoe")
}

func TestPrintRedaction_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRedaction(nil, nil)

	assert.Empty(t, buf.String())
}

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	years := 6.5
	resume := &types.ParsedResume{
		CandidateID:          "cand_1",
		Skills:               []string{"Go", "PostgreSQL"},
		TotalExperienceYears: &years,
		Experience: []types.Experience{
			{Company: "Acme", Title: "Backend Engineer"},
		},
	}

	p.PrintResume(resume)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "cand_1")
	assert.Contains(t, output, "6.5")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Backend Engineer, Acme")
}

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	years := 5.0
	job := &types.ParsedJob{
		JobID:                   "job_1",
		Company:                 "Initech",
		RoleTitle:               []string{"Senior Backend Engineer"},
		RequiredSkills:          []string{"Go", "Kubernetes"},
		PreferredSkills:         []string{"Rust"},
		RequiredExperienceYears: &years,
	}

	p.PrintJob(job)
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB")
	assert.Contains(t, output, "Senior Backend Engineer")
	assert.Contains(t, output, "Initech")
	assert.Contains(t, output, "5+")
	assert.Contains(t, output, "Rust")
}

func TestPrintFitAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	fit := &types.FitAnalysis{
		OverallFitScore:          81.25,
		Recommendation:           "Accept",
		RecommendationConfidence: 90,
		SkillMatchScore:          85,
		SkillMatches: []types.SkillMatch{
			{Skill: "Go", Result: types.SkillResultMatch, Similarity: 1.0},
			{Skill: "Rust", Result: types.SkillResultMissing, Similarity: 0},
		},
		SeniorityMatch: types.SeniorityAssessment{Status: types.SeniorityQualified},
		KeyStrengths:   []string{"Deep Go expertise"},
	}

	p.PrintFitAnalysis(fit)
	output := buf.String()

	assert.Contains(t, output, "FIT ANALYSIS")
	assert.Contains(t, output, "81.25")
	assert.Contains(t, output, "Accept")
	assert.Contains(t, output, "missing")
	assert.Contains(t, output, "Deep Go expertise")
}

func TestPrintReport_DegradedNote(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := &types.AnalysisReport{
		CandidateDetails: types.CandidateDetail{ID: "cand_1"},
		JobID:            "job_1",
		Summary:          types.SummaryGenerated{Summary: "Solid candidate."},
		FitAnalysis:      types.FitAnalysis{OverallFitScore: 70, Recommendation: "Consider"},
	}

	p.PrintReport(r)
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS REPORT")
	assert.Contains(t, output, "Solid candidate.")
	assert.Contains(t, output, "degraded redaction")
}
