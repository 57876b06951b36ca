package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/prompts"
	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// ParseJob extracts a structured job profile from a job description. The
// returned document carries the supplied job ID regardless of what the
// model emitted, and every item list is guaranteed to have an evidence
// list of equal length.
func (e *Extractor) ParseJob(ctx context.Context, jobText, jobID string) (*types.ParsedJob, error) {
	user := prompts.Format(prompts.MustGet(prompts.ExtractionFile, "parse-job"), map[string]string{
		"JobID":   jobID,
		"JobText": jobText,
	})

	result, err := e.client.RunStructured(ctx, &llm.StructuredRequest{
		System:           prompts.MustGet(prompts.ExtractionFile, "job-parser-system"),
		User:             user,
		Schema:           schemas.MustLoad(schemas.JobSchemaFile),
		Tools:            e.tools,
		Tier:             e.llmCfg.TierFor(llm.RoleJobParser),
		TransportRetries: e.llmCfg.TransportRetries,
		SchemaRetries:    e.llmCfg.SchemaRetries,
	})
	if err != nil {
		return nil, &ParseError{Document: "job", Cause: err}
	}

	var job types.ParsedJob
	if err := json.Unmarshal([]byte(result.JSON), &job); err != nil {
		return nil, &ParseError{Document: "job", Cause: fmt.Errorf("failed to decode output: %w", err)}
	}
	if err := validate.Struct(&job); err != nil {
		return nil, &ParseError{Document: "job", Cause: err}
	}
	if err := checkEvidenceCardinality(&job); err != nil {
		return nil, &ParseError{Document: "job", Cause: err}
	}

	job.JobID = jobID
	if job.Description == "" {
		job.Description = jobText
	}
	return &job, nil
}

// checkEvidenceCardinality verifies each item list has an evidence list of
// the same length.
func checkEvidenceCardinality(job *types.ParsedJob) error {
	pairs := []struct {
		field    string
		items    int
		evidence int
	}{
		{"role_title", len(job.RoleTitle), len(job.RoleTitleEvidence)},
		{"seniority", len(job.Seniority), len(job.SeniorityEvidence)},
		{"industry", len(job.Industry), len(job.IndustryEvidence)},
		{"required_skills", len(job.RequiredSkills), len(job.RequiredSkillsEvidence)},
		{"preferred_skills", len(job.PreferredSkills), len(job.PreferredSkillsEvidence)},
		{"other_qualifications", len(job.OtherQualifications), len(job.OtherQualificationsEvidence)},
		{"responsibilities", len(job.Responsibilities), len(job.ResponsibilitiesEvidence)},
	}
	for _, p := range pairs {
		if p.items != p.evidence {
			return &CardinalityError{Field: p.field, Items: p.items, Evidence: p.evidence}
		}
	}
	return nil
}
