// Package report assembles the final analysis report. Pure composition:
// no IO, no model calls.
package report

import (
	"time"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Assemble builds the analysis report from the pipeline's stage outputs.
// The job ID on the report is taken from the parsed job.
func Assemble(details *types.CandidateDetail, summary *types.SummaryGenerated, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob, generatedAt time.Time) *types.AnalysisReport {
	return &types.AnalysisReport{
		CandidateDetails: *details,
		JobID:            job.JobID,
		Summary:          *summary,
		FitAnalysis:      *fit,
		Resume:           *resume,
		Job:              *job,
		GeneratedAt:      generatedAt,
	}
}
