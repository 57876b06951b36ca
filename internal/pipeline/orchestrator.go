// Package pipeline orchestrates the candidate-job analysis: load both
// documents, redact PII, parse resume and job, score the fit, summarise,
// and assemble the report. A summary can then be regenerated against
// recruiter feedback without re-running the earlier stages.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/pii"
	"github.com/jonathan/candidate-matcher/internal/report"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// ProgressEvent reports the completion of a pipeline stage.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ProgressCallback is invoked after every successful stage.
type ProgressCallback func(event ProgressEvent)

// DocumentLoader resolves a source (path or URL) into clean text.
type DocumentLoader func(ctx context.Context, source string) (string, error)

// Redactor detects and removes PII from resume text.
type Redactor interface {
	ProcessResume(ctx context.Context, text, candidateID string) (*types.RedactedResume, *types.CandidateDetail, error)
}

// ResumeParser extracts a structured profile from redacted resume text.
type ResumeParser interface {
	ParseResume(ctx context.Context, redactedText, candidateID string) (*types.ParsedResume, error)
}

// JobParser extracts a structured profile from a job description.
type JobParser interface {
	ParseJob(ctx context.Context, jobText, jobID string) (*types.ParsedJob, error)
}

// FitAnalyser scores a parsed resume against a parsed job.
type FitAnalyser interface {
	AnalyseFit(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) (*types.FitAnalysis, error)
}

// Summariser generates and revises hiring summaries.
type Summariser interface {
	Generate(ctx context.Context, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob) (*types.SummaryGenerated, []*genai.Content, error)
	Regenerate(ctx context.Context, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob, feedback string, history []*genai.Content) (*types.SummaryGenerated, []*genai.Content, error)
}

// Orchestrator runs the analysis pipeline. It is stateful between Analyse
// and RegenerateSummary (it keeps the summary conversation history and the
// parsed documents) and is not safe for concurrent use.
type Orchestrator struct {
	loader     DocumentLoader
	redactor   Redactor
	resumes    ResumeParser
	jobs       JobParser
	matcher    FitAnalyser
	summariser Summariser

	now   func() time.Time
	newID func() string

	// State carried from Analyse into RegenerateSummary.
	history    []*genai.Content
	lastResume *types.ParsedResume
	lastJob    *types.ParsedJob
	lastFit    *types.FitAnalysis
}

// NewOrchestrator wires the pipeline collaborators.
func NewOrchestrator(loader DocumentLoader, redactor Redactor, resumes ResumeParser, jobs JobParser, matcher FitAnalyser, summariser Summariser) *Orchestrator {
	return &Orchestrator{
		loader:     loader,
		redactor:   redactor,
		resumes:    resumes,
		jobs:       jobs,
		matcher:    matcher,
		summariser: summariser,
		now:        time.Now,
		newID:      func() string { return strings.Split(uuid.NewString(), "-")[0] },
	}
}

// Analyse runs the full pipeline for one candidate-job pair. Empty IDs are
// assigned by the orchestrator. Every stage failure aborts the run except
// redaction, which falls back to a degraded identity redaction with an
// empty contact card.
func (o *Orchestrator) Analyse(ctx context.Context, resumeSource, jobSource, candidateID, jobID string, onProgress ProgressCallback) (*types.AnalysisReport, error) {
	if candidateID == "" {
		candidateID = "cand_" + o.newID()
	}
	if jobID == "" {
		jobID = "job_" + o.newID()
	}

	resumeText, err := o.loader(ctx, resumeSource)
	if err != nil {
		return nil, &LoadError{Stage: StageLoadResume, Source: resumeSource, Cause: err}
	}
	emit(onProgress, StageLoadResume, fmt.Sprintf("loaded resume from %s (%d chars)", resumeSource, len(resumeText)))

	jobText, err := o.loader(ctx, jobSource)
	if err != nil {
		return nil, &LoadError{Stage: StageLoadJob, Source: jobSource, Cause: err}
	}
	emit(onProgress, StageLoadJob, fmt.Sprintf("loaded job description from %s (%d chars)", jobSource, len(jobText)))

	redacted, details, err := o.redactor.ProcessResume(ctx, resumeText, candidateID)
	if err != nil {
		// The only recoverable stage: continue with the original text and
		// an empty contact card rather than losing the run.
		redacted, details = pii.DegradedRedaction(resumeText, candidateID)
		emit(onProgress, StageRedact, fmt.Sprintf("redaction degraded: %v", &RedactionError{Cause: err}))
	} else {
		emit(onProgress, StageRedact, fmt.Sprintf("redacted %d PII entities", len(redacted.PIIEntities)))
	}

	resume, err := o.resumes.ParseResume(ctx, redacted.RedactedText, candidateID)
	if err != nil {
		return nil, &ExtractionError{Stage: StageParseResume, Cause: err}
	}
	emit(onProgress, StageParseResume, fmt.Sprintf("parsed resume: %d skills, %d experience entries", len(resume.Skills), len(resume.Experience)))

	job, err := o.jobs.ParseJob(ctx, jobText, jobID)
	if err != nil {
		return nil, &ExtractionError{Stage: StageParseJob, Cause: err}
	}
	emit(onProgress, StageParseJob, fmt.Sprintf("parsed job: %d required skills", len(job.RequiredSkills)))

	fit, err := o.matcher.AnalyseFit(ctx, resume, job)
	if err != nil {
		return nil, &MatchingError{Cause: err}
	}
	emit(onProgress, StageMatch, fmt.Sprintf("fit analysed: overall %.2f, recommendation %s", fit.OverallFitScore, fit.Recommendation))

	summary, history, err := o.summariser.Generate(ctx, fit, resume, job)
	if err != nil {
		return nil, &SummaryError{Cause: err}
	}
	emit(onProgress, StageSummarise, "summary generated")

	o.history = history
	o.lastResume = resume
	o.lastJob = job
	o.lastFit = fit

	result := report.Assemble(details, summary, fit, resume, job, o.now())
	emit(onProgress, StageReport, "report assembled")
	return result, nil
}

// RegenerateSummary revises the report's summary against recruiter
// feedback, continuing the conversation started by Analyse. The new
// summary is returned and also replaces the report's Summary field;
// nothing else on the report changes.
func (o *Orchestrator) RegenerateSummary(ctx context.Context, r *types.AnalysisReport, feedback string) (*types.SummaryGenerated, error) {
	if o.lastFit == nil {
		return nil, fmt.Errorf("no prior analysis to regenerate from")
	}

	summary, history, err := o.summariser.Regenerate(ctx, o.lastFit, o.lastResume, o.lastJob, feedback, o.history)
	if err != nil {
		return nil, &SummaryError{Cause: err}
	}

	o.history = history
	r.Summary = *summary
	return summary, nil
}

func emit(cb ProgressCallback, stage, message string) {
	if cb != nil {
		cb(ProgressEvent{Stage: stage, Message: message})
	}
}
