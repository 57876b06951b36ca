package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/types"
)

type fakeRedactor struct {
	err error
}

func (f *fakeRedactor) ProcessResume(ctx context.Context, text, candidateID string) (*types.RedactedResume, *types.CandidateDetail, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return &types.RedactedResume{
			ID:           candidateID,
			OriginalText: text,
			RedactedText: "[NAME] redacted resume",
			PIIEntities: []types.PIIEntity{
				{EntityType: types.PIITypeName, Text: "Jane Doe", Confidence: 95},
			},
		}, &types.CandidateDetail{ID: candidateID, Name: "Jane Doe", Email: "jane@example.com"}, nil
}

type fakeResumeParser struct {
	err    error
	gotIDs []string
}

func (f *fakeResumeParser) ParseResume(ctx context.Context, redactedText, candidateID string) (*types.ParsedResume, error) {
	f.gotIDs = append(f.gotIDs, candidateID)
	if f.err != nil {
		return nil, f.err
	}
	return &types.ParsedResume{CandidateID: candidateID, Skills: []string{"Go"}}, nil
}

type fakeJobParser struct {
	err error
}

func (f *fakeJobParser) ParseJob(ctx context.Context, jobText, jobID string) (*types.ParsedJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.ParsedJob{JobID: jobID, RequiredSkills: []string{"Go"}}, nil
}

type fakeAnalyser struct {
	err error
}

func (f *fakeAnalyser) AnalyseFit(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) (*types.FitAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.FitAnalysis{
		CandidateID:     resume.CandidateID,
		JobID:           job.JobID,
		OverallFitScore: 77.5,
		Recommendation:  "Consider",
	}, nil
}

type fakeSummariser struct {
	genErr      error
	regenErr    error
	regenCalls  int
	gotFeedback string
	gotHistory  []*genai.Content
}

func (f *fakeSummariser) Generate(ctx context.Context, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob) (*types.SummaryGenerated, []*genai.Content, error) {
	if f.genErr != nil {
		return nil, nil, f.genErr
	}
	history := []*genai.Content{{Role: "model", Parts: []genai.Part{genai.Text("first summary turn")}}}
	return &types.SummaryGenerated{CandidateID: resume.CandidateID, JobID: job.JobID, Summary: "Initial summary."}, history, nil
}

func (f *fakeSummariser) Regenerate(ctx context.Context, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob, feedback string, history []*genai.Content) (*types.SummaryGenerated, []*genai.Content, error) {
	f.regenCalls++
	f.gotFeedback = feedback
	f.gotHistory = history
	if f.regenErr != nil {
		return nil, nil, f.regenErr
	}
	newHistory := append(append([]*genai.Content{}, history...), &genai.Content{Role: "model", Parts: []genai.Part{genai.Text("revised")}})
	return &types.SummaryGenerated{CandidateID: resume.CandidateID, JobID: job.JobID, Summary: "Revised summary."}, newHistory, nil
}

func okLoader(ctx context.Context, source string) (string, error) {
	return "document text from " + source, nil
}

func newTestOrchestrator() (*Orchestrator, *fakeSummariser) {
	summariser := &fakeSummariser{}
	o := NewOrchestrator(okLoader, &fakeRedactor{}, &fakeResumeParser{}, &fakeJobParser{}, &fakeAnalyser{}, summariser)
	o.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	o.newID = func() string { return "fixed" }
	return o, summariser
}

func TestAnalyse_FullRun(t *testing.T) {
	o, _ := newTestOrchestrator()

	var events []ProgressEvent
	r, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "", "", func(e ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	// Orchestrator-assigned IDs flow everywhere
	assert.Equal(t, "cand_fixed", r.CandidateDetails.ID)
	assert.Equal(t, "job_fixed", r.JobID)
	assert.Equal(t, "cand_fixed", r.Resume.CandidateID)
	assert.Equal(t, "cand_fixed", r.FitAnalysis.CandidateID)
	assert.Equal(t, "Initial summary.", r.Summary.Summary)
	assert.Equal(t, "Jane Doe", r.CandidateDetails.Name)
	assert.False(t, r.RedactionDegraded())

	// One event per stage, in order
	stages := make([]string, 0, len(events))
	for _, e := range events {
		stages = append(stages, e.Stage)
	}
	assert.Equal(t, []string{
		StageLoadResume, StageLoadJob, StageRedact,
		StageParseResume, StageParseJob, StageMatch,
		StageSummarise, StageReport,
	}, stages)
}

func TestAnalyse_ProvidedIDsKept(t *testing.T) {
	o, _ := newTestOrchestrator()

	r, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "cand_custom", "job_custom", nil)
	require.NoError(t, err)

	assert.Equal(t, "cand_custom", r.CandidateDetails.ID)
	assert.Equal(t, "job_custom", r.JobID)
}

func TestAnalyse_LoadFailureAborts(t *testing.T) {
	o, _ := newTestOrchestrator()
	o.loader = func(ctx context.Context, source string) (string, error) {
		return "", errors.New("no such file")
	}

	_, err := o.Analyse(context.Background(), "missing.txt", "job.txt", "", "", nil)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, StageLoadResume, loadErr.Stage)
	assert.Equal(t, "missing.txt", loadErr.Source)
}

func TestAnalyse_RedactionFailureRecovers(t *testing.T) {
	summariser := &fakeSummariser{}
	o := NewOrchestrator(okLoader, &fakeRedactor{err: errors.New("classifier down")}, &fakeResumeParser{}, &fakeJobParser{}, &fakeAnalyser{}, summariser)
	o.newID = func() string { return "fixed" }

	var redactEvent ProgressEvent
	r, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "", "", func(e ProgressEvent) {
		if e.Stage == StageRedact {
			redactEvent = e
		}
	})

	// The run still completes
	require.NoError(t, err)
	assert.Equal(t, "Initial summary.", r.Summary.Summary)

	// With an empty contact card marking the degraded path
	assert.True(t, r.RedactionDegraded())
	assert.Contains(t, redactEvent.Message, "degraded")
}

func TestAnalyse_ExtractionFailureAborts(t *testing.T) {
	o, _ := newTestOrchestrator()
	o.resumes = &fakeResumeParser{err: errors.New("schema never satisfied")}

	_, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "", "", nil)
	require.Error(t, err)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, StageParseResume, extErr.Stage)
}

func TestAnalyse_MatchingFailureAborts(t *testing.T) {
	o, _ := newTestOrchestrator()
	o.matcher = &fakeAnalyser{err: errors.New("tool loop exceeded")}

	_, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "", "", nil)
	require.Error(t, err)

	var matchErr *MatchingError
	require.ErrorAs(t, err, &matchErr)
}

func TestAnalyse_SummaryFailureAborts(t *testing.T) {
	o, summariser := newTestOrchestrator()
	summariser.genErr = errors.New("model unavailable")

	_, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "", "", nil)
	require.Error(t, err)

	var sumErr *SummaryError
	require.ErrorAs(t, err, &sumErr)
}

func TestRegenerateSummary(t *testing.T) {
	o, summariser := newTestOrchestrator()

	r, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Initial summary.", r.Summary.Summary)

	revised, err := o.RegenerateSummary(context.Background(), r, "Candidate aced the interview.")
	require.NoError(t, err)

	// New summary returned and replaced in place; feedback and prior
	// history threaded through
	require.NotNil(t, revised)
	assert.Equal(t, "Revised summary.", revised.Summary)
	assert.Equal(t, *revised, r.Summary)
	assert.Equal(t, 1, summariser.regenCalls)
	assert.Equal(t, "Candidate aced the interview.", summariser.gotFeedback)
	require.Len(t, summariser.gotHistory, 1)

	// A second round sees the grown history
	_, err = o.RegenerateSummary(context.Background(), r, "Actually, reconsider.")
	require.NoError(t, err)
	assert.Len(t, summariser.gotHistory, 2)
}

func TestRegenerateSummary_WithoutPriorAnalysis(t *testing.T) {
	o, _ := newTestOrchestrator()

	_, err := o.RegenerateSummary(context.Background(), &types.AnalysisReport{}, "feedback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prior analysis")
}

func TestRegenerateSummary_FailureKeepsOldSummary(t *testing.T) {
	o, summariser := newTestOrchestrator()

	r, err := o.Analyse(context.Background(), "resume.txt", "job.txt", "", "", nil)
	require.NoError(t, err)

	summariser.regenErr = errors.New("model unavailable")
	_, err = o.RegenerateSummary(context.Background(), r, "feedback")
	require.Error(t, err)

	var sumErr *SummaryError
	require.ErrorAs(t, err, &sumErr)
	assert.Equal(t, "Initial summary.", r.Summary.Summary)
}
