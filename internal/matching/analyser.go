package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/prompts"
	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Analyser runs the fit-analysis conversation: the model reasons over a
// parsed resume and job, calling the scoring tools for every numeric
// score, and returns a complete FitAnalysis.
type Analyser struct {
	client llm.Client
	llmCfg *llm.Config
	tools  llm.ToolSet
	now    func() time.Time
}

// NewAnalyser creates a fit analyser. The tool set must expose the
// fit-scoring tools.
func NewAnalyser(client llm.Client, llmCfg *llm.Config, tools llm.ToolSet) *Analyser {
	if llmCfg == nil {
		llmCfg = llm.DefaultConfig()
	}
	return &Analyser{client: client, llmCfg: llmCfg, tools: tools, now: time.Now}
}

// AnalyseFit scores the candidate against the job. IDs on the result are
// taken from the inputs, not from the model.
func (a *Analyser) AnalyseFit(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) (*types.FitAnalysis, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job: %w", err)
	}

	user := prompts.Format(prompts.MustGet(prompts.MatchingFile, "analyse-fit"), map[string]string{
		"Resume": string(resumeJSON),
		"Job":    string(jobJSON),
	})

	result, err := a.client.RunStructured(ctx, &llm.StructuredRequest{
		System:           prompts.MustGet(prompts.MatchingFile, "fit-analyser-system"),
		User:             user,
		Schema:           schemas.MustLoad(schemas.FitSchemaFile),
		Tools:            a.tools,
		Tier:             a.llmCfg.TierFor(llm.RoleMatcher),
		TransportRetries: a.llmCfg.TransportRetries,
		SchemaRetries:    a.llmCfg.SchemaRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("fit analysis failed: %w", err)
	}

	var fit types.FitAnalysis
	if err := json.Unmarshal([]byte(result.JSON), &fit); err != nil {
		return nil, fmt.Errorf("failed to decode fit analysis: %w", err)
	}

	fit.CandidateID = resume.CandidateID
	fit.JobID = job.JobID
	fit.AnalysedAt = a.now()
	return &fit, nil
}
