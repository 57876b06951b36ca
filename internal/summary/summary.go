// Package summary generates the hiring-manager summary and revises it in
// response to recruiter feedback, continuing the same model conversation so
// revisions stay grounded in the original context.
package summary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/prompts"
	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Generator produces and revises hiring summaries.
type Generator struct {
	client llm.Client
	llmCfg *llm.Config
}

// NewGenerator creates a summary generator.
func NewGenerator(client llm.Client, llmCfg *llm.Config) *Generator {
	if llmCfg == nil {
		llmCfg = llm.DefaultConfig()
	}
	return &Generator{client: client, llmCfg: llmCfg}
}

// Generate writes a fresh summary for the candidate-job pair. The returned
// history is the full conversation; pass it to Regenerate to revise.
func (g *Generator) Generate(ctx context.Context, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob) (*types.SummaryGenerated, []*genai.Content, error) {
	user, err := renderPrompt("generate", fit, resume, job, "")
	if err != nil {
		return nil, nil, err
	}
	return g.run(ctx, user, nil, resume.CandidateID, job.JobID)
}

// Regenerate revises an existing summary using recruiter feedback. The
// feedback is authoritative over the computed scores; the prior
// conversation history keeps the revision anchored to the original
// analysis.
func (g *Generator) Regenerate(ctx context.Context, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob, feedback string, history []*genai.Content) (*types.SummaryGenerated, []*genai.Content, error) {
	user, err := renderPrompt("revise", fit, resume, job, feedback)
	if err != nil {
		return nil, nil, err
	}
	return g.run(ctx, user, history, resume.CandidateID, job.JobID)
}

func (g *Generator) run(ctx context.Context, user string, history []*genai.Content, candidateID, jobID string) (*types.SummaryGenerated, []*genai.Content, error) {
	result, err := g.client.RunStructured(ctx, &llm.StructuredRequest{
		System:           prompts.MustGet(prompts.SummaryFile, "summariser-system"),
		User:             user,
		Schema:           schemas.MustLoad(schemas.SummarySchemaFile),
		History:          history,
		Tier:             g.llmCfg.TierFor(llm.RoleSummary),
		TransportRetries: g.llmCfg.TransportRetries,
		SchemaRetries:    g.llmCfg.SchemaRetries,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("summary generation failed: %w", err)
	}

	var generated types.SummaryGenerated
	if err := json.Unmarshal([]byte(result.JSON), &generated); err != nil {
		return nil, nil, fmt.Errorf("failed to decode summary: %w", err)
	}

	generated.CandidateID = candidateID
	generated.JobID = jobID
	return &generated, result.History, nil
}

func renderPrompt(key string, fit *types.FitAnalysis, resume *types.ParsedResume, job *types.ParsedJob, feedback string) (string, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to encode job: %w", err)
	}
	fitJSON, err := json.Marshal(fit)
	if err != nil {
		return "", fmt.Errorf("failed to encode fit analysis: %w", err)
	}

	data := map[string]string{
		"Resume":      string(resumeJSON),
		"Job":         string(jobJSON),
		"FitAnalysis": string(fitJSON),
	}
	if feedback != "" {
		data["Feedback"] = feedback
	}
	return prompts.Format(prompts.MustGet(prompts.SummaryFile, key), data), nil
}
