// Package extraction turns redacted resume text and raw job descriptions
// into structured documents via schema-validated LLM conversations. The
// extractor owns document content; identifiers are assigned by the caller.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/prompts"
	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

var validate = validator.New()

// Extractor runs the resume and job parsing conversations.
type Extractor struct {
	client llm.Client
	llmCfg *llm.Config
	tools  llm.ToolSet
}

// NewExtractor creates an extractor. The tool set carries the date-parsing
// and entailment tools the parser conversations may call; it may be nil.
func NewExtractor(client llm.Client, llmCfg *llm.Config, tools llm.ToolSet) *Extractor {
	if llmCfg == nil {
		llmCfg = llm.DefaultConfig()
	}
	return &Extractor{client: client, llmCfg: llmCfg, tools: tools}
}

// ParseResume extracts a structured profile from redacted resume text.
// The returned document carries the supplied candidate ID regardless of
// what the model emitted.
func (e *Extractor) ParseResume(ctx context.Context, redactedText, candidateID string) (*types.ParsedResume, error) {
	user := prompts.Format(prompts.MustGet(prompts.ExtractionFile, "parse-resume"), map[string]string{
		"CandidateID": candidateID,
		"ResumeText":  redactedText,
	})

	result, err := e.client.RunStructured(ctx, &llm.StructuredRequest{
		System:           prompts.MustGet(prompts.ExtractionFile, "resume-parser-system"),
		User:             user,
		Schema:           schemas.MustLoad(schemas.ResumeSchemaFile),
		Tools:            e.tools,
		Tier:             e.llmCfg.TierFor(llm.RoleResumeParser),
		TransportRetries: e.llmCfg.TransportRetries,
		SchemaRetries:    e.llmCfg.SchemaRetries,
	})
	if err != nil {
		return nil, &ParseError{Document: "resume", Cause: err}
	}

	var resume types.ParsedResume
	if err := json.Unmarshal([]byte(result.JSON), &resume); err != nil {
		return nil, &ParseError{Document: "resume", Cause: fmt.Errorf("failed to decode output: %w", err)}
	}
	if err := validate.Struct(&resume); err != nil {
		return nil, &ParseError{Document: "resume", Cause: err}
	}

	resume.CandidateID = candidateID
	return &resume, nil
}
