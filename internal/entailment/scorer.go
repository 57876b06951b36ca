// Package entailment checks whether an evidence snippet supports a factual
// claim, producing a 0.0-1.0 entailment score. Extraction uses it to grade
// evidence confidence and the matcher exposes it as a reasoning tool.
package entailment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/prompts"
)

// Scorer scores how strongly evidence entails a claim.
type Scorer interface {
	// Score returns an entailment probability in [0, 1].
	Score(ctx context.Context, evidence, claim string) (float64, error)
}

// judgeResponse is the expected JSON response from the LLM judge.
type judgeResponse struct {
	EntailmentScore float64 `json:"entailment_score"`
	Reasoning       string  `json:"reasoning"`
}

// LLMScorer judges entailment with a lite-tier model.
type LLMScorer struct {
	client llm.Client
}

// NewLLMScorer creates an entailment scorer backed by the given client.
func NewLLMScorer(client llm.Client) *LLMScorer {
	return &LLMScorer{client: client}
}

// Score asks the judge model whether evidence entails claim.
func (s *LLMScorer) Score(ctx context.Context, evidence, claim string) (float64, error) {
	template := prompts.MustGet(prompts.EntailmentFile, "judge")
	prompt := prompts.Format(template, map[string]string{
		"Evidence": evidence,
		"Claim":    claim,
	})

	jsonResp, err := s.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return 0, fmt.Errorf("LLM generation failed: %w", err)
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)

	var response judgeResponse
	if err := json.Unmarshal([]byte(jsonResp), &response); err != nil {
		return 0, fmt.Errorf("failed to parse judge response: %w (content: %s)", err, jsonResp)
	}

	// Clamp to the valid range
	if response.EntailmentScore < 0.0 {
		response.EntailmentScore = 0.0
	}
	if response.EntailmentScore > 1.0 {
		response.EntailmentScore = 1.0
	}

	return response.EntailmentScore, nil
}
