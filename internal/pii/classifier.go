// Package pii provides the PII detection and redaction engine: regex
// detectors for structured PII, a statistical span detector boundary for
// names and locations, span merging, and reversible-to-contact-card
// redaction.
package pii

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/prompts"
)

// TokenSpan is one labeled span produced by the statistical detector.
// Confidence is 0-100. Label carries the detector's raw sub-label
// (e.g. FIRSTNAME, LASTNAME, CITY); the detector normalizes it.
type TokenSpan struct {
	Label      string
	Text       string
	Start      int
	End        int
	Confidence float64
}

// TokenClassifier is the statistical span-detection boundary. The
// deterministic merge algorithm in Detector works identically for any
// implementation; tests inject fakes.
type TokenClassifier interface {
	Classify(ctx context.Context, text string) ([]TokenSpan, error)
}

// GeminiClassifier implements TokenClassifier with an LLM call. The model
// returns labeled entity strings; spans are located in the source text
// locally so offsets are exact even when the model's are not.
type GeminiClassifier struct {
	client llm.Client
}

// NewGeminiClassifier creates an LLM-backed token classifier.
func NewGeminiClassifier(client llm.Client) *GeminiClassifier {
	return &GeminiClassifier{client: client}
}

// classifiedEntity is the expected JSON element from the model.
type classifiedEntity struct {
	Label      string  `json:"label"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Classify extracts NAME/LOCATION-like spans from text.
func (c *GeminiClassifier) Classify(ctx context.Context, text string) ([]TokenSpan, error) {
	template := prompts.MustGet(prompts.PIIFile, "classify-spans")
	prompt := prompts.Format(template, map[string]string{"Text": text})

	jsonResp, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("span classification failed: %w", err)
	}
	jsonResp = llm.CleanJSONBlock(jsonResp)

	var entities []classifiedEntity
	if err := json.Unmarshal([]byte(jsonResp), &entities); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w (content: %s)", err, jsonResp)
	}

	return locateSpans(text, entities), nil
}

// locateSpans resolves each classified entity to concrete character
// offsets. Every non-overlapping occurrence of the entity text becomes a
// span; entities that cannot be found are dropped.
func locateSpans(text string, entities []classifiedEntity) []TokenSpan {
	var spans []TokenSpan
	for _, ent := range entities {
		needle := strings.TrimSpace(ent.Text)
		if needle == "" {
			continue
		}

		confidence := ent.Confidence
		if confidence <= 1.0 {
			// Some models report probabilities; scale to 0-100.
			confidence *= 100
		}

		offset := 0
		for {
			idx := strings.Index(text[offset:], needle)
			if idx < 0 {
				break
			}
			start := offset + idx
			spans = append(spans, TokenSpan{
				Label:      strings.ToUpper(strings.TrimSpace(ent.Label)),
				Text:       needle,
				Start:      start,
				End:        start + len(needle),
				Confidence: confidence,
			})
			offset = start + len(needle)
		}
	}

	// Order by position; on equal starts the longer span comes first so the
	// merge keeps a containing span over its own prefix.
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
	return spans
}
