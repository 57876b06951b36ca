package semantic

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// defaultEmbeddingModel is the Gemini embedding model used for similarity.
const defaultEmbeddingModel = "text-embedding-004"

// GeminiEncoder implements Encoder using the Gemini embedding API.
// Construct once at process start and share; inference calls are
// read-only and safe for concurrent use.
type GeminiEncoder struct {
	client *genai.Client
	model  string
}

// NewGeminiEncoder creates a Gemini-backed encoder.
func NewGeminiEncoder(ctx context.Context, apiKey string) (*GeminiEncoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEncoder{client: client, model: defaultEmbeddingModel}, nil
}

// Encode embeds all texts in a single batch request.
func (e *GeminiEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to encode")
	}

	em := e.client.EmbeddingModel(e.model)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed contents: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d texts", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// Close releases the underlying client.
func (e *GeminiEncoder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
