package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/candidate-matcher/internal/schemas"
)

const (
	defaultTransportRetries = 3
	defaultSchemaRetries    = 3
	// maxToolRounds bounds the number of tool-call rounds in one conversation
	// so a misbehaving model cannot loop forever.
	maxToolRounds = 16
)

// ToolSet exposes callable tools to a structured conversation. Implemented by
// the tools registry; declared here so the client does not depend on it.
type ToolSet interface {
	// Declarations returns the tool declarations to advertise to the model.
	Declarations() []*genai.Tool
	// Dispatch invokes the named tool with decoded arguments and returns the
	// result as a response payload.
	Dispatch(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error)
}

// StructuredRequest describes one structured-extraction conversation.
type StructuredRequest struct {
	// System is the system instruction for the conversation.
	System string
	// User is the user message that starts (or continues) the conversation.
	User string
	// Schema is the JSON Schema the final output must validate against.
	Schema string
	// Tools, when non-nil, are made available to the model during the run.
	Tools ToolSet
	// History seeds the chat session with prior turns, enabling follow-up
	// requests such as summary regeneration with feedback.
	History []*genai.Content
	// Tier selects the model used for the conversation.
	Tier ModelTier

	// TransportRetries and SchemaRetries override the default retry budgets
	// when positive.
	TransportRetries int
	SchemaRetries    int
}

// StructuredResult is the outcome of a structured conversation.
type StructuredResult struct {
	// JSON is the schema-valid output document.
	JSON string
	// History is the full conversation including the final model turn, usable
	// as the History of a follow-up StructuredRequest.
	History []*genai.Content
}

// StructuredOutputError indicates the model never produced schema-valid JSON
// within the retry budget.
type StructuredOutputError struct {
	Attempts int
	LastJSON string
	Cause    error
}

func (e *StructuredOutputError) Error() string {
	return fmt.Sprintf("model output failed schema validation after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *StructuredOutputError) Unwrap() error {
	return e.Cause
}

// RunStructured drives a chat session until the model produces JSON output
// that validates against the request schema. Tool calls issued by the model
// are dispatched through the request's ToolSet and their results fed back;
// schema-invalid output triggers a corrective follow-up message.
func (c *GeminiClient) RunStructured(ctx context.Context, req *StructuredRequest) (*StructuredResult, error) {
	if req == nil {
		return nil, fmt.Errorf("nil structured request")
	}

	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.Tools != nil {
		model.Tools = req.Tools.Declarations()
	}

	session := model.StartChat()
	if len(req.History) > 0 {
		session.History = append(session.History, req.History...)
	}

	// Budget resolution: per-request override, then client config, then the
	// package defaults.
	transportRetries := req.TransportRetries
	if transportRetries <= 0 {
		transportRetries = c.config.TransportRetries
	}
	if transportRetries <= 0 {
		transportRetries = defaultTransportRetries
	}
	schemaRetries := req.SchemaRetries
	if schemaRetries <= 0 {
		schemaRetries = c.config.SchemaRetries
	}
	if schemaRetries <= 0 {
		schemaRetries = defaultSchemaRetries
	}

	message := []genai.Part{genai.Text(req.User)}

	var lastJSON string
	var lastErr error
	for attempt := 0; attempt < schemaRetries; attempt++ {
		text, err := c.runConversation(ctx, session, req.Tools, message, transportRetries)
		if err != nil {
			return nil, err
		}

		cleaned := CleanJSONBlock(text)
		if req.Schema == "" {
			return &StructuredResult{JSON: cleaned, History: session.History}, nil
		}

		if err := schemas.ValidateDocument(req.Schema, cleaned); err != nil {
			lastJSON = cleaned
			lastErr = err
			message = []genai.Part{genai.Text(correctionMessage(err))}
			continue
		}

		return &StructuredResult{JSON: cleaned, History: session.History}, nil
	}

	return nil, &StructuredOutputError{
		Attempts: schemaRetries,
		LastJSON: lastJSON,
		Cause:    lastErr,
	}
}

// runConversation sends one message and resolves any tool-call rounds the
// model issues, returning the model's final text.
func (c *GeminiClient) runConversation(ctx context.Context, session *genai.ChatSession, tools ToolSet, message []genai.Part, transportRetries int) (string, error) {
	for round := 0; round < maxToolRounds; round++ {
		resp, err := sendWithRetry(ctx, session, message, transportRetries)
		if err != nil {
			return "", err
		}

		if len(resp.Candidates) == 0 {
			return "", fmt.Errorf("no candidates in response")
		}

		calls := resp.Candidates[0].FunctionCalls()
		if len(calls) == 0 {
			return extractTextFromResponse(resp)
		}
		if tools == nil {
			return "", fmt.Errorf("model requested tool %q but no tools are available", calls[0].Name)
		}

		message = message[:0]
		for _, call := range calls {
			result, err := tools.Dispatch(ctx, call.Name, call.Args)
			if err != nil {
				// Let the model see the failure and correct its arguments.
				result = map[string]interface{}{"error": err.Error()}
			}
			message = append(message, genai.FunctionResponse{
				Name:     call.Name,
				Response: result,
			})
		}
	}

	return "", fmt.Errorf("tool-call loop exceeded %d rounds", maxToolRounds)
}

// sendWithRetry retries transient transport failures on a single send.
func sendWithRetry(ctx context.Context, session *genai.ChatSession, parts []genai.Part, retries int) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := session.SendMessage(ctx, parts...)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to send message after %d attempts: %w", retries, lastErr)
}

func correctionMessage(err error) string {
	return fmt.Sprintf(
		"The previous response did not conform to the required JSON Schema: %v\n"+
			"Respond again with ONLY the corrected JSON document. Do not include any prose or markdown fences.", err)
}
