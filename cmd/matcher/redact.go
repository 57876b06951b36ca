package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/pii"
)

var redactCommand = &cobra.Command{
	Use:   "redact",
	Short: "Redact PII from a resume without running the full pipeline",
	Long: `Loads a resume (file, PDF or URL), detects personally identifiable
information and prints the redacted text. Useful for inspecting what the
analysis pipeline feeds to the extraction stage.`,
	RunE: runRedactCmd,
}

var (
	redactResume      string
	redactCandidateID string
	redactAPIKey      string
	redactOutput      string
	redactVerbose     bool
)

func init() {
	redactCommand.Flags().StringVarP(&redactResume, "resume", "r", "", "Resume source: text/PDF/HTML file or URL (required)")
	redactCommand.Flags().StringVar(&redactCandidateID, "candidate-id", "cand_redact", "Candidate ID used in replacement tokens")
	redactCommand.Flags().StringVarP(&redactOutput, "output", "o", "", "Write the redacted text to this file instead of stdout")
	redactCommand.Flags().BoolVarP(&redactVerbose, "verbose", "v", false, "Print the detected entities and contact card")
	redactCommand.Flags().StringVar(&redactAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(redactCommand)
}

func runRedactCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if redactResume == "" {
		return fmt.Errorf("--resume is required")
	}
	apiKey := redactAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key or GEMINI_API_KEY")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	text, err := ingestion.LoadDocument(ctx, redactResume)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	detector := pii.NewDetector(pii.NewGeminiClassifier(client))
	redacted, details, err := detector.ProcessResume(ctx, text, redactCandidateID)
	if err != nil {
		return fmt.Errorf("redaction failed: %w", err)
	}

	if redactVerbose {
		observability.NewPrinter(os.Stdout).PrintRedaction(redacted, details)
	}

	if redactOutput != "" {
		if err := os.WriteFile(redactOutput, []byte(redacted.RedactedText), 0644); err != nil {
			return fmt.Errorf("failed to write redacted text: %w", err)
		}
		fmt.Printf("Redacted text written to %s (%d entities removed)\n", redactOutput, len(redacted.PIIEntities))
		return nil
	}

	fmt.Println(redacted.RedactedText)
	return nil
}
