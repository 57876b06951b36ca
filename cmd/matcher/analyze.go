package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/entailment"
	"github.com/jonathan/candidate-matcher/internal/extraction"
	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/matching"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/pii"
	"github.com/jonathan/candidate-matcher/internal/pipeline"
	"github.com/jonathan/candidate-matcher/internal/semantic"
	"github.com/jonathan/candidate-matcher/internal/summary"
	"github.com/jonathan/candidate-matcher/internal/tools"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full candidate-job analysis pipeline",
	Long: `Loads a resume and a job description (file, PDF or URL), redacts PII,
extracts structured profiles, scores the fit with deterministic tools, and
generates a hiring-manager summary.

With --interactive, recruiter feedback can be entered after the report to
regenerate the summary; an empty line finishes the loop.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath  string
	analyzeResume      string
	analyzeJob         string
	analyzeCandidateID string
	analyzeJobID       string
	analyzeAPIKey      string
	analyzeOutput      string
	analyzeVerbose     bool
	analyzeInteractive bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Resume source: text/PDF/HTML file or URL (required)")
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Job description source: text/PDF/HTML file or URL (required)")
	analyzeCommand.Flags().StringVar(&analyzeCandidateID, "candidate-id", "", "Candidate ID (generated if omitted)")
	analyzeCommand.Flags().StringVar(&analyzeJobID, "job-id", "", "Job ID (generated if omitted)")
	analyzeCommand.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report JSON to this file")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed stage output")
	analyzeCommand.Flags().BoolVarP(&analyzeInteractive, "interactive", "i", false, "Prompt for recruiter feedback after the report")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(analyzeCommand)
}

// loadAnalyzeConfig merges config file, flags and environment.
func loadAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if analyzeConfigPath != "" {
		loaded, err := config.Load(analyzeConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key required: set --api-key or GEMINI_API_KEY")
	}
	return cfg, nil
}

// buildOrchestrator wires the full pipeline from configuration.
func buildOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, func(), error) {
	llmCfg := llm.DefaultConfig()
	llmCfg.TransportRetries = cfg.TransportRetries
	llmCfg.SchemaRetries = cfg.SchemaRetries
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	encoder, err := semantic.NewGeminiEncoder(ctx, cfg.APIKey)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
		_ = encoder.Close()
	}

	engine := matching.NewEngine(semantic.NewMatcher(encoder), cfg)
	registry := tools.NewRegistry(engine, entailment.NewLLMScorer(client))
	detector := pii.NewDetector(pii.NewGeminiClassifier(client))

	orchestrator := pipeline.NewOrchestrator(
		ingestion.LoadDocument,
		detector,
		extraction.NewExtractor(client, llmCfg, registry.Parser()),
		extraction.NewExtractor(client, llmCfg, registry.Parser()),
		matching.NewAnalyser(client, llmCfg, registry.Matcher()),
		summary.NewGenerator(client, llmCfg),
	)
	return orchestrator, cleanup, nil
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	if analyzeResume == "" || analyzeJob == "" {
		return fmt.Errorf("both --resume and --job are required")
	}

	orchestrator, cleanup, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stdout)

	onProgress := func(e pipeline.ProgressEvent) {
		fmt.Printf("[%s] %s\n", e.Stage, e.Message)
	}

	result, err := orchestrator.Analyse(ctx, analyzeResume, analyzeJob, analyzeCandidateID, analyzeJobID, onProgress)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintResume(&result.Resume)
		printer.PrintJob(&result.Job)
		printer.PrintFitAnalysis(&result.FitAnalysis)
	}
	printer.PrintReport(result)

	if analyzeInteractive {
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\nRecruiter feedback (empty line to finish): ")
			if !scanner.Scan() {
				break
			}
			feedback := strings.TrimSpace(scanner.Text())
			if feedback == "" {
				break
			}
			if _, err := orchestrator.RegenerateSummary(ctx, result, feedback); err != nil {
				fmt.Fprintf(os.Stderr, "Summary regeneration failed: %v\n", err)
				continue
			}
			printer.PrintReport(result)
		}
	}

	if analyzeOutput != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := os.WriteFile(analyzeOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", analyzeOutput)
	}

	return nil
}
