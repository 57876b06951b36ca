// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Thresholds holds the similarity cut-offs used by the deterministic
// matchers. All values are cosine similarities in [0,1].
type Thresholds struct {
	SemanticMatch         float64 `json:"semantic_match" validate:"gte=0,lte=1"`
	SkillTransferableMin  float64 `json:"skill_transferable_min" validate:"gte=0,lte=1"`
	EducationPartialMin   float64 `json:"education_partial_min" validate:"gte=0,lte=1"`
	ExperienceKindMatch   float64 `json:"experience_kind_match" validate:"gte=0,lte=1"`
}

// Weights holds the aggregation weights. The five overall-fit weights must
// sum to 1.0, as must the two experience weights; Validate enforces both.
type Weights struct {
	RequiredSkills  float64 `json:"required_skills" validate:"gte=0,lte=1"`
	PreferredSkills float64 `json:"preferred_skills" validate:"gte=0,lte=1"`
	Experience      float64 `json:"experience" validate:"gte=0,lte=1"`
	Qualification   float64 `json:"qualification" validate:"gte=0,lte=1"`
	Seniority       float64 `json:"seniority" validate:"gte=0,lte=1"`

	ExperienceYears float64 `json:"experience_years" validate:"gte=0,lte=1"`
	ExperienceKind  float64 `json:"experience_kind" validate:"gte=0,lte=1"`
}

// Config represents the CLI configuration that can be loaded from a JSON
// file. Missing values use defaults; the API key may also come from the
// GEMINI_API_KEY environment variable.
type Config struct {
	APIKey  string `json:"api_key,omitempty"`
	Verbose bool   `json:"verbose,omitempty"`

	Thresholds Thresholds `json:"thresholds"`
	Weights    Weights    `json:"weights"`

	// Bounded retry budgets for structured extraction calls.
	TransportRetries int `json:"transport_retries" validate:"gte=1,lte=10"`
	SchemaRetries    int `json:"schema_retries" validate:"gte=1,lte=10"`
}

// weightSumTolerance absorbs float literal rounding in config files.
const weightSumTolerance = 1e-6

// Default returns the default configuration. Threshold and weight defaults
// match the calibrated values the scorers were tuned against.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			SemanticMatch:        0.80,
			SkillTransferableMin: 0.50,
			EducationPartialMin:  0.50,
			ExperienceKindMatch:  0.80,
		},
		Weights: Weights{
			RequiredSkills:  0.30,
			PreferredSkills: 0.10,
			Experience:      0.30,
			Qualification:   0.15,
			Seniority:       0.15,
			ExperienceYears: 0.4,
			ExperienceKind:  0.6,
		},
		TransportRetries: 3,
		SchemaRetries:    3,
	}
}

// Load loads configuration from a JSON file, layered over defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fitSum := c.Weights.RequiredSkills + c.Weights.PreferredSkills +
		c.Weights.Experience + c.Weights.Qualification + c.Weights.Seniority
	if math.Abs(fitSum-1.0) > weightSumTolerance {
		return fmt.Errorf("config error: overall fit weights must sum to 1.0, got %v", fitSum)
	}

	expSum := c.Weights.ExperienceYears + c.Weights.ExperienceKind
	if math.Abs(expSum-1.0) > weightSumTolerance {
		return fmt.Errorf("config error: experience weights must sum to 1.0, got %v", expSum)
	}

	if c.Thresholds.SkillTransferableMin > c.Thresholds.SemanticMatch {
		return fmt.Errorf("config error: skill_transferable_min must not exceed semantic_match")
	}

	return nil
}
