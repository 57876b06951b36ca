// Package llm provides centralized LLM configuration and client abstractions,
// including the structured-extraction loop used for resume/job parsing,
// fit matching and summary generation.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, span detection
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: structured parsing
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: tool-driven matching, summaries
	TierAdvanced ModelTier = "advanced"
)

// Role identifies one reasoning task in the pipeline. Each role maps to a
// model tier so tasks can run on differently capable models.
type Role string

// Pipeline reasoning roles.
const (
	RoleResumeParser Role = "resume_parser"
	RoleJobParser    Role = "job_parser"
	RoleMatcher      Role = "matcher"
	RoleSummary      Role = "summary"
	RolePIIClassify  Role = "pii_classify"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	Roles    map[Role]ModelTier

	// TransportRetries and SchemaRetries are the retry budgets for
	// structured conversations: attempts per message send and attempts to
	// obtain schema-valid output.
	TransportRetries int
	SchemaRetries    int
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:         ProviderGemini,
		TransportRetries: defaultTransportRetries,
		SchemaRetries:    defaultSchemaRetries,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Roles: map[Role]ModelTier{
			RoleResumeParser: TierStandard,
			RoleJobParser:    TierStandard,
			RoleMatcher:      TierAdvanced,
			RoleSummary:      TierAdvanced,
			RolePIIClassify:  TierLite,
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// TierFor returns the configured tier for a role, defaulting to standard.
func (c *Config) TierFor(role Role) ModelTier {
	if tier, ok := c.Roles[role]; ok {
		return tier
	}
	return TierStandard
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:         c.Provider,
		TransportRetries: c.TransportRetries,
		SchemaRetries:    c.SchemaRetries,
		Models:           make(map[ModelTier]string),
		Roles:            make(map[Role]ModelTier),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	for k, v := range c.Roles {
		newConfig.Roles[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
