package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, 3, config.TransportRetries)
	assert.Equal(t, 3, config.SchemaRetries)
}

func TestDefaultConfig_Roles(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, TierStandard, config.TierFor(RoleResumeParser))
	assert.Equal(t, TierStandard, config.TierFor(RoleJobParser))
	assert.Equal(t, TierAdvanced, config.TierFor(RoleMatcher))
	assert.Equal(t, TierAdvanced, config.TierFor(RoleSummary))
	assert.Equal(t, TierLite, config.TierFor(RolePIIClassify))
}

func TestTierFor_UnknownRole(t *testing.T) {
	config := DefaultConfig()

	// Unmapped roles fall back to the standard tier
	assert.Equal(t, TierStandard, config.TierFor("unknown_role"))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))

	// Role mapping and retry budgets should be copied too
	assert.Equal(t, TierAdvanced, newConfig.TierFor(RoleMatcher))
	assert.Equal(t, config.TransportRetries, newConfig.TransportRetries)
	assert.Equal(t, config.SchemaRetries, newConfig.SchemaRetries)
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}
