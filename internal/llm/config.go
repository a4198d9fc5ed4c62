// Package llm provides centralized LLM configuration and client abstractions.
// Callers pick a model tier per task instead of hardcoding model names.
package llm

// ModelTier names the capability class a caller needs. The concrete model
// behind each tier lives in Config, so swapping models never touches call
// sites.
type ModelTier string

const (
	// TierLite serves latency-sensitive work: visitor chat replies.
	TierLite ModelTier = "lite"
	// TierStandard serves structured reasoning: fit assessments in JSON mode.
	TierStandard ModelTier = "standard"
)

// Provider identifies the backing LLM vendor.
type Provider string

// ProviderGemini is the Google Gemini provider. New vendors get a case in
// NewClient.
const ProviderGemini Provider = "gemini"

// Config maps tiers to concrete models for one provider. Zero-value fields
// are legal; GetModel falls back across tiers so a partial Config still
// resolves.
type Config struct {
	Provider Provider

	// LiteModel answers chat traffic; StandardModel produces assessments.
	LiteModel     string
	StandardModel string
}

// DefaultConfig returns the Gemini setup the service ships with.
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderGemini,
		LiteModel:     "gemini-2.5-flash-lite",
		StandardModel: "gemini-2.5-flash",
	}
}

// GetModel resolves a tier to a model name. An unset or unknown tier falls
// back to the standard model, then the lite one. Returns "" only when the
// Config names no models at all.
func (c *Config) GetModel(tier ModelTier) string {
	if tier == TierLite && c.LiteModel != "" {
		return c.LiteModel
	}
	if c.StandardModel != "" {
		return c.StandardModel
	}
	return c.LiteModel
}
