package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
}

func TestGetModel_FallbackAcrossTiers(t *testing.T) {
	onlyLite := &Config{LiteModel: "small"}
	assert.Equal(t, "small", onlyLite.GetModel(TierLite))
	assert.Equal(t, "small", onlyLite.GetModel(TierStandard))
	assert.Equal(t, "small", onlyLite.GetModel("unknown"))

	onlyStandard := &Config{StandardModel: "big"}
	assert.Equal(t, "big", onlyStandard.GetModel(TierLite))
	assert.Equal(t, "big", onlyStandard.GetModel(TierStandard))
}

func TestGetModel_NoModelsConfigured(t *testing.T) {
	empty := &Config{Provider: ProviderGemini}
	assert.Empty(t, empty.GetModel(TierLite))
	assert.Empty(t, empty.GetModel(TierStandard))
}
