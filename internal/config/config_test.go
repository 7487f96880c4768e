package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, "gpt-4.1", cfg.OpenAIModel)
	assert.Equal(t, 1000, cfg.MaxOutputTokens)
	assert.Equal(t, 60*time.Second, cfg.GenTimeout)
	assert.Equal(t, 0.0000015, cfg.InputTokenRate)
	assert.Equal(t, 0.000006, cfg.OutputTokenRate)
	assert.Equal(t, 0.000001, cfg.CostScale)
	assert.Equal(t, "financial.sqlite", cfg.DBPath)
	assert.Equal(t, "query_log.xlsx", cfg.AuditPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("PORT", "9000")
	t.Setenv("RETRIEVAL_TOP_K", "3")
	t.Setenv("COST_SCALE", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 1.0, cfg.CostScale)
}

func TestLoadRequiresAPIKeyForOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadRequiresProjectForGemini(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLOUD_PROJECT")
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "llama-on-a-toaster")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveTopK(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("RETRIEVAL_TOP_K", "0")

	_, err := Load()
	require.Error(t, err)
}
