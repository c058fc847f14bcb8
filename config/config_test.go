package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROJECT_DIR", dir)
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PRIMARY_SOURCE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderDeepSeek, cfg.LLMProvider)
	assert.Equal(t, "deepseek-chat", cfg.LLMModel)
	assert.InDelta(t, 0.1, cfg.Temperature, 1e-6)
	assert.Equal(t, SourceLongport, cfg.PrimarySource)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.PriceHistoryDays)
	assert.Equal(t, 5, cfg.NewsLimit)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.NotEmpty(t, cfg.UserAgent)
	assert.False(t, cfg.GeneralChatEnabled)
}

func TestLoadQwenProvider(t *testing.T) {
	t.Setenv("PROJECT_DIR", t.TempDir())
	t.Setenv("LLM_PROVIDER", "Qwen")
	t.Setenv("DASHSCOPE_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderQwen, cfg.LLMProvider)
	assert.Equal(t, "qwen-turbo", cfg.LLMModel)
	assert.Equal(t, qwenCompatibleURL, cfg.LLMBaseURL)
	assert.Equal(t, "sk-test", cfg.APIKey())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown provider", "LLM_PROVIDER", "claude"},
		{"unknown primary source", "PRIMARY_SOURCE", "tushare"},
		{"temperature out of range", "LLM_TEMPERATURE", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PROJECT_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestHasLongportCredentials(t *testing.T) {
	cfg := &Config{LongportAppKey: "k", LongportAppSecret: "s"}
	assert.False(t, cfg.HasLongportCredentials())

	cfg.LongportAccessToken = "t"
	assert.True(t, cfg.HasLongportCredentials())
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		DataDir:      filepath.Join(dir, "data"),
		TranscriptDB: filepath.Join(dir, "db", "turns.db"),
	}

	require.NoError(t, cfg.EnsureDirectories())

	for _, p := range []string{cfg.DataDir, filepath.Join(dir, "db")} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
