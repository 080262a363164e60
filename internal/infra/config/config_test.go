package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, float32(0.9), cfg.LLM.Temperature)
	require.Equal(t, 3, cfg.Suggest.MinSuggestions)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "bard" },
			wantErr: `llm.provider "bard" is not supported`,
		},
		{
			name:    "min suggestions out of range",
			mutate:  func(c *Config) { c.Suggest.MinSuggestions = 4 },
			wantErr: "suggest.minSuggestions must be between 1 and 3",
		},
		{
			name:    "api key required",
			mutate:  func(c *Config) { c.Suggest.RequireAPIKey = true },
			wantErr: "llm.apiKey is required (set GEMINI_API_KEY)",
		},
		{
			name: "valkey without addr",
			mutate: func(c *Config) {
				c.Suggest.Inflight.Valkey.Enabled = true
			},
			wantErr: "suggest.inflight.valkey.addr cannot be empty when valkey is enabled",
		},
		{
			name:    "bad latitude",
			mutate:  func(c *Config) { c.Weather.Latitude = 91 },
			wantErr: "weather.latitude must be within [-90, 90]",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			require.EqualError(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := []byte(`
llm:
  model: gemini-2.5-pro
  temperature: 0.5
weather:
  city: Osaka
suggest:
  minSuggestions: 1
  inflight:
    ttl: 30s
`)
	require.NoError(t, os.WriteFile(path, yamlBody, 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	require.Equal(t, float32(0.7), cfg.LLM.Temperature)
	require.Equal(t, "gem-key", cfg.LLM.APIKey)
	require.Equal(t, "Osaka", cfg.Weather.City)
	require.Equal(t, 1, cfg.Suggest.MinSuggestions)
	require.Equal(t, 30*time.Second, cfg.Suggest.Inflight.TTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
}

func TestLoadLLMKeyPrecedence(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GEMINI_API_KEY", "gem")
	t.Setenv("LLM_API_KEY", "generic")
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	require.Equal(t, "generic", cfg.LLM.APIKey)
}

func TestLoadOpenAIProviderDefaultsModel(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	require.Equal(t, DefaultOpenAIModel, cfg.LLM.Model)
}

func TestApplyProviderDefaults(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		model    string
		want     string
	}{
		{name: "openai with gemini default", provider: ProviderOpenAI, model: DefaultGeminiModel, want: DefaultOpenAIModel},
		{name: "openai with blank model", provider: ProviderOpenAI, model: " ", want: DefaultOpenAIModel},
		{name: "openai with explicit model", provider: ProviderOpenAI, model: "gpt-4.1", want: "gpt-4.1"},
		{name: "gemini untouched", provider: ProviderGemini, model: DefaultGeminiModel, want: DefaultGeminiModel},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			cfg.LLM.Provider = tt.provider
			cfg.LLM.Model = tt.model
			applyProviderDefaults(cfg)
			require.Equal(t, tt.want, cfg.LLM.Model)
		})
	}
}

func TestKeyEnv(t *testing.T) {
	require.Equal(t, "GEMINI_API_KEY", LLMConfig{Provider: ProviderGemini}.KeyEnv())
	require.Equal(t, "LLM_API_KEY", LLMConfig{Provider: ProviderOpenAI}.KeyEnv())

	cfg := defaultConfig()
	cfg.LLM.Provider = ProviderOpenAI
	cfg.Suggest.RequireAPIKey = true
	require.EqualError(t, cfg.Validate(), "llm.apiKey is required (set LLM_API_KEY)")
}
