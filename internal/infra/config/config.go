package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	Weather WeatherConfig `yaml:"weather"`
	Suggest SuggestConfig `yaml:"suggest"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
	MaxVisitors       int  `yaml:"maxVisitors"`
}

// LLMConfig selects and configures the text generation backend.
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// WeatherConfig points the weather fetcher at a fixed location.
type WeatherConfig struct {
	APIBaseURL string        `yaml:"apiBaseUrl"`
	City       string        `yaml:"city"`
	Latitude   float64       `yaml:"latitude"`
	Longitude  float64       `yaml:"longitude"`
	Timezone   string        `yaml:"timezone"`
	Timeout    time.Duration `yaml:"timeout"`
}

// SuggestConfig tunes the coordinate suggestion pipeline.
type SuggestConfig struct {
	MinSuggestions        int            `yaml:"minSuggestions"`
	Language              string         `yaml:"language"`
	SurfaceUpstreamErrors bool           `yaml:"surfaceUpstreamErrors"`
	RequireAPIKey         bool           `yaml:"requireApiKey"`
	Inflight              InflightConfig `yaml:"inflight"`
}

// InflightConfig controls the per-session regeneration guard.
type InflightConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Valkey  ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared guard store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Provider names accepted by llm.provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	applyProviderDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	// GEMINI_API_KEY is the name the frontend deployment already uses.
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("WEATHER_API_BASE_URL"); v != "" {
		cfg.Weather.APIBaseURL = v
	}
	if v := os.Getenv("WEATHER_CITY"); v != "" {
		cfg.Weather.City = v
	}
	if v := os.Getenv("WEATHER_LATITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.Latitude = parsed
		}
	}
	if v := os.Getenv("WEATHER_LONGITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.Longitude = parsed
		}
	}
	if v := os.Getenv("WEATHER_TIMEZONE"); v != "" {
		cfg.Weather.Timezone = v
	}
	if v := os.Getenv("SUGGEST_MIN_SUGGESTIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Suggest.MinSuggestions = parsed
		}
	}
	if v := os.Getenv("SUGGEST_LANGUAGE"); v != "" {
		cfg.Suggest.Language = v
	}
	if v := os.Getenv("SUGGEST_SURFACE_UPSTREAM_ERRORS"); v != "" {
		cfg.Suggest.SurfaceUpstreamErrors = parseBool(v)
	}
	if v := os.Getenv("SUGGEST_REQUIRE_API_KEY"); v != "" {
		cfg.Suggest.RequireAPIKey = parseBool(v)
	}
	if v := os.Getenv("SUGGEST_INFLIGHT_ENABLED"); v != "" {
		cfg.Suggest.Inflight.Enabled = parseBool(v)
	}
	if v := os.Getenv("SUGGEST_INFLIGHT_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Suggest.Inflight.TTL = parsed
		}
	}
	if v := os.Getenv("SUGGEST_INFLIGHT_VALKEY_ENABLED"); v != "" {
		cfg.Suggest.Inflight.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("SUGGEST_INFLIGHT_VALKEY_ADDR"); v != "" {
		cfg.Suggest.Inflight.Valkey.Addr = v
	}
}

// KeyEnv names the environment variable operators set for this provider.
func (c LLMConfig) KeyEnv() string {
	if c.Provider == ProviderOpenAI {
		return "LLM_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// applyProviderDefaults swaps the Gemini default model for the OpenAI one when
// the provider was switched without naming a model.
func applyProviderDefaults(cfg *Config) {
	model := strings.TrimSpace(cfg.LLM.Model)
	if cfg.LLM.Provider == ProviderOpenAI && (model == "" || model == DefaultGeminiModel) {
		cfg.LLM.Model = DefaultOpenAIModel
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     ":8080",
			ReadTimeout: 5 * time.Second,
			// Generation routinely takes tens of seconds.
			WriteTimeout: 90 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
				MaxVisitors:       4096,
			},
		},
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Model:       DefaultGeminiModel,
			Temperature: 0.9,
			Timeout:     60 * time.Second,
		},
		Weather: WeatherConfig{
			APIBaseURL: "https://api.open-meteo.com/v1/forecast",
			City:       "Tokyo",
			Latitude:   35.682839,
			Longitude:  139.759455,
			Timezone:   "Asia/Tokyo",
			Timeout:    10 * time.Second,
		},
		Suggest: SuggestConfig{
			MinSuggestions: 3,
			Language:       "Japanese",
			Inflight: InflightConfig{
				Enabled: true,
				TTL:     90 * time.Second,
				Valkey: ValkeyConfig{
					Prefix: "coordinate",
				},
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		if c.HTTP.RateLimit.MaxVisitors <= 0 {
			return errors.New("http.rateLimit.maxVisitors must be positive")
		}
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be within [0, 2]")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.Suggest.RequireAPIKey && strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("llm.apiKey is required (set %s)", c.LLM.KeyEnv())
	}
	if strings.TrimSpace(c.Weather.APIBaseURL) == "" {
		return errors.New("weather.apiBaseUrl cannot be empty")
	}
	if c.Weather.Latitude < -90 || c.Weather.Latitude > 90 {
		return errors.New("weather.latitude must be within [-90, 90]")
	}
	if c.Weather.Longitude < -180 || c.Weather.Longitude > 180 {
		return errors.New("weather.longitude must be within [-180, 180]")
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if c.Suggest.MinSuggestions < 1 || c.Suggest.MinSuggestions > 3 {
		return errors.New("suggest.minSuggestions must be between 1 and 3")
	}
	if c.Suggest.Inflight.Enabled && c.Suggest.Inflight.TTL <= 0 {
		return errors.New("suggest.inflight.ttl must be positive")
	}
	if c.Suggest.Inflight.Valkey.Enabled && strings.TrimSpace(c.Suggest.Inflight.Valkey.Addr) == "" {
		return errors.New("suggest.inflight.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
