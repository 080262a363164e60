package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/coordinate-advisor/internal/domain/coordinate"
	"github.com/yanqian/coordinate-advisor/internal/domain/weather"
	"github.com/yanqian/coordinate-advisor/internal/infra/config"
	"github.com/yanqian/coordinate-advisor/internal/infra/inflight"
	"github.com/yanqian/coordinate-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/coordinate-advisor/internal/infra/llm/gemini"
	"github.com/yanqian/coordinate-advisor/internal/infra/weather/openmeteo"
)

func provideCoordinateConfig(cfg *config.Config) coordinate.Config {
	return coordinate.Config{
		Temperature:           cfg.LLM.Temperature,
		MinSuggestions:        cfg.Suggest.MinSuggestions,
		Language:              cfg.Suggest.Language,
		SurfaceUpstreamErrors: cfg.Suggest.SurfaceUpstreamErrors,
		InflightTTL:           cfg.Suggest.Inflight.TTL,
		APIKeyEnv:             cfg.LLM.KeyEnv(),
	}
}

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{City: cfg.Weather.City}
}

func provideWeatherClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(openmeteo.Options{
		BaseURL:   cfg.Weather.APIBaseURL,
		Latitude:  cfg.Weather.Latitude,
		Longitude: cfg.Weather.Longitude,
		Timezone:  cfg.Weather.Timezone,
		Timeout:   cfg.Weather.Timeout,
	})
}

func provideGenerator(cfg *config.Config, logger *slog.Logger) (coordinate.Generator, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Error("llm api key is not set, suggestion requests will fail", "provider", cfg.LLM.Provider, "env", cfg.LLM.KeyEnv())
	}
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		client := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Timeout)
		logger.Info("llm generator configured", "generator", client.Name())
		return client, nil
	default:
		client, err := gemini.NewClient(context.Background(), gemini.Options{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("llm generator configured", "generator", client.Name())
		return client, nil
	}
}

func provideInflightGuard(cfg *config.Config, logger *slog.Logger) (coordinate.InflightGuard, func()) {
	noop := func() {}
	if !cfg.Suggest.Inflight.Enabled {
		logger.Info("inflight guard disabled")
		return nil, noop
	}
	if cfg.Suggest.Inflight.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Suggest.Inflight.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory guard", "error", err)
			return inflight.NewMemoryGuard(), noop
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory guard", "error", err)
			return inflight.NewMemoryGuard(), noop
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory guard", "error", err)
			client.Close()
			return inflight.NewMemoryGuard(), noop
		}
		logger.Info("inflight valkey guard enabled", "addr", cfg.Suggest.Inflight.Valkey.Addr)
		return inflight.NewValkeyGuard(client, cfg.Suggest.Inflight.Valkey.Prefix), client.Close
	}
	return inflight.NewMemoryGuard(), noop
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
