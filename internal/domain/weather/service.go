package weather

import (
	"context"
	"log/slog"
	"math"

	apperrors "github.com/yanqian/coordinate-advisor/pkg/errors"
)

// Service exposes current weather for the configured location.
type Service interface {
	Current(ctx context.Context) (Snapshot, error)
}

// Fetcher retrieves a raw forecast from the upstream provider.
type Fetcher interface {
	Fetch(ctx context.Context) (Forecast, error)
}

type service struct {
	cfg     Config
	fetcher Fetcher
	logger  *slog.Logger
}

// NewService wires up the weather domain.
func NewService(cfg Config, fetcher Fetcher, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger.With("component", "weather.service"),
	}
}

func (s *service) Current(ctx context.Context) (Snapshot, error) {
	forecast, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error("weather fetch failed", "error", err)
		return Snapshot{}, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "failed to fetch weather", err)
	}

	snap := toSnapshot(s.cfg.City, forecast)
	s.logger.Info("weather fetched", "city", snap.City, "tempNow", snap.TempNow, "condition", snap.Condition)
	return snap, nil
}

func toSnapshot(city string, f Forecast) Snapshot {
	snap := Snapshot{
		City:      city,
		TempNow:   round(f.Temperature),
		Condition: Condition(f.WeatherCode),
		Hi:        round(firstOr(f.DailyMax, f.Temperature)),
		Lo:        round(firstOr(f.DailyMin, f.Temperature)),
		FeelsLike: round(firstOr(f.HourlyApparent, f.Temperature)),
		WindKmh:   round(f.WindSpeedKmh),
	}
	if h := first(f.HourlyHumidity); h != nil {
		v := round(*h)
		snap.Humidity = &v
	}
	return snap
}

func first(series []*float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	return series[0]
}

func firstOr(series []*float64, fallback float64) float64 {
	if v := first(series); v != nil {
		return *v
	}
	return fallback
}

// round is half away from zero, matching how the UI presents readings.
func round(v float64) int {
	return int(math.Round(v))
}
