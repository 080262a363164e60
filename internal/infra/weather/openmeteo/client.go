package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/coordinate-advisor/internal/domain/weather"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

var errNoCurrentWeather = errors.New("forecast response has no current_weather block")

// Options configures the Open-Meteo client.
type Options struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	Timezone  string
	Timeout   time.Duration
}

// Client fetches forecasts from the Open-Meteo API for a fixed location.
type Client struct {
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds an API client.
func NewClient(opts Options) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: base + "?" + query(opts).Encode(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

func query(opts Options) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(opts.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(opts.Longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("hourly", "relativehumidity_2m,apparent_temperature")
	q.Set("daily", "temperature_2m_max,temperature_2m_min")
	if tz := strings.TrimSpace(opts.Timezone); tz != "" {
		q.Set("timezone", tz)
	}
	return q
}

// Fetch performs one uncached forecast request.
func (c *Client) Fetch(ctx context.Context) (weather.Forecast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Forecast{}, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}
	if raw.CurrentWeather == nil {
		return weather.Forecast{}, errNoCurrentWeather
	}

	return weather.Forecast{
		Temperature:    raw.CurrentWeather.Temperature,
		WeatherCode:    raw.CurrentWeather.WeatherCode,
		WindSpeedKmh:   raw.CurrentWeather.WindSpeed,
		HourlyHumidity: raw.Hourly.RelativeHumidity,
		HourlyApparent: raw.Hourly.ApparentTemperature,
		DailyMax:       raw.Daily.TemperatureMax,
		DailyMin:       raw.Daily.TemperatureMin,
		FetchedAt:      c.now(),
	}, nil
}

type apiResponse struct {
	CurrentWeather *currentWeather `json:"current_weather"`
	Hourly         hourly          `json:"hourly"`
	Daily          daily           `json:"daily"`
}

// windspeed is km/h under the default windspeed_unit.
type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

type hourly struct {
	RelativeHumidity    []*float64 `json:"relativehumidity_2m"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
}

type daily struct {
	TemperatureMax []*float64 `json:"temperature_2m_max"`
	TemperatureMin []*float64 `json:"temperature_2m_min"`
}
