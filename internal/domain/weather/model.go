package weather

import "time"

// Snapshot is the flattened weather view served to API consumers.
type Snapshot struct {
	City      string `json:"city"`
	TempNow   int    `json:"tempNow"`
	Condition string `json:"condition"`
	Hi        int    `json:"hi"`
	Lo        int    `json:"lo"`
	FeelsLike int    `json:"feelsLike"`
	Humidity  *int   `json:"humidity"`
	WindKmh   int    `json:"windKmh"`
}

// Forecast is the provider payload reduced to the fields the snapshot needs.
// Series entries are pointers because the provider emits null for gaps.
type Forecast struct {
	Temperature    float64
	WeatherCode    int
	WindSpeedKmh   float64
	HourlyHumidity []*float64
	HourlyApparent []*float64
	DailyMax       []*float64
	DailyMin       []*float64
	FetchedAt      time.Time
}

// Config wires runtime settings for the weather domain.
type Config struct {
	City string
}
