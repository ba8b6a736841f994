package weather

import (
	"context"
	"time"
)

// Weather is the normalized current-conditions payload returned to clients.
type Weather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Main        string  `json:"main"`
	Location    string  `json:"location"`
	Timestamp   string  `json:"timestamp"`
}

// Day is a single forecast entry.
type Day struct {
	Date        string  `json:"date"`
	MinTemp     float64 `json:"minTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Main        string  `json:"main"`
}

// Forecast wraps the ordered forecast days.
type Forecast struct {
	Days []Day `json:"days"`
}

// Report is the cached unit: current conditions plus forecast.
type Report struct {
	Current  Weather  `json:"current"`
	Forecast Forecast `json:"forecast"`
}

// Conditions is the upstream-neutral shape of a current weather reading.
type Conditions struct {
	TempC      float64
	FeelsLikeC float64
	Humidity   float64
	WindKph    float64
	Cloud      float64
	Text       string
	Icon       string
	Location   string
}

// DailyConditions is the upstream-neutral shape of one forecast day.
type DailyConditions struct {
	Date     string
	MinTempC float64
	MaxTempC float64
	Text     string
	Icon     string
}

// Provider fetches raw readings. query is "lat,lon" or a free-text place name.
type Provider interface {
	Current(ctx context.Context, query, lang string) (Conditions, error)
	Forecast(ctx context.Context, query string, days int, lang string) ([]DailyConditions, error)
}

// Cache memoizes reports by key.
type Cache interface {
	Get(key string) (Report, bool)
	Put(key string, report Report)
	Len() int
}

// Config wires runtime knobs for the weather domain.
type Config struct {
	ForecastDays int
	CallTimeout  time.Duration
}
