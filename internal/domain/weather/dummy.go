package weather

import (
	"context"
	"time"
)

// DummyProvider serves fixed readings so the client can be exercised without
// a weather API credential.
type DummyProvider struct {
	now func() time.Time
}

// NewDummyProvider constructs the fixture provider.
func NewDummyProvider() *DummyProvider {
	return &DummyProvider{now: time.Now}
}

// Current returns a mild clear-sky reading for any location.
func (p *DummyProvider) Current(_ context.Context, query, _ string) (Conditions, error) {
	return Conditions{
		TempC:      21,
		FeelsLikeC: 21,
		Humidity:   55,
		WindKph:    10.8,
		Cloud:      10,
		Text:       "Clear",
		Icon:       "//cdn.weatherapi.com/weather/64x64/day/113.png",
		Location:   query,
	}, nil
}

// Forecast returns days consecutive days starting today.
func (p *DummyProvider) Forecast(_ context.Context, _ string, days int, _ string) ([]DailyConditions, error) {
	start := p.now().UTC()
	out := make([]DailyConditions, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, DailyConditions{
			Date:     start.AddDate(0, 0, i).Format("2006-01-02"),
			MinTempC: 15 + float64(i%3),
			MaxTempC: 23 + float64(i%4),
			Text:     "Sunny",
			Icon:     "//cdn.weatherapi.com/weather/64x64/day/113.png",
		})
	}
	return out, nil
}

var _ Provider = (*DummyProvider)(nil)
