package weatherapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/stylecast/internal/domain/weather"
)

func TestClientCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/current.json", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "secret", q.Get("key"))
		require.Equal(t, "37.5,127", q.Get("q"))
		require.Equal(t, "yes", q.Get("aqi"))
		require.Equal(t, "ja", q.Get("lang"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"location": {"name": "Seoul"},
			"current": {
				"temp_c": 18.2, "feelslike_c": 17.1, "humidity": 64, "wind_kph": 14.4, "cloud": 50,
				"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient("secret", srv.URL, time.Second)
	got, err := client.Current(context.Background(), "37.5,127", "ja")
	require.NoError(t, err)
	require.Equal(t, weather.Conditions{
		TempC:      18.2,
		FeelsLikeC: 17.1,
		Humidity:   64,
		WindKph:    14.4,
		Cloud:      50,
		Text:       "Partly cloudy",
		Icon:       "//cdn.weatherapi.com/weather/64x64/day/116.png",
		Location:   "Seoul",
	}, got)
}

func TestClientForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast.json", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{
			"location": {"name": "Busan"},
			"forecast": {"forecastday": [
				{"date": "2025-06-01", "day": {"maxtemp_c": 25, "mintemp_c": 17, "condition": {"text": "Sunny", "icon": "//a/1.png"}}},
				{"date": "2025-06-02", "day": {"maxtemp_c": 22, "mintemp_c": 16, "condition": {"text": "Rain", "icon": "//a/2.png"}}}
			]}
		}`))
	}))
	defer srv.Close()

	client := NewClient("secret", srv.URL+"/", time.Second)
	days, err := client.Forecast(context.Background(), "Busan", 7, "en")
	require.NoError(t, err)
	require.Len(t, days, 2)
	require.Equal(t, "2025-06-01", days[0].Date)
	require.Equal(t, 17.0, days[0].MinTempC)
	require.Equal(t, "Rain", days[1].Text)
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key disabled"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("secret", srv.URL, time.Second).Current(context.Background(), "Seoul", "ko")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=403")
	require.Contains(t, err.Error(), "API key disabled")
}

func TestClientMissingKey(t *testing.T) {
	_, err := NewClient("  ", "", 0).Forecast(context.Background(), "Seoul", 7, "ko")
	require.ErrorIs(t, err, weather.ErrMissingAPIKey)
}
