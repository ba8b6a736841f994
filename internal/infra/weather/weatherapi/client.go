package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/stylecast/internal/domain/weather"
)

const defaultBaseURL = "https://api.weatherapi.com/v1"

// Client fetches current conditions and forecasts from weatherapi.com.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. An empty key is accepted; calls then fail
// with weather.ErrMissingAPIKey.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Current implements weather.Provider.
func (c *Client) Current(ctx context.Context, query, lang string) (weather.Conditions, error) {
	var raw currentResponse
	if err := c.get(ctx, "current.json", query, lang, nil, &raw); err != nil {
		return weather.Conditions{}, err
	}
	return raw.Current.toConditions(raw.Location.Name), nil
}

// Forecast implements weather.Provider.
func (c *Client) Forecast(ctx context.Context, query string, days int, lang string) ([]weather.DailyConditions, error) {
	extra := url.Values{}
	extra.Set("days", strconv.Itoa(days))

	var raw forecastResponse
	if err := c.get(ctx, "forecast.json", query, lang, extra, &raw); err != nil {
		return nil, err
	}
	out := make([]weather.DailyConditions, 0, len(raw.Forecast.ForecastDay))
	for _, fd := range raw.Forecast.ForecastDay {
		out = append(out, weather.DailyConditions{
			Date:     fd.Date,
			MinTempC: fd.Day.MinTempC,
			MaxTempC: fd.Day.MaxTempC,
			Text:     fd.Day.Condition.Text,
			Icon:     fd.Day.Condition.Icon,
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path, query, lang string, extra url.Values, out any) error {
	if c.apiKey == "" {
		return weather.ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("aqi", "yes")
	params.Set("lang", lang)
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%s request error: status=%d body=%s", path, resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

type location struct {
	Name string `json:"name"`
}

type condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type current struct {
	TempC      float64   `json:"temp_c"`
	FeelsLikeC float64   `json:"feelslike_c"`
	Humidity   float64   `json:"humidity"`
	WindKph    float64   `json:"wind_kph"`
	Cloud      float64   `json:"cloud"`
	Condition  condition `json:"condition"`
}

func (c current) toConditions(place string) weather.Conditions {
	return weather.Conditions{
		TempC:      c.TempC,
		FeelsLikeC: c.FeelsLikeC,
		Humidity:   c.Humidity,
		WindKph:    c.WindKph,
		Cloud:      c.Cloud,
		Text:       c.Condition.Text,
		Icon:       c.Condition.Icon,
		Location:   place,
	}
}

type currentResponse struct {
	Location location `json:"location"`
	Current  current  `json:"current"`
}

type forecastResponse struct {
	Location location `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC  float64   `json:"maxtemp_c"`
				MinTempC  float64   `json:"mintemp_c"`
				Condition condition `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

var _ weather.Provider = (*Client)(nil)
