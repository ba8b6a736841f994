package weather

import (
	"strings"
	"time"

	"github.com/yanqian/stylecast/internal/domain/language"
)

const kphPerMetrePerSecond = 3.6

type skyCondition string

const (
	skyOvercast     skyCondition = "overcast"
	skyPartlyCloudy skyCondition = "partly_cloudy"
	skyMostlyClear  skyCondition = "mostly_clear"
)

var skyMain = map[skyCondition]string{
	skyOvercast:     "Clouds",
	skyPartlyCloudy: "Partly Cloudy",
	skyMostlyClear:  "Mostly Clear",
}

var skyDescriptions = map[skyCondition]map[string]string{
	skyOvercast: {
		language.English:  "Overcast",
		language.Korean:   "흐림",
		language.Japanese: "曇り",
		language.Chinese:  "阴天",
	},
	skyPartlyCloudy: {
		language.English:  "Partly Cloudy",
		language.Korean:   "부분적으로 흐림",
		language.Japanese: "一部曇り",
		language.Chinese:  "部分多云",
	},
	skyMostlyClear: {
		language.English:  "Mostly Clear",
		language.Korean:   "약간 흐림",
		language.Japanese: "ほぼ晴れ",
		language.Chinese:  "大部晴朗",
	},
}

// classifyCloud maps a cloud cover percentage onto an override, or "" when the
// upstream text should be used unchanged.
func classifyCloud(cloud float64) skyCondition {
	switch {
	case cloud >= 75:
		return skyOvercast
	case cloud >= 50:
		return skyPartlyCloudy
	case cloud >= 25:
		return skyMostlyClear
	default:
		return ""
	}
}

// localizedSky falls back to English for unsupported languages.
func localizedSky(cond skyCondition, lang string) string {
	table := skyDescriptions[cond]
	if v, ok := table[lang]; ok {
		return v
	}
	if v, ok := table[language.English]; ok {
		return v
	}
	return string(cond)
}

// Transform normalizes current conditions, overriding the textual condition
// from cloud cover and converting wind speed to m/s.
func Transform(c Conditions, lang string, now time.Time) Weather {
	description := c.Text
	main := c.Text
	if cond := classifyCloud(c.Cloud); cond != "" {
		description = localizedSky(cond, lang)
		main = skyMain[cond]
	}
	return Weather{
		Temperature: c.TempC,
		FeelsLike:   c.FeelsLikeC,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindKph / kphPerMetrePerSecond,
		Description: description,
		Icon:        absoluteIconURL(c.Icon),
		Main:        main,
		Location:    c.Location,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

// TransformForecast keeps upstream order and text, capped at limit days.
func TransformForecast(days []DailyConditions, limit int) Forecast {
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	out := make([]Day, 0, len(days))
	for _, d := range days {
		out = append(out, Day{
			Date:        d.Date,
			MinTemp:     d.MinTempC,
			MaxTemp:     d.MaxTempC,
			Description: d.Text,
			Icon:        absoluteIconURL(d.Icon),
			Main:        d.Text,
		})
	}
	return Forecast{Days: out}
}

func absoluteIconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}
