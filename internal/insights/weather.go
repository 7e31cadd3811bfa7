package insights

import (
	"fmt"
	"strings"

	"farmflow/internal/core"
)

const (
	RecommendHeavyRain Recommendation = "heavy_rain"
	RecommendLightRain Recommendation = "light_rain"
	RecommendHotSunny  Recommendation = "hot_sunny"
	RecommendExcellent Recommendation = "excellent"
	RecommendGood      Recommendation = "good"
)

const (
	AlertRain  AlertKind = "rain"
	AlertHeat  AlertKind = "heat"
	AlertSunny AlertKind = "sunny"
)

const (
	heavyRainPct = 30
	lightRainPct = 10
	rainyDayPct  = 20
	hotDayF      = 85
	sunnyStreak  = 5
	sunnyKeyword = "sunny"
)

type (
	Recommendation string
	AlertKind      string

	Alert struct {
		Kind    AlertKind `json:"kind"`
		Message string    `json:"message"`
		Days    []string  `json:"days"`
	}
)

var advice = map[Recommendation]string{
	RecommendHeavyRain: "Heavy rain expected. Postpone field work and check drainage.",
	RecommendLightRain: "Light rain expected. Good for recently planted crops.",
	RecommendHotSunny:  "Hot and sunny. Irrigate early and watch for heat stress.",
	RecommendExcellent: "Excellent conditions for field work and harvesting.",
	RecommendGood:      "Good conditions for regular farm activities.",
}

// Recommend picks the farming advice for one day. Rules are checked in
// order and the first match wins.
func Recommend(f core.Forecast) Recommendation {
	sunny := isSunny(f)
	switch {
	case f.Precipitation > heavyRainPct:
		return RecommendHeavyRain
	case f.Precipitation > lightRainPct:
		return RecommendLightRain
	case sunny && f.Temperature.High > hotDayF:
		return RecommendHotSunny
	case sunny:
		return RecommendExcellent
	default:
		return RecommendGood
	}
}

func (r Recommendation) Text() string {
	return advice[r]
}

// Alerts summarises the forecast: rainy days, hot days and a long sunny
// stretch. Only alerts with at least one day are returned.
func Alerts(days []core.Forecast) []Alert {
	var rainy, hot, sunny []string
	for _, d := range days {
		label := d.Date.ISODay()
		if d.Precipitation > rainyDayPct {
			rainy = append(rainy, label)
		}
		if d.Temperature.High > hotDayF {
			hot = append(hot, label)
		}
		if isSunny(d) {
			sunny = append(sunny, label)
		}
	}

	out := make([]Alert, 0, 3)
	if len(rainy) > 0 {
		out = append(out, Alert{
			Kind:    AlertRain,
			Message: fmt.Sprintf("Rain expected on %d day(s). Plan field work accordingly.", len(rainy)),
			Days:    rainy,
		})
	}
	if len(hot) > 0 {
		out = append(out, Alert{
			Kind:    AlertHeat,
			Message: fmt.Sprintf("High temperatures on %d day(s). Ensure adequate irrigation.", len(hot)),
			Days:    hot,
		})
	}
	if len(sunny) >= sunnyStreak {
		out = append(out, Alert{
			Kind:    AlertSunny,
			Message: "Great weather ahead for harvesting and field work.",
			Days:    sunny,
		})
	}
	return out
}

func isSunny(f core.Forecast) bool {
	return strings.Contains(strings.ToLower(f.Condition), sunnyKeyword)
}
