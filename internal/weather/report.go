package weather

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/i474232898/smart-weather/internal/common"
)

const (
	// WindUnit is the label for wind speed. OpenWeatherMap reports m/s for
	// metric requests and the report keeps that label for every unit system.
	WindUnit = "m/s"

	umbrellaAdvice = "☔ Consider an umbrella."
	dryAdvice      = "No rain hinted by description."

	whenLayout = "2006-01-02 15:04"
)

var wetKeywords = []string{"rain", "drizzle", "thunder"}

// Summary holds the facts derived from an observation.
type Summary struct {
	Conditions       string  `json:"conditions"`
	TemperatureLabel string  `json:"temperatureLabel"`
	FeelsLikeDelta   float64 `json:"feelsLikeDelta"`
	WindCategory     string  `json:"windCategory"`
	LikelyWet        bool    `json:"likelyWet"`
	Advice           string  `json:"advice"`
	When             string  `json:"when"`
}

// Summarize derives the report facts, rendering the timestamp in loc.
func Summarize(obs Observation, units Units, loc *time.Location) Summary {
	wet := LikelyWet(obs.Description)
	advice := dryAdvice
	if wet {
		advice = umbrellaAdvice
	}
	return Summary{
		Conditions:       TitleCase(obs.Description),
		TemperatureLabel: TemperatureLabel(units),
		FeelsLikeDelta:   FeelsLikeDelta(obs.Temperature, obs.FeelsLike),
		WindCategory:     WindCategory(obs.WindSpeed),
		LikelyWet:        wet,
		Advice:           advice,
		When:             time.Unix(obs.ObservedAt, 0).In(loc).Format(whenLayout),
	}
}

// BuildReport renders the fixed-layout brief using the local time zone.
func BuildReport(obs Observation, units Units) string {
	return RenderReport(obs, units, time.Local)
}

// RenderReport is BuildReport with an explicit time zone for the "When" line.
func RenderReport(obs Observation, units Units, loc *time.Location) string {
	s := Summarize(obs, units, loc)

	var b strings.Builder
	b.WriteString("=== Smart Weather Brief ===\n")
	fmt.Fprintf(&b, "Location: %s\n", obs.LocationName)
	fmt.Fprintf(&b, "When:     %s (local)\n", s.When)
	fmt.Fprintf(&b, "Units:    %s\n", units)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Conditions: %s\n", s.Conditions)
	fmt.Fprintf(&b, "Temp:       %.1f %s (feels like %.1f %s, Δ=%.1f)\n",
		roundTenth(obs.Temperature), s.TemperatureLabel, roundTenth(obs.FeelsLike), s.TemperatureLabel, s.FeelsLikeDelta)
	fmt.Fprintf(&b, "Humidity:   %d%%\n", obs.HumidityPercent)
	fmt.Fprintf(&b, "Wind:       %.1f %s (%s)\n", roundTenth(obs.WindSpeed), WindUnit, s.WindCategory)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Advice: %s\n", s.Advice)
	return b.String()
}

// roundTenth rounds to one decimal, ties away from zero.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// FeelsLikeDelta returns feelsLike-temperature rounded half up to one decimal.
func FeelsLikeDelta(temperature, feelsLike float64) float64 {
	return math.Floor((feelsLike-temperature)*10+0.5) / 10
}

// WindCategory buckets a wind speed in m/s. Bounds are closed-open.
func WindCategory(speed float64) string {
	switch {
	case speed < 1:
		return "calm"
	case speed < 5:
		return "light breeze"
	case speed < 10:
		return "gentle breeze"
	case speed < 20:
		return "windy"
	default:
		return "very windy"
	}
}

// LikelyWet reports whether the description mentions rain, drizzle or thunder.
// It is a text heuristic, not a forecast.
func LikelyWet(description string) bool {
	return common.HasAny(strings.ToLower(description), wetKeywords...)
}

// TemperatureLabel returns the unit label for temperatures.
func TemperatureLabel(units Units) string {
	if units == UnitsMetric {
		return "°C"
	}
	return "°F"
}

// TitleCase upper-cases the first character of each whitespace-separated word
// and leaves the rest untouched. Only ASCII whitespace separates words; runs
// of it collapse to one space.
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, isASCIISpace)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
