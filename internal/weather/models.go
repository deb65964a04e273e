package weather

import (
	"fmt"
	"strings"
)

// Units is the unit system requested from the provider and echoed in the report.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// ParseUnits accepts "metric" or "imperial" (case-insensitive, surrounding
// whitespace ignored).
func ParseUnits(s string) (Units, error) {
	switch u := Units(strings.ToLower(strings.TrimSpace(s))); u {
	case UnitsMetric, UnitsImperial:
		return u, nil
	default:
		return "", fmt.Errorf("unknown unit system %q: want metric or imperial", s)
	}
}

func (u Units) String() string {
	return string(u)
}

// NoDescription is used when the provider returns no condition text.
const NoDescription = "n/a"

// Observation is the normalized current-weather reading for one fetch.
// Values are never modified after the fetch that produced them.
type Observation struct {
	LocationName    string  `json:"locationName"`
	Description     string  `json:"description"`
	Temperature     float64 `json:"temperature"`
	FeelsLike       float64 `json:"feelsLike"`
	HumidityPercent int     `json:"humidityPercent"`
	WindSpeed       float64 `json:"windSpeed"` // m/s
	ObservedAt      int64   `json:"observedAtEpochSeconds"`
}

// Brief pairs an observation with the report rendered from it.
type Brief struct {
	Observation Observation `json:"observation"`
	Units       Units       `json:"units"`
	Report      string      `json:"report"`
}
