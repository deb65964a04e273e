package weather

import (
	"context"
)

// Provider abstracts the current-weather data source (OpenWeatherMap).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string, units Units) (Observation, error)
}
