package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/smart-weather/internal/weather"
	"github.com/i474232898/smart-weather/internal/weather/providers"
)

// DefaultCity is pre-filled when WEATHER_DEFAULT_CITY is unset.
const DefaultCity = "Sonora,US"

type AppConfig struct {
	OpenWeatherAPIKey  string `validate:"required"`
	OpenWeatherBaseURL string `validate:"required,url"`

	// Values pre-filled in the front ends.
	DefaultCity  string `validate:"required"`
	DefaultUnits string `validate:"required,oneof=metric imperial"`

	// ReportDir is where saved briefs are written.
	ReportDir string

	Port string `validate:"required,numeric"`

	// LogFile, when set, receives log output of the terminal front end.
	LogFile string
}

var validate = validator.New()

// Load reads configuration from environment (and .env when present) with
// sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultOpenWeatherURL),
		DefaultCity:        getenvDefault("WEATHER_DEFAULT_CITY", DefaultCity),
		DefaultUnits:       strings.ToLower(strings.TrimSpace(getenvDefault("WEATHER_DEFAULT_UNITS", string(weather.UnitsMetric)))),
		ReportDir:          getenvDefault("REPORT_DIR", "."),
		Port:               getenvDefault("PORT", "8080"),
		LogFile:            os.Getenv("LOG_FILE"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Units returns the configured default unit system.
func (c *AppConfig) Units() weather.Units {
	u, err := weather.ParseUnits(c.DefaultUnits)
	if err != nil {
		return weather.UnitsMetric
	}
	return u
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
