package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/i474232898/smart-weather/internal/common"
	"github.com/i474232898/smart-weather/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultOpenWeatherURL is the current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

// NewOpenWeatherProvider creates a provider. An empty baseURL selects
// DefaultOpenWeatherURL.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openweather"),
		now:     time.Now,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// RequestURL builds the query URL. Only spaces in the city are escaped;
// the rest of the name is passed through as typed.
func (p *OpenWeatherProvider) RequestURL(city string, units weather.Units) string {
	return fmt.Sprintf("%s?q=%s&units=%s&appid=%s", p.baseURL, common.EscapeSpaces(city), units, p.apiKey)
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, city string, units weather.Units) (weather.Observation, error) {
	if p.apiKey == "" {
		return weather.Observation{}, weather.ErrMissingAPIKey
	}

	req, err := http.NewRequest(http.MethodGet, p.RequestURL(city, units), nil)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("openweather: build request: %w", err)
	}

	raw, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		return weather.Observation{}, err
	}
	if raw.StatusCode != http.StatusOK {
		return weather.Observation{}, &weather.RequestError{StatusCode: raw.StatusCode, Body: string(raw.Body)}
	}

	obs, err := p.parse(raw.Body, city)
	if err != nil {
		log.Printf("openweather: unusable payload for %q: %v", city, err)
		return weather.Observation{}, &weather.RequestError{StatusCode: raw.StatusCode, Body: string(raw.Body), Err: err}
	}
	return obs, nil
}

// owmPayload mirrors the fields we read. Pointers tell absent from zero.
type owmPayload struct {
	Name *string `json:"name"`
	Dt   *int64  `json:"dt"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
}

var errMissingMain = errors.New("missing main object")

func missingField(name string) error {
	return fmt.Errorf("missing main.%s", name)
}

func (p *OpenWeatherProvider) parse(body []byte, city string) (weather.Observation, error) {
	var payload owmPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Observation{}, err
	}

	m := payload.Main
	switch {
	case m == nil:
		return weather.Observation{}, errMissingMain
	case m.Temp == nil:
		return weather.Observation{}, missingField("temp")
	case m.FeelsLike == nil:
		return weather.Observation{}, missingField("feels_like")
	case m.Humidity == nil:
		return weather.Observation{}, missingField("humidity")
	}

	obs := weather.Observation{
		LocationName:    city,
		Description:     weather.NoDescription,
		Temperature:     *m.Temp,
		FeelsLike:       *m.FeelsLike,
		HumidityPercent: int(*m.Humidity),
		ObservedAt:      p.now().Unix(),
	}
	if payload.Name != nil {
		obs.LocationName = *payload.Name
	}
	if payload.Dt != nil {
		obs.ObservedAt = *payload.Dt
	}
	if payload.Wind != nil && payload.Wind.Speed != nil {
		obs.WindSpeed = *payload.Wind.Speed
	}
	if len(payload.Weather) > 0 && payload.Weather[0].Description != nil {
		obs.Description = *payload.Weather[0].Description
	}
	return obs, nil
}
