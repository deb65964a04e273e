package weather

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// Service runs one fetch-and-render cycle: provider fetch, then report.
type Service struct {
	provider Provider
	location *time.Location
}

// NewService creates a new Service that renders timestamps in the local zone.
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
		location: time.Local,
	}
}

// WithLocation returns a copy of the service rendering timestamps in loc.
func (s *Service) WithLocation(loc *time.Location) *Service {
	cp := *s
	cp.location = loc
	return &cp
}

// Brief fetches the current weather for city and renders the report.
// A blank city is rejected before any network call.
func (s *Service) Brief(ctx context.Context, city string, units Units) (Brief, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Brief{}, ErrEmptyCity
	}
	if s.provider == nil {
		return Brief{}, fmt.Errorf("no weather provider configured")
	}

	log.Printf("DEBUG: Brief called for %q (%s) via %s", city, units, s.provider.Name())

	obs, err := s.provider.Fetch(ctx, city, units)
	if err != nil {
		log.Printf("ERROR: %s fetch failed for %q: %v", s.provider.Name(), city, err)
		return Brief{}, err
	}

	return Brief{
		Observation: obs,
		Units:       units,
		Report:      RenderReport(obs, units, s.location),
	}, nil
}

// Summary derives the report facts for an observation in the service's zone.
func (s *Service) Summary(obs Observation, units Units) Summary {
	return Summarize(obs, units, s.location)
}
