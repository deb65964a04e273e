package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCity is returned before any network call when the city is blank.
	ErrEmptyCity = errors.New("city must not be empty")

	// ErrMissingAPIKey is returned when the provider has no credential configured.
	ErrMissingAPIKey = errors.New("openweather api key is not configured")
)

// RequestError reports an upstream response that was not usable: either a
// non-200 status or a body that could not be parsed into an Observation.
type RequestError struct {
	StatusCode int
	Body       string
	Err        error // parse failure, nil for status failures
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d -> malformed response: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d -> %s", e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
