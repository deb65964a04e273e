package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/i474232898/smart-weather/internal/weather"
	"github.com/sony/gobreaker"
)

var (
	// ErrCircuitOpen is returned without calling upstream while the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	errNoHTTPClient = errors.New("http client not configured")
)

// rawResponse is an upstream reply with its body fully read.
type rawResponse struct {
	StatusCode int
	Body       []byte
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest executes exactly one HTTP request through the circuit breaker and
// reads the whole body. Transport errors and 5xx replies count as breaker
// failures; 5xx replies come back as *weather.RequestError. Any other status
// is returned to the caller to judge.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) (rawResponse, error) {
	if client == nil {
		return rawResponse{}, errNoHTTPClient
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("read response body: %w", readErr)
		}

		if resp.StatusCode >= 500 {
			return nil, &weather.RequestError{StatusCode: resp.StatusCode, Body: string(body)}
		}
		return rawResponse{StatusCode: resp.StatusCode, Body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return rawResponse{}, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return rawResponse{}, err
	}

	raw, ok := result.(rawResponse)
	if !ok {
		return rawResponse{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return raw, nil
}
