// Package session holds the display state of the interactive front end:
// the text currently shown and whether a fetch is in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/smart-weather/internal/weather"
)

var (
	// ErrBusy is returned while a fetch-and-render cycle is running.
	ErrBusy = errors.New("a weather fetch is already in progress")

	// ErrNothingToSave is returned when no report is displayed.
	ErrNothingToSave = errors.New("nothing to save yet")
)

// Briefer produces a rendered brief for a city.
type Briefer interface {
	Brief(ctx context.Context, city string, units weather.Units) (weather.Brief, error)
}

// Saver persists report text and returns where it went.
type Saver interface {
	Save(text string) (string, error)
}

// Outcome is delivered once per cycle when it finishes.
type Outcome struct {
	ID    string
	Brief weather.Brief
	Err   error
}

// Session is safe for concurrent use. At most one cycle runs at a time.
type Session struct {
	mu   sync.RWMutex
	busy bool
	text string

	briefer Briefer
	saver   Saver
}

// New creates a Session.
func New(briefer Briefer, saver Saver) *Session {
	return &Session{
		briefer: briefer,
		saver:   saver,
	}
}

// Fetch starts a cycle in the background. Blank input and a cycle already in
// flight are rejected without touching the displayed text. The returned
// channel receives exactly one Outcome and is then closed.
func (s *Session) Fetch(ctx context.Context, city string, units weather.Units) (<-chan Outcome, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, weather.ErrEmptyCity
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	s.text = FetchingText(city, units)
	s.mu.Unlock()

	id := uuid.NewString()
	out := make(chan Outcome, 1)

	go func() {
		defer close(out)
		out <- s.cycle(ctx, id, city, units)
	}()

	return out, nil
}

// FetchingText is the placeholder shown while a cycle for city is running.
func FetchingText(city string, units weather.Units) string {
	return fmt.Sprintf("Fetching weather for %s (%s)...\n", city, units)
}

// cycle runs one fetch and updates the displayed text. The busy flag is
// cleared before the outcome is delivered.
func (s *Session) cycle(ctx context.Context, id, city string, units weather.Units) Outcome {
	defer s.release()

	log.Printf("INFO: session: cycle %s started for %q (%s)", id, city, units)
	o := s.run(ctx, id, city, units)
	if o.Err != nil {
		log.Printf("ERROR: session: cycle %s failed: %v", id, o.Err)
		s.setText("Error:\n" + o.Err.Error())
		return o
	}

	log.Printf("INFO: session: cycle %s completed", id)
	s.setText(o.Brief.Report)
	return o
}

// run calls the briefer and turns a panic into an error so the cycle always
// reports an outcome.
func (s *Session) run(ctx context.Context, id, city string, units weather.Units) (o Outcome) {
	o.ID = id
	defer func() {
		if r := recover(); r != nil {
			o.Err = fmt.Errorf("weather fetch aborted: %v", r)
		}
	}()
	o.Brief, o.Err = s.briefer.Brief(ctx, city, units)
	return o
}

func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

func (s *Session) setText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// Busy reports whether a cycle is running.
func (s *Session) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// Text returns the currently displayed text.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Save writes the displayed text. A failed save leaves the text in place so
// it can be saved again.
func (s *Session) Save() (string, error) {
	s.mu.RLock()
	busy, text := s.busy, strings.TrimSpace(s.text)
	s.mu.RUnlock()

	if busy {
		return "", ErrBusy
	}
	if text == "" {
		return "", ErrNothingToSave
	}

	path, err := s.saver.Save(text)
	if err != nil {
		log.Printf("ERROR: session: save failed: %v", err)
		return "", err
	}
	log.Printf("INFO: session: report saved to %s", path)
	return path, nil
}
