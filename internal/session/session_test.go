package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/smart-weather/internal/export"
	"github.com/i474232898/smart-weather/internal/weather"
)

// gatedBriefer blocks each call until release is closed.
type gatedBriefer struct {
	release chan struct{}
	report  string
	err     error
	panics  any
}

func newGatedBriefer() *gatedBriefer {
	return &gatedBriefer{release: make(chan struct{}), report: "=== Smart Weather Brief ===\nLocation: Sonora\n"}
}

func (b *gatedBriefer) Brief(_ context.Context, city string, units weather.Units) (weather.Brief, error) {
	<-b.release
	if b.panics != nil {
		panic(b.panics)
	}
	if b.err != nil {
		return weather.Brief{}, b.err
	}
	return weather.Brief{
		Observation: weather.Observation{LocationName: city},
		Units:       units,
		Report:      b.report,
	}, nil
}

type failingSaver struct {
	err   error
	calls int
}

func (s *failingSaver) Save(string) (string, error) {
	s.calls++
	return "", s.err
}

func waitOutcome(t *testing.T, done <-chan Outcome) Outcome {
	t.Helper()
	select {
	case o := <-done:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func TestFetchSuccess(t *testing.T) {
	b := newGatedBriefer()
	s := New(b, export.NewWriter(t.TempDir()))

	done, err := s.Fetch(context.Background(), "  Sonora,US ", weather.UnitsMetric)
	require.NoError(t, err)

	assert.True(t, s.Busy())
	assert.Equal(t, "Fetching weather for Sonora,US (metric)...\n", s.Text())

	close(b.release)
	o := waitOutcome(t, done)

	require.NoError(t, o.Err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "Sonora,US", o.Brief.Observation.LocationName)
	assert.False(t, s.Busy(), "busy is cleared before the outcome is delivered")
	assert.Equal(t, b.report, s.Text())

	_, open := <-done
	assert.False(t, open, "channel is closed after the outcome")
}

func TestFetchRejectsBlankCity(t *testing.T) {
	s := New(newGatedBriefer(), export.NewWriter(t.TempDir()))

	done, err := s.Fetch(context.Background(), " \t ", weather.UnitsMetric)

	assert.ErrorIs(t, err, weather.ErrEmptyCity)
	assert.Nil(t, done)
	assert.False(t, s.Busy())
	assert.Empty(t, s.Text())
}

func TestFetchRejectsWhileBusy(t *testing.T) {
	b := newGatedBriefer()
	s := New(b, export.NewWriter(t.TempDir()))

	done, err := s.Fetch(context.Background(), "Sonora,US", weather.UnitsMetric)
	require.NoError(t, err)
	placeholder := s.Text()

	_, err = s.Fetch(context.Background(), "Oslo", weather.UnitsImperial)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, placeholder, s.Text(), "rejected fetch leaves the text alone")

	_, err = s.Save()
	assert.ErrorIs(t, err, ErrBusy)

	close(b.release)
	waitOutcome(t, done)

	// A new cycle may start once the previous one has finished.
	b.release = make(chan struct{})
	close(b.release)
	done, err = s.Fetch(context.Background(), "Oslo", weather.UnitsImperial)
	require.NoError(t, err)
	o := waitOutcome(t, done)
	assert.Equal(t, weather.UnitsImperial, o.Brief.Units)
}

func TestFetchFailureShowsError(t *testing.T) {
	b := newGatedBriefer()
	b.err = &weather.RequestError{StatusCode: 404, Body: `{"message":"city not found"}`}
	close(b.release)
	s := New(b, export.NewWriter(t.TempDir()))

	done, err := s.Fetch(context.Background(), "Atlantis", weather.UnitsMetric)
	require.NoError(t, err)
	o := waitOutcome(t, done)

	var reqErr *weather.RequestError
	require.True(t, errors.As(o.Err, &reqErr))
	assert.False(t, s.Busy())
	assert.Equal(t, "Error:\n"+b.err.Error(), s.Text())
	assert.Contains(t, s.Text(), "404")
}

func TestFetchRecoversPanic(t *testing.T) {
	b := newGatedBriefer()
	b.panics = "boom"
	close(b.release)
	s := New(b, export.NewWriter(t.TempDir()))

	done, err := s.Fetch(context.Background(), "Sonora,US", weather.UnitsMetric)
	require.NoError(t, err)
	o := waitOutcome(t, done)

	require.Error(t, o.Err)
	assert.Contains(t, o.Err.Error(), "boom")
	assert.False(t, s.Busy(), "a panicking cycle still releases the session")
	assert.Contains(t, s.Text(), "Error:\n")
}

func TestSaveNothingToSave(t *testing.T) {
	saver := &failingSaver{}
	s := New(newGatedBriefer(), saver)

	_, err := s.Save()

	assert.ErrorIs(t, err, ErrNothingToSave)
	assert.Zero(t, saver.calls)
}

func TestSaveWritesDisplayedReport(t *testing.T) {
	dir := t.TempDir()
	b := newGatedBriefer()
	close(b.release)
	s := New(b, export.NewWriter(dir))

	done, err := s.Fetch(context.Background(), "Sonora,US", weather.UnitsMetric)
	require.NoError(t, err)
	waitOutcome(t, done)

	path, err := s.Save()
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "=== Smart Weather Brief ===\nLocation: Sonora\n", string(data))
	assert.Equal(t, b.report, s.Text(), "saving leaves the text unchanged")
}

func TestSaveFailureKeepsText(t *testing.T) {
	b := newGatedBriefer()
	close(b.release)
	saver := &failingSaver{err: &export.PersistenceError{Path: "/nope/x.txt", Err: os.ErrPermission}}
	s := New(b, saver)

	done, err := s.Fetch(context.Background(), "Sonora,US", weather.UnitsMetric)
	require.NoError(t, err)
	waitOutcome(t, done)

	_, err = s.Save()
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, b.report, s.Text())

	// Retrying with a working destination succeeds.
	s.saver = export.NewWriter(t.TempDir())
	_, err = s.Save()
	assert.NoError(t, err)
	assert.Equal(t, 1, saver.calls)
}
