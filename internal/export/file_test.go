package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "weather_summary_20240102_030405.txt", FileName(fixedClock()))
}

func TestWriterSave(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Now: fixedClock}

	path, err := w.Save("=== Smart Weather Brief ===\nLocation: Sonora\n\n")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(dir, "weather_summary_20240102_030405.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "=== Smart Weather Brief ===\nLocation: Sonora\n", string(data))
}

func TestWriterSaveFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "dir")
	w := &Writer{Dir: dir, Now: fixedClock}

	_, err := w.Save("report")

	var persistErr *PersistenceError
	require.True(t, errors.As(err, &persistErr), "got %v", err)
	assert.Equal(t, filepath.Join(dir, "weather_summary_20240102_030405.txt"), persistErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
