// Package export writes rendered briefs to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileLayout = "20060102_150405"

// PersistenceError reports a failed save. The in-memory report is unaffected.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Writer saves report text as weather_summary_<timestamp>.txt under Dir.
type Writer struct {
	Dir string           // empty means the current working directory
	Now func() time.Time // defaults to time.Now
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

// FileName returns the report file name for a save at t (local time).
func FileName(t time.Time) string {
	return "weather_summary_" + t.Local().Format(fileLayout) + ".txt"
}

// Save writes the trimmed text plus one trailing newline and returns the
// absolute path of the file.
func (w *Writer) Save(text string) (string, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	path := filepath.Join(w.Dir, FileName(now()))
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	content := strings.TrimSpace(text) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}
	return path, nil
}
