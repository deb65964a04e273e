// Package console is the interactive terminal front end: a menu loop that
// fetches a brief in the background, shows it, and saves it on request.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/i474232898/smart-weather/internal/export"
	"github.com/i474232898/smart-weather/internal/session"
	"github.com/i474232898/smart-weather/internal/weather"
)

const (
	tipLine      = `Tip: try "Twain Harte,US" or "San Francisco,US"`
	progressTick = 500 * time.Millisecond
)

// Console reads commands from in and writes everything user-facing to out.
type Console struct {
	sess  *session.Session
	in    *bufio.Scanner
	out   io.Writer
	city  string
	units weather.Units
}

// New creates a Console with the given pre-filled city and units.
func New(sess *session.Session, in io.Reader, out io.Writer, city string, units weather.Units) *Console {
	return &Console{
		sess:  sess,
		in:    bufio.NewScanner(in),
		out:   out,
		city:  city,
		units: units,
	}
}

// Run loops until the user exits or input ends.
func (c *Console) Run(ctx context.Context) {
	fmt.Fprintln(c.out, tipLine)

	for {
		fmt.Fprintln(c.out, "\n=== Smart Weather ===")
		fmt.Fprintln(c.out, "1. Fetch weather")
		fmt.Fprintln(c.out, "2. Save report")
		fmt.Fprintln(c.out, "0. Exit")
		fmt.Fprint(c.out, "Choose an option: ")

		choice, ok := c.readLine()
		if !ok {
			return
		}

		switch choice {
		case "1":
			c.fetch(ctx)
		case "2":
			c.save()
		case "0":
			fmt.Fprintln(c.out, "Exiting...")
			return
		default:
			fmt.Fprintln(c.out, "Unknown option")
		}
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// prompt shows the current value in brackets; an empty answer keeps it.
func (c *Console) prompt(label, current string) (string, bool) {
	fmt.Fprintf(c.out, "%s [%s]: ", label, current)
	v, ok := c.readLine()
	if !ok {
		return "", false
	}
	if v == "" {
		return current, true
	}
	return v, true
}

func (c *Console) fetch(ctx context.Context) {
	city, ok := c.prompt("City (e.g., Sonora,US)", c.city)
	if !ok {
		return
	}
	rawUnits, ok := c.prompt("Units (metric/imperial)", string(c.units))
	if !ok {
		return
	}
	units, err := weather.ParseUnits(rawUnits)
	if err != nil {
		fmt.Fprintln(c.out, "Please choose metric or imperial.")
		return
	}

	done, err := c.sess.Fetch(ctx, city, units)
	switch {
	case errors.Is(err, weather.ErrEmptyCity):
		fmt.Fprintln(c.out, "Please enter a city (e.g., Sonora,US).")
		return
	case errors.Is(err, session.ErrBusy):
		fmt.Fprintln(c.out, "Please wait for the current fetch to finish.")
		return
	case err != nil:
		fmt.Fprintf(c.out, "Failed to fetch weather.\n\n%v\n", err)
		return
	}
	c.city, c.units = city, units

	fmt.Fprint(c.out, session.FetchingText(strings.TrimSpace(city), units))
	outcome := c.wait(done)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, strings.TrimRight(c.sess.Text(), "\n"))
	if outcome.Err != nil {
		fmt.Fprintf(c.out, "\nFailed to fetch weather.\n\n%v\n", outcome.Err)
	}
}

// wait prints a progress dot per tick until the cycle reports back.
func (c *Console) wait(done <-chan session.Outcome) session.Outcome {
	ticker := time.NewTicker(progressTick)
	defer ticker.Stop()

	for {
		select {
		case o := <-done:
			return o
		case <-ticker.C:
			fmt.Fprint(c.out, ".")
		}
	}
}

func (c *Console) save() {
	path, err := c.sess.Save()
	var persistErr *export.PersistenceError
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Saved:\n%s\n", path)
	case errors.Is(err, session.ErrNothingToSave):
		fmt.Fprintln(c.out, "Nothing to save yet. Fetch weather first.")
	case errors.Is(err, session.ErrBusy):
		fmt.Fprintln(c.out, "Please wait for the current fetch to finish.")
	case errors.As(err, &persistErr):
		fmt.Fprintf(c.out, "Failed to save:\n%v\n", persistErr.Err)
	default:
		fmt.Fprintf(c.out, "Failed to save:\n%v\n", err)
	}
}
