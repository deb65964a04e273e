package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/i474232898/smart-weather/internal/config"
	"github.com/i474232898/smart-weather/internal/console"
	"github.com/i474232898/smart-weather/internal/export"
	"github.com/i474232898/smart-weather/internal/session"
	"github.com/i474232898/smart-weather/internal/weather"
	"github.com/i474232898/smart-weather/internal/weather/providers"
)

func main() {
	// Logs go to stderr so they stay out of the report on stdout.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	provider := providers.NewOpenWeatherProvider(&http.Client{}, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
	service := weather.NewService(provider)
	sess := session.New(service, export.NewWriter(cfg.ReportDir))

	// A started fetch always runs to completion; nothing cancels it.
	console.New(sess, os.Stdin, os.Stdout, cfg.DefaultCity, cfg.Units()).Run(context.Background())
}
