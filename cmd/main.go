package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/danielr460/itunes-spotify-connector/internal/services"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.LoadConfig()
	if err != nil {
		logger.Fatalf("configuration error: %v", err)
	}

	if config.LogLevel != "" {
		if level, err := log.ParseLevel(config.LogLevel); err == nil {
			shared.SetLogLevel(logger, level)
		}
	}

	spotify, err := services.NewSpotifyService(config.Credentials(), nil)
	if err != nil {
		logger.Fatalf("failed to create Spotify service: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Spotify: spotify,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "itunes-spotify-connector",
		Usage:    "Migrate an iTunes playlist to Spotify",
		Version:  "1.0.0",
		Action:   runner.MigrateRun, // no flags needed: configuration comes from the environment
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
