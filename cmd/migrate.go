package main

import (
	"context"

	"github.com/danielr460/itunes-spotify-connector/internal/library"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	"github.com/danielr460/itunes-spotify-connector/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MigrateRun runs the full iTunes → Spotify migration.
//
// This is also the application's default action when invoked with no
// arguments: everything it needs comes from the environment.
func (r *Runner) MigrateRun(ctx context.Context, cmd *cli.Command) error {
	logger := shared.WithLogger(r.logger, "playlist", r.config.PlaylistName)
	logger.Info("starting migration", "library", r.config.XMLPath)
	r.writePlain("Starting playlist migration...\n")
	r.writePlain("Library: %s\n", r.config.XMLPath)
	r.writePlain("Playlist: %s\n\n", r.config.PlaylistName)

	// Resolve the playlist before authenticating so a bad library file or
	// playlist name aborts without any network traffic.
	lib, err := library.ReadFile(r.config.XMLPath)
	if err != nil {
		return err
	}
	if _, err := lib.PlaylistTracks(r.config.PlaylistName); err != nil {
		return err
	}

	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	// Progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ReadLibrary:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SearchTracks:
				if update.Step == 0 {
					r.writePlain("\n🔍 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.CreatePlaylist, tasks.AddTracks:
				r.writePlain("\n📝 %s\n", update.Message)
			case tasks.WriteUnmatched:
				r.writePlain("\n💾 %s\n", update.Message)
			}
		}
	}()

	engine := r.newEngine(r.config.PlaylistName)
	result, err := engine.Run(ctx, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Migration Complete!")
	r.writePlain("Source: %s (%d tracks)\n", r.config.PlaylistName, result.Total)
	r.writePlain("Destination: %s (ID: %s)\n", result.Playlist.Name, result.Playlist.ID)
	r.writePlain("Matched: %d/%d (%.1f%%)\n", result.MatchedCount, result.Total, result.MatchPercentage())

	if len(result.Unmatched) > 0 {
		r.writePlain("\nNo match for %d tracks (saved to %s):\n", len(result.Unmatched), result.UnmatchedPath)
		for _, track := range result.Unmatched {
			r.writePlain("  - %s - %s\n", track.Artist, track.Title)
		}
	}

	logger.Info("migration finished",
		"total", result.Total,
		"matched", result.MatchedCount,
		"unmatched", len(result.Unmatched),
	)

	return nil
}

// migrateCommand runs the full migration pipeline
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Migrate the configured iTunes playlist to Spotify",
		Action: r.MigrateRun,
	}
}
