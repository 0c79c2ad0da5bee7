package main

import (
	"context"
	"fmt"

	"github.com/danielr460/itunes-spotify-connector/internal/formatter"
	"github.com/danielr460/itunes-spotify-connector/internal/library"
	"github.com/urfave/cli/v3"
)

// LibraryPlaylists lists the playlists found in the iTunes library export.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	lib, err := library.ReadFile(r.config.XMLPath)
	if err != nil {
		return err
	}

	playlists := lib.Playlists()

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlainHeader(fmt.Sprintf("Playlists in %s", r.config.XMLPath))
	for i, p := range playlists {
		r.writePlain("%d. %s (%d tracks)\n", i+1, p.Name, len(p.TrackIDs))
	}
	r.writePlain("\n%d playlists, %d tracks in library\n", len(playlists), lib.TrackCount())

	return nil
}

// LibraryTracks lists the tracks of a single playlist, optionally exporting
// them to CSV.
func (r *Runner) LibraryTracks(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("playlist")
	if name == "" {
		name = r.config.PlaylistName
	}

	lib, err := library.ReadFile(r.config.XMLPath)
	if err != nil {
		return err
	}

	tracks, err := lib.PlaylistTracks(name)
	if err != nil {
		return err
	}

	if path := cmd.String("csv"); path != "" {
		if err := formatter.WriteCSVExport(tracks, path); err != nil {
			return err
		}
		r.writePlain("✓ Wrote %d tracks to %s\n", len(tracks), path)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d tracks)", name, len(tracks)))
	for i, t := range tracks {
		if t.Album != "" {
			r.writePlain("%d. %s — %s [%s]\n", i+1, t.Artist, t.Title, t.Album)
		} else {
			r.writePlain("%d. %s — %s\n", i+1, t.Artist, t.Title)
		}
	}

	return nil
}

// libraryCommand inspects the iTunes XML export without touching Spotify
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Inspect the iTunes library export",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List playlists in the library",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryPlaylists,
			},
			{
				Name:  "tracks",
				Usage: "List tracks of a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "playlist",
						Aliases: []string{"p"},
						Usage:   "Playlist name (defaults to PLAYLIST_NAME)",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Write tracks to a CSV file at the given path",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryTracks,
			},
		},
	}
}
