// package tasks implements the iTunes → Spotify migration pipeline.
//
// The core abstraction is [MigrationEngine], which sequences the run: read the
// library playlist, search each track, create the destination playlist, add
// the matched tracks, and record the unmatched ones. Operations emit progress
// updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/danielr460/itunes-spotify-connector/internal/library"
	"github.com/danielr460/itunes-spotify-connector/internal/models"
	"github.com/danielr460/itunes-spotify-connector/internal/services"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	"golang.org/x/time/rate"
)

// defaultSearchRate paces search calls (requests per second). This is
// client-side politeness, not handling of server rate-limit responses.
const defaultSearchRate = 5.0

// UnmatchedRecorder writes the tracks that found no match to a side file.
type UnmatchedRecorder interface {
	Write(tracks []models.Track, path string) error
}

// MigrationEngine runs the full migration pipeline.
//
// The engine owns no ambient state: the configuration, the authenticated
// service handle, and the recorder are all injected, so tests can substitute
// doubles for each.
type MigrationEngine struct {
	service  services.Service
	config   *shared.Config
	recorder UnmatchedRecorder
	limiter  *rate.Limiter

	// readTracks resolves the configured playlist from the library file.
	// Replaceable in tests to avoid filesystem fixtures.
	readTracks func(path, playlistName string) ([]models.Track, error)
}

// EngineOpts contains configuration options for creating a MigrationEngine.
type EngineOpts struct {
	Service    services.Service
	Config     *shared.Config
	Recorder   UnmatchedRecorder
	SearchRate float64 // searches per second, defaults to 5
}

// NewMigrationEngine creates a new MigrationEngine with the provided dependencies.
func NewMigrationEngine(opts EngineOpts) *MigrationEngine {
	if opts.SearchRate <= 0 {
		opts.SearchRate = defaultSearchRate
	}

	return &MigrationEngine{
		service:  opts.Service,
		config:   opts.Config,
		recorder: opts.Recorder,
		limiter:  rate.NewLimiter(rate.Limit(opts.SearchRate), 1),
		readTracks: func(path, playlistName string) ([]models.Track, error) {
			lib, err := library.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return lib.PlaylistTracks(playlistName)
		},
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *MigrationEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run executes the whole pipeline and returns a summary with counts.
//
// Every source track ends up in exactly one of the created playlist or the
// unmatched file. A failure at any stage aborts the run; there is no partial
// resume, and a re-run creates a fresh playlist rather than mutating a prior
// one.
func (e *MigrationEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*models.MigrationSummary, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if e.config == nil {
		return nil, fmt.Errorf("%w: no configuration provided", shared.ErrMissingConfig)
	}
	if e.recorder == nil {
		return nil, fmt.Errorf("%w: no unmatched recorder provided", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, readLibraryUpdate(e.config.XMLPath))

	tracks, err := e.readTracks(e.config.XMLPath, e.config.PlaylistName)
	if err != nil {
		return nil, err
	}

	total := len(tracks)
	summary := &models.MigrationSummary{Total: total}

	e.sendProgress(progress, foundPlaylistUpdate(e.config.PlaylistName, total))
	e.sendProgress(progress, searchTracksUpdate(0, total, nil))

	matches := make([]models.MatchResult, total)
	matchedURIs := make([]string, 0, total)
	var unmatched []models.Track

	for i, track := range tracks {
		e.sendProgress(progress, searchTracksUpdate(i+1, total, &track))

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		candidate, err := e.service.SearchTrack(ctx, track)
		if err != nil {
			// Transport and auth failures are fatal for the run, not skippable.
			return nil, fmt.Errorf("%w: %q by %q: %v", shared.ErrSearchFailed, track.Title, track.Artist, err)
		}

		matches[i] = models.MatchResult{Source: track, Matched: candidate}

		if candidate != nil {
			matchedURIs = append(matchedURIs, candidate.URI)
		} else {
			unmatched = append(unmatched, track)
		}
	}

	summary.Matches = matches
	summary.MatchedCount = len(matchedURIs)
	summary.Unmatched = unmatched

	e.sendProgress(progress, createPlaylistUpdate(e.config.PlaylistName))

	playlist, err := e.service.CreatePlaylist(ctx, e.config.PlaylistName, e.config.PlaylistDescription)
	if err != nil {
		return summary, fmt.Errorf("failed to create playlist: %w", err)
	}
	summary.Playlist = playlist
	e.sendProgress(progress, playlistCreatedUpdate(playlist))

	if len(matchedURIs) > 0 {
		e.sendProgress(progress, addTracksUpdate(len(matchedURIs)))
		if err := e.service.AddTracks(ctx, playlist.ID, matchedURIs); err != nil {
			return summary, fmt.Errorf("failed to add tracks: %w", err)
		}
		playlist.TrackCount = len(matchedURIs)
	}

	e.sendProgress(progress, writeUnmatchedUpdate(len(unmatched), e.config.OutputPath))

	// Written even when empty so a re-run never leaves a stale file behind.
	if err := e.recorder.Write(unmatched, e.config.OutputPath); err != nil {
		return summary, fmt.Errorf("recording unmatched tracks: %w", err)
	}
	summary.UnmatchedPath = e.config.OutputPath

	return summary, nil
}
