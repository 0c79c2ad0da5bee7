package tasks

import (
	"fmt"

	"github.com/danielr460/itunes-spotify-connector/internal/models"
)

// ProgressUpdate represents a progress event during a migration run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReadLibrary Phase = iota
	SearchTracks
	CreatePlaylist
	AddTracks
	WriteUnmatched
)

func (p Phase) String() string {
	switch p {
	case ReadLibrary:
		return "read_library"
	case SearchTracks:
		return "search_tracks"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	case WriteUnmatched:
		return "write_unmatched"
	default:
		return ""
	}
}

func readLibraryUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadLibrary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reading iTunes library %s...", path),
	}
}

func foundPlaylistUpdate(name string, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadLibrary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", name, total),
	}
}

func searchTracksUpdate(step, total int, tr *models.Track) ProgressUpdate {
	if tr == nil {
		return ProgressUpdate{
			Phase:   SearchTracks,
			Step:    step,
			Total:   total,
			Message: "Searching for tracks on Spotify...",
		}
	}
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, tr.Artist, tr.Title),
	}
}

func createPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q on Spotify...", name),
	}
}

func playlistCreatedUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}

func addTracksUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Adding %d matched tracks...", count),
	}
}

func writeUnmatchedUpdate(count int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteUnmatched,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d unmatched tracks to %s...", count, path),
	}
}
