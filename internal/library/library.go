// Package library reads playlists out of an iTunes property-list XML export.
//
// The iTunes "Library.xml" format is a plist whose root dict carries a
// "Tracks" dict (track ID → track metadata) and a "Playlists" array. Playlist
// entries reference tracks by ID, so resolving a playlist means joining its
// "Playlist Items" against the Tracks dict while preserving source order.
package library

import (
	"fmt"
	"os"
	"strconv"

	"github.com/danielr460/itunes-spotify-connector/internal/models"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
)

// Playlist is a named playlist in the library with its track IDs in source order.
type Playlist struct {
	Name     string
	TrackIDs []int64
}

// Library represents a parsed iTunes library.
type Library struct {
	tracks    map[string]models.Track // keyed by the plist Track ID string
	playlists []Playlist
}

// ReadFile parses the iTunes library XML at path.
//
// Returns an error wrapping [shared.ErrParseFailed] when the file is missing,
// the XML is malformed, or the document lacks the expected plist structure.
func ReadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseFailed, err)
	}
	defer f.Close()

	root, err := parsePlist(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseFailed, err)
	}

	rootDict, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: plist root is not a dict", shared.ErrParseFailed)
	}

	lib := &Library{tracks: make(map[string]models.Track)}

	if err := lib.loadTracks(rootDict); err != nil {
		return nil, err
	}
	if err := lib.loadPlaylists(rootDict); err != nil {
		return nil, err
	}

	return lib, nil
}

func (l *Library) loadTracks(root map[string]any) error {
	tracksDict, ok := root["Tracks"].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: library has no Tracks dict", shared.ErrParseFailed)
	}

	for id, raw := range tracksDict {
		entry, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: track %s is not a dict", shared.ErrParseFailed, id)
		}
		l.tracks[id] = trackFromEntry(entry)
	}

	return nil
}

func (l *Library) loadPlaylists(root map[string]any) error {
	playlistsArr, ok := root["Playlists"].([]any)
	if !ok {
		return fmt.Errorf("%w: library has no Playlists array", shared.ErrParseFailed)
	}

	for _, raw := range playlistsArr {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["Name"].(string)

		pl := Playlist{Name: name}
		if items, ok := entry["Playlist Items"].([]any); ok {
			for _, rawItem := range items {
				item, ok := rawItem.(map[string]any)
				if !ok {
					continue
				}
				if id, ok := item["Track ID"].(int64); ok {
					pl.TrackIDs = append(pl.TrackIDs, id)
				}
			}
		}

		l.playlists = append(l.playlists, pl)
	}

	return nil
}

// trackFromEntry maps the iTunes track dict keys onto a [models.Track].
func trackFromEntry(entry map[string]any) models.Track {
	track := models.Track{}

	if v, ok := entry["Name"].(string); ok {
		track.Title = v
	}
	if v, ok := entry["Artist"].(string); ok {
		track.Artist = v
	}
	if v, ok := entry["Album"].(string); ok {
		track.Album = v
	}
	if v, ok := entry["Year"].(int64); ok {
		track.Year = int(v)
	}

	return track
}

// Playlists returns the names of all playlists in the library, in source order.
func (l *Library) Playlists() []Playlist {
	return l.playlists
}

// TrackCount returns the number of tracks in the library's Tracks dict.
func (l *Library) TrackCount() int {
	return len(l.tracks)
}

// PlaylistTracks resolves the named playlist into its tracks in source order.
//
// A playlist item referencing a track ID absent from the Tracks dict is a
// structural error, not a skippable entry: silently dropping it would break
// the one-record-in, one-record-out accounting downstream.
func (l *Library) PlaylistTracks(name string) ([]models.Track, error) {
	for _, pl := range l.playlists {
		if pl.Name != name {
			continue
		}

		tracks := make([]models.Track, 0, len(pl.TrackIDs))
		for _, id := range pl.TrackIDs {
			track, ok := l.tracks[strconv.FormatInt(id, 10)]
			if !ok {
				return nil, fmt.Errorf("%w: playlist %q references unknown track ID %d", shared.ErrParseFailed, name, id)
			}
			tracks = append(tracks, track)
		}
		return tracks, nil
	}

	return nil, fmt.Errorf("%w: no playlist named %q in library", shared.ErrPlaylistNotFound, name)
}
