package library

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	tu "github.com/danielr460/itunes-spotify-connector/internal/testing"
)

const sampleLibrary = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Application Version</key><string>12.9.0.167</string>
	<key>Tracks</key>
	<dict>
		<key>2771</key>
		<dict>
			<key>Track ID</key><integer>2771</integer>
			<key>Name</key><string>Breathe</string>
			<key>Artist</key><string>Pink Floyd</string>
			<key>Album</key><string>The Dark Side of the Moon</string>
			<key>Year</key><integer>1973</integer>
			<key>Total Time</key><integer>169000</integer>
		</dict>
		<key>2773</key>
		<dict>
			<key>Track ID</key><integer>2773</integer>
			<key>Name</key><string>Time</string>
			<key>Artist</key><string>Pink Floyd</string>
			<key>Album</key><string>The Dark Side of the Moon</string>
			<key>Year</key><integer>1973</integer>
		</dict>
		<key>2775</key>
		<dict>
			<key>Track ID</key><integer>2775</integer>
			<key>Name</key><string>Untitled Demo</string>
		</dict>
	</dict>
	<key>Playlists</key>
	<array>
		<dict>
			<key>Name</key><string>Library</string>
			<key>Master</key><true/>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>2771</integer></dict>
				<dict><key>Track ID</key><integer>2773</integer></dict>
				<dict><key>Track ID</key><integer>2775</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Prog Rock</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>2773</integer></dict>
				<dict><key>Track ID</key><integer>2771</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Empty</string>
		</dict>
	</array>
</dict>
</plist>
`

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Library.xml")
	tu.MustWriteFile(t, path, content)
	return path
}

func TestReadFile(t *testing.T) {
	lib, err := ReadFile(writeLibrary(t, sampleLibrary))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	t.Run("track count", func(t *testing.T) {
		if got := lib.TrackCount(); got != 3 {
			t.Errorf("TrackCount() = %d, want 3", got)
		}
	})

	t.Run("playlists in source order", func(t *testing.T) {
		playlists := lib.Playlists()
		if len(playlists) != 3 {
			t.Fatalf("Playlists() returned %d playlists, want 3", len(playlists))
		}

		wantNames := []string{"Library", "Prog Rock", "Empty"}
		for i, want := range wantNames {
			if playlists[i].Name != want {
				t.Errorf("Playlists()[%d].Name = %q, want %q", i, playlists[i].Name, want)
			}
		}
		if len(playlists[1].TrackIDs) != 2 {
			t.Errorf("Prog Rock has %d track IDs, want 2", len(playlists[1].TrackIDs))
		}
		if len(playlists[2].TrackIDs) != 0 {
			t.Errorf("Empty has %d track IDs, want 0", len(playlists[2].TrackIDs))
		}
	})

	t.Run("playlist tracks preserve item order", func(t *testing.T) {
		tracks, err := lib.PlaylistTracks("Prog Rock")
		if err != nil {
			t.Fatalf("PlaylistTracks() error = %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("PlaylistTracks() returned %d tracks, want 2", len(tracks))
		}
		// Prog Rock lists Time before Breathe, reversing library order.
		if tracks[0].Title != "Time" || tracks[1].Title != "Breathe" {
			t.Errorf("PlaylistTracks() order = [%q, %q], want [Time, Breathe]", tracks[0].Title, tracks[1].Title)
		}
	})

	t.Run("track metadata mapped", func(t *testing.T) {
		tracks, err := lib.PlaylistTracks("Prog Rock")
		if err != nil {
			t.Fatalf("PlaylistTracks() error = %v", err)
		}

		breathe := tracks[1]
		if breathe.Artist != "Pink Floyd" {
			t.Errorf("Artist = %q, want %q", breathe.Artist, "Pink Floyd")
		}
		if breathe.Album != "The Dark Side of the Moon" {
			t.Errorf("Album = %q, want %q", breathe.Album, "The Dark Side of the Moon")
		}
		if breathe.Year != 1973 {
			t.Errorf("Year = %d, want 1973", breathe.Year)
		}
	})

	t.Run("sparse metadata leaves zero values", func(t *testing.T) {
		tracks, err := lib.PlaylistTracks("Library")
		if err != nil {
			t.Fatalf("PlaylistTracks() error = %v", err)
		}

		demo := tracks[2]
		if demo.Title != "Untitled Demo" {
			t.Fatalf("Title = %q, want %q", demo.Title, "Untitled Demo")
		}
		if demo.Artist != "" || demo.Album != "" || demo.Year != 0 {
			t.Errorf("sparse track = %+v, want empty artist/album/year", demo)
		}
	})

	t.Run("empty playlist resolves to no tracks", func(t *testing.T) {
		tracks, err := lib.PlaylistTracks("Empty")
		if err != nil {
			t.Fatalf("PlaylistTracks() error = %v", err)
		}
		if len(tracks) != 0 {
			t.Errorf("PlaylistTracks() returned %d tracks, want 0", len(tracks))
		}
	})

	t.Run("unknown playlist", func(t *testing.T) {
		if _, err := lib.PlaylistTracks("No Such Playlist"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("PlaylistTracks() error = %v, want ErrPlaylistNotFound", err)
		}
	})
}

func TestReadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.xml")); !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("ReadFile() error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("malformed XML", func(t *testing.T) {
		path := writeLibrary(t, `<plist version="1.0"><dict><key>Tracks`)
		if _, err := ReadFile(path); !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("ReadFile() error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("root is not a dict", func(t *testing.T) {
		path := writeLibrary(t, `<plist version="1.0"><array/></plist>`)
		if _, err := ReadFile(path); !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("ReadFile() error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("missing Tracks dict", func(t *testing.T) {
		path := writeLibrary(t, `<plist version="1.0"><dict><key>Playlists</key><array/></dict></plist>`)
		if _, err := ReadFile(path); !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("ReadFile() error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("missing Playlists array", func(t *testing.T) {
		path := writeLibrary(t, `<plist version="1.0"><dict><key>Tracks</key><dict/></dict></plist>`)
		if _, err := ReadFile(path); !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("ReadFile() error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("dangling track reference", func(t *testing.T) {
		const dangling = `<plist version="1.0">
<dict>
	<key>Tracks</key>
	<dict>
		<key>1</key>
		<dict><key>Name</key><string>Song</string></dict>
	</dict>
	<key>Playlists</key>
	<array>
		<dict>
			<key>Name</key><string>Broken</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>999</integer></dict>
			</array>
		</dict>
	</array>
</dict>
</plist>`

		lib, err := ReadFile(writeLibrary(t, dangling))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if _, err := lib.PlaylistTracks("Broken"); !errors.Is(err, shared.ErrParseFailed) {
			t.Errorf("PlaylistTracks() error = %v, want ErrParseFailed", err)
		}
	})
}
