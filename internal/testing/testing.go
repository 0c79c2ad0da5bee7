// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/danielr460/itunes-spotify-connector/internal/models"
)

// MockService is a recording test double for [services.Service].
//
// Behavior is driven by the lookup table and error fields; every call is
// appended to the corresponding slice so tests can assert call order.
type MockService struct {
	// Matches maps "artist|title" to the track SearchTrack returns.
	// A source track absent from the map yields a nil match.
	Matches map[string]models.Track

	SearchErr error
	CreateErr error
	AddErr    error

	Searched      []models.Track
	Created       []models.Playlist
	AddedTrackIDs [][]string

	PlaylistID string
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockService) SearchTrack(ctx context.Context, track models.Track) (*models.Track, error) {
	m.Searched = append(m.Searched, track)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if matched, ok := m.Matches[track.Artist+"|"+track.Title]; ok {
		return &matched, nil
	}
	return nil, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	id := m.PlaylistID
	if id == "" {
		id = "playlist_1"
	}
	pl := models.Playlist{ID: id, Name: name, Description: description, Public: true}
	m.Created = append(m.Created, pl)
	return &pl, nil
}

func (m *MockService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	m.AddedTrackIDs = append(m.AddedTrackIDs, uris)
	return nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
