package models

// Track represents a music track from the iTunes library or a Spotify search result.
type Track struct {
	ID     string `json:"id,omitempty"` // Spotify track ID (destination side only)
	URI    string `json:"uri,omitempty"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// MatchResult pairs a source track with its Spotify match, if any.
//
// Matched is nil when the search succeeded but produced no acceptable
// candidate. Err is set only for transport or API failures.
type MatchResult struct {
	Source  Track  // Original track from the iTunes library
	Matched *Track // Matched Spotify track (nil if not found)
	Err     error  // Error if the search itself failed
}

// Playlist represents a Spotify playlist owned by the authenticated account.
type Playlist struct {
	ID          string
	Name        string
	Description string
	Owner       string
	Public      bool
	TrackCount  int
}

// MigrationSummary contains all data from a completed migration run.
type MigrationSummary struct {
	Playlist      *Playlist     // Created destination playlist
	Matches       []MatchResult // Per-track match results in source order
	Unmatched     []Track       // Tracks with no acceptable Spotify candidate
	UnmatchedPath string        // Path of the written unmatched-tracks file
	Total         int
	MatchedCount  int
}

// UnmatchedCount returns the number of tracks that found no match.
func (s *MigrationSummary) UnmatchedCount() int {
	return len(s.Unmatched)
}

// MatchPercentage returns the success rate of the run as a percentage.
func (s *MigrationSummary) MatchPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.MatchedCount) / float64(s.Total) * 100
}
