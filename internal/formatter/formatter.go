// package formatter serializes track lists: the unmatched-tracks side file and plain exports (CSV, text) for inspection
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/danielr460/itunes-spotify-connector/internal/models"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
)

// Recorder writes the unmatched set to a JSON file, one object per record.
//
// Implements tasks.UnmatchedRecorder.
type Recorder struct {
	Pretty bool
}

// NewRecorder creates a Recorder with pretty-printed output.
func NewRecorder() *Recorder {
	return &Recorder{Pretty: true}
}

// Write serializes tracks to path as a JSON array, overwriting any existing file.
//
// An empty unmatched set writes an empty array rather than skipping the file,
// so stale results from a previous run never survive.
func (r *Recorder) Write(tracks []models.Track, path string) error {
	if tracks == nil {
		tracks = []models.Track{}
	}

	data, err := shared.MarshalJSON(tracks, r.Pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal unmatched tracks: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}

	return nil
}

// ReadUnmatched reads a file written by [Recorder.Write] back into tracks.
func ReadUnmatched(path string) ([]models.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unmatched file: %w", err)
	}

	var tracks []models.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse unmatched file: %w", err)
	}

	return tracks, nil
}

// ExportToCSV converts tracks to CSV with columns: Title, Artist, Album, Year
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "Album", "Year"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		year := ""
		if track.Year != 0 {
			year = strconv.Itoa(track.Year)
		}
		record := []string{track.Title, track.Artist, track.Album, year}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToText converts tracks to a numbered plain-text listing
func ExportToText(tracks []models.Track) []byte {
	var buf bytes.Buffer

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s", i+1, track.Artist, track.Title))
		if track.Album != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", track.Album))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// WriteCSVExport writes tracks to a CSV file at path.
func WriteCSVExport(tracks []models.Track, path string) error {
	data, err := ExportToCSV(tracks)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}

	return nil
}
