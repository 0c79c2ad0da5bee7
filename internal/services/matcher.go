package services

import (
	"github.com/danielr460/itunes-spotify-connector/internal/models"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
)

// Matcher selects an acceptable candidate for a source track from search results.
//
// The acceptance criterion is a strategy rather than hard-coded logic: the
// original behavior is "trust the first API result", while stricter setups
// can demand normalized text equality.
type Matcher interface {
	// Match returns the chosen candidate, or nil when none is acceptable.
	Match(source models.Track, candidates []models.Track) *models.Track
}

// FirstResultMatcher accepts whatever the search API ranked first.
type FirstResultMatcher struct{}

func (FirstResultMatcher) Match(source models.Track, candidates []models.Track) *models.Track {
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// NormalizedMatcher accepts the first candidate whose normalized title and
// artist equal the source's.
type NormalizedMatcher struct{}

func (NormalizedMatcher) Match(source models.Track, candidates []models.Track) *models.Track {
	want := shared.NormalizeTrackKey(source.Title, source.Artist)
	for i := range candidates {
		if shared.NormalizeTrackKey(candidates[i].Title, candidates[i].Artist) == want {
			return &candidates[i]
		}
	}
	return nil
}
