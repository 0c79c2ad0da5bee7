// package services defines interface Service for the destination music provider
//
// Spotify is the only implementation; the interface exists so the migration
// engine and CLI can run against a recording test double.
package services

import (
	"context"

	"github.com/danielr460/itunes-spotify-connector/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the destination-side operations the migration pipeline needs:
// session authentication, track search, playlist creation, and batched track addition.
type Service interface {
	// Authenticate establishes an API session.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// SearchTrack searches for the given source track and selects an acceptable candidate.
	// Returns (nil, nil) when the query succeeds but no candidate is acceptable; an
	// error is reserved for transport or auth failures.
	SearchTrack(ctx context.Context, track models.Track) (*models.Track, error)

	// CreatePlaylist creates a new playlist under the authenticated account.
	CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error)

	// AddTracks appends track URIs to a playlist, chunking to respect the
	// provider's items-per-call limit while preserving order across chunks.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service for providers using an OAuth2 authorization-code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the authorization URL for user login with the given state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying [oauth2.Config] for the callback server.
	GetOAuthConfig() *oauth2.Config
}
