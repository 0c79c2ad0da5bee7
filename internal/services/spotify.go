// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielr460/itunes-spotify-connector/internal/models"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Spotify caps add-items-to-playlist requests at 100 URIs per call.
	addTracksChunkSize = 100

	searchLimit = 5
)

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Product     string `json:"product"` // premium, free, etc.
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	URI         string `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

type searchTracks struct {
	Items []SpotifyTrack `json:"items"`
	Total int            `json:"total"`
}

// SpotifySearchResponse represents the track portion of a search response.
type SpotifySearchResponse struct {
	Tracks searchTracks `json:"tracks"`
}

type playlistOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTracks struct {
	Total int `json:"total"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       playlistOwner  `json:"owner"`
	Public      bool           `json:"public"`
	Tracks      playlistTracks `json:"tracks"`
	URI         string         `json:"uri"`
}

// SpotifyService implements the Service interface for Spotify API interactions.
// Uses [oauth2] for authentication and provides search, playlist creation, and track addition.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	username   string
	matcher    Matcher
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
//
// The matcher decides which search candidate counts as a match; nil selects
// [FirstResultMatcher], the original behavior.
func NewSpotifyService(credentials map[string]string, matcher Matcher) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	if matcher == nil {
		matcher = FirstResultMatcher{}
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		username:   credentials["username"],
		matcher:    matcher,
		baseURL:    spotifyBaseURL,
	}, nil
}

// Authenticate performs OAuth2 authentication with Spotify. Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.token = &oauth2.Token{AccessToken: accessToken}
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		s.token = token
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code in credentials", shared.ErrAuthFailed)
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig exposes the underlying [oauth2.Config] for the callback server.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated HTTP request to the Spotify API.
//
// A non-nil body is marshaled to JSON; a non-nil result receives the decoded response.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: spotify rejected the session (status %d)", shared.ErrAuthFailed, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Search issues a raw track search query and returns the candidates in API order.
func (s *SpotifyService) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = searchLimit
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), limit)

	var response SpotifySearchResponse
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSearchFailed, err)
	}

	tracks := make([]models.Track, len(response.Tracks.Items))
	for i, item := range response.Tracks.Items {
		tracks[i] = trackFromSpotify(item)
	}

	return tracks, nil
}

// SearchTrack searches for a source track and selects an acceptable candidate.
//
// Issues a fielded query first (artist, track, album, year), then falls back
// to artist and track alone. Returns (nil, nil) when neither query yields an
// acceptable candidate.
func (s *SpotifyService) SearchTrack(ctx context.Context, track models.Track) (*models.Track, error) {
	queries := []string{buildTrackQuery(track, true)}
	if fallback := buildTrackQuery(track, false); fallback != queries[0] {
		queries = append(queries, fallback)
	}

	for _, query := range queries {
		candidates, err := s.Search(ctx, query, searchLimit)
		if err != nil {
			return nil, err
		}

		if matched := s.matcher.Match(track, candidates); matched != nil {
			return matched, nil
		}
	}

	return nil, nil
}

// CreatePlaylist creates a new public playlist under the configured account.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error) {
	if s.username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingConfig)
	}

	body := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Public      bool   `json:"public"`
	}{
		Name:        name,
		Description: description,
		Public:      true,
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(s.username))

	var created SpotifyPlaylist
	if err := s.doRequest(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		Owner:       created.Owner.ID,
		Public:      created.Public,
		TrackCount:  created.Tracks.Total,
	}, nil
}

// AddTracks appends track URIs to the playlist in chunks of at most 100,
// preserving overall order across calls.
func (s *SpotifyService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))

	for start := 0; start < len(uris); start += addTracksChunkSize {
		end := min(start+addTracksChunkSize, len(uris))

		body := struct {
			URIs []string `json:"uris"`
		}{URIs: uris[start:end]}

		if err := s.doRequest(ctx, http.MethodPost, endpoint, body, nil); err != nil {
			return err
		}
	}

	return nil
}

// buildTrackQuery builds a fielded Spotify search query from a source track.
//
// Apostrophes are stripped from the title; Spotify's search treats them
// inconsistently and drops otherwise-exact matches.
func buildTrackQuery(track models.Track, withAlbum bool) string {
	title := strings.ReplaceAll(track.Title, "'", "")

	parts := []string{
		fmt.Sprintf("artist:%s", track.Artist),
		fmt.Sprintf("track:%s", title),
	}

	if withAlbum {
		if track.Album != "" {
			parts = append(parts, fmt.Sprintf("album:%s", track.Album))
		}
		if track.Year != 0 {
			parts = append(parts, fmt.Sprintf("year:%d", track.Year))
		}
	}

	return strings.Join(parts, " ")
}

func trackFromSpotify(st SpotifyTrack) models.Track {
	track := models.Track{
		ID:    st.ID,
		URI:   st.URI,
		Title: st.Name,
		Album: st.Album.Name,
	}

	if len(st.Artists) > 0 {
		track.Artist = st.Artists[0].Name
	}

	if len(st.Album.ReleaseDate) >= 4 {
		// release_date is YYYY or YYYY-MM-DD
		var year int
		if _, err := fmt.Sscanf(st.Album.ReleaseDate[:4], "%d", &year); err == nil {
			track.Year = year
		}
	}

	return track
}
