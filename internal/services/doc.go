// Package services defines the [Service] interface for the destination music provider and implements it for Spotify.
//
// # Service Interface
//
// The migration engine only depends on the interface, so tests substitute a
// double that records calls instead of performing network I/O.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication.
//
// The [oauth2.Config] client automatically refreshes expired tokens when a
// refresh token was obtained through the authorization-code flow.
//
// # Candidate Selection
//
// Search results pass through a pluggable [Matcher]:
//   - [FirstResultMatcher] : trust the API's first result (default)
//   - [NormalizedMatcher] : require normalized title/artist equality
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrAuthFailed] : credentials or session rejected
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrSearchFailed] : search endpoint failure
package services
