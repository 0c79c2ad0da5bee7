package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("missing required configuration")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Library file errors
	ErrParseFailed = fmt.Errorf("failed to parse library file")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrSearchFailed       = fmt.Errorf("track search failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Output errors
	ErrWriteFailed = fmt.Errorf("failed to write output file")
)
