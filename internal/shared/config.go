package shared

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration sourced from the environment at startup.
//
// A .env file in the working directory is honored when present. All fields
// except the optional ones are required; validation happens before any I/O.
type Config struct {
	ClientID            string
	ClientSecret        string
	RedirectURI         string
	Username            string
	XMLPath             string
	PlaylistName        string
	PlaylistDescription string

	// Optional
	OutputPath  string // unmatched-tracks file, defaults to empty_songs.json
	AccessToken string // pre-obtained token, skips the interactive flow
	LogLevel    string
}

// DefaultOutputPath is where unmatched tracks are written when OUTPUT_PATH is unset.
const DefaultOutputPath = "empty_songs.json"

// LoadConfig reads configuration from the environment, loading a .env file first if one exists.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	config := &Config{
		ClientID:            os.Getenv("CLIENT_ID"),
		ClientSecret:        os.Getenv("CLIENT_SECRET"),
		RedirectURI:         os.Getenv("REDIRECT_URI"),
		Username:            os.Getenv("USER_NAME"),
		XMLPath:             os.Getenv("XML_PATH"),
		PlaylistName:        os.Getenv("PLAYLIST_NAME"),
		PlaylistDescription: os.Getenv("PLAYLIST_DESCRIPTION"),
		OutputPath:          os.Getenv("OUTPUT_PATH"),
		AccessToken:         os.Getenv("ACCESS_TOKEN"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
	}

	if config.OutputPath == "" {
		config.OutputPath = DefaultOutputPath
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required keys were provided.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"CLIENT_ID", c.ClientID},
		{"CLIENT_SECRET", c.ClientSecret},
		{"REDIRECT_URI", c.RedirectURI},
		{"USER_NAME", c.Username},
		{"XML_PATH", c.XMLPath},
		{"PLAYLIST_NAME", c.PlaylistName},
		{"PLAYLIST_DESCRIPTION", c.PlaylistDescription},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingConfig, r.key)
		}
	}

	return nil
}

// Credentials returns the Spotify OAuth credentials as the map form the services layer expects.
func (c *Config) Credentials() map[string]string {
	return map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
		"redirect_uri":  c.RedirectURI,
		"username":      c.Username,
	}
}
