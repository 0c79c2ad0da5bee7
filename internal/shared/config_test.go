package shared

import (
	"errors"
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLIENT_ID", "id")
	t.Setenv("CLIENT_SECRET", "secret")
	t.Setenv("REDIRECT_URI", "http://localhost:8080/callback")
	t.Setenv("USER_NAME", "someone")
	t.Setenv("XML_PATH", "Library.xml")
	t.Setenv("PLAYLIST_NAME", "Road Trip")
	t.Setenv("PLAYLIST_DESCRIPTION", "Imported from iTunes")
	t.Setenv("OUTPUT_PATH", "")
	t.Setenv("ACCESS_TOKEN", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadConfig(t *testing.T) {
	t.Run("complete environment", func(t *testing.T) {
		setRequiredEnv(t)

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if config.ClientID != "id" || config.Username != "someone" {
			t.Errorf("LoadConfig() = %+v", config)
		}
		if config.PlaylistName != "Road Trip" {
			t.Errorf("LoadConfig() playlistName = %q", config.PlaylistName)
		}
	})

	t.Run("output path defaults", func(t *testing.T) {
		setRequiredEnv(t)

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.OutputPath != DefaultOutputPath {
			t.Errorf("LoadConfig() outputPath = %q, want %q", config.OutputPath, DefaultOutputPath)
		}
	})

	t.Run("output path override", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("OUTPUT_PATH", "out/misses.json")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.OutputPath != "out/misses.json" {
			t.Errorf("LoadConfig() outputPath = %q", config.OutputPath)
		}
	})

	t.Run("each required key is enforced", func(t *testing.T) {
		requiredKeys := []string{
			"CLIENT_ID", "CLIENT_SECRET", "REDIRECT_URI", "USER_NAME",
			"XML_PATH", "PLAYLIST_NAME", "PLAYLIST_DESCRIPTION",
		}

		for _, key := range requiredKeys {
			t.Run(key, func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv(key, "")

				_, err := LoadConfig()
				if !errors.Is(err, ErrMissingConfig) {
					t.Fatalf("LoadConfig() error = %v, want ErrMissingConfig", err)
				}
				if !strings.Contains(err.Error(), key) {
					t.Errorf("LoadConfig() error %v should name the missing key %s", err, key)
				}
			})
		}
	})
}

func TestConfig_Credentials(t *testing.T) {
	config := &Config{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:8080/callback",
		Username:     "someone",
	}

	creds := config.Credentials()
	want := map[string]string{
		"client_id":     "id",
		"client_secret": "secret",
		"redirect_uri":  "http://localhost:8080/callback",
		"username":      "someone",
	}

	for k, v := range want {
		if creds[k] != v {
			t.Errorf("Credentials()[%q] = %q, want %q", k, creds[k], v)
		}
	}
}
