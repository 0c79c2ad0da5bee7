package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	tu "github.com/danielr460/itunes-spotify-connector/internal/testing"
)

func testRunnerConfig() *shared.Config {
	return &shared.Config{
		ClientID:            "id",
		ClientSecret:        "secret",
		RedirectURI:         "http://localhost:8080/callback",
		Username:            "someone",
		XMLPath:             "Library.xml",
		PlaylistName:        "Road Trip",
		PlaylistDescription: "Imported from iTunes",
		OutputPath:          "empty_songs.json",
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := testRunnerConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			spotify := &tu.MockService{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Spotify: spotify,
				Logger:  logger,
				Output:  output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.spotify != spotify {
				t.Error("expected spotify to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: testRunnerConfig()})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("newEngine", func(t *testing.T) {
		t.Run("builds engine for the selected playlist", func(t *testing.T) {
			config := testRunnerConfig()
			runner := NewRunner(RunnerOpts{
				Config:  config,
				Spotify: &tu.MockService{},
			})

			engine := runner.newEngine("Workout Mix")
			if engine == nil {
				t.Fatal("newEngine() returned nil")
			}
		})

		t.Run("does not mutate the configured playlist name", func(t *testing.T) {
			config := testRunnerConfig()
			runner := NewRunner(RunnerOpts{
				Config:  config,
				Spotify: &tu.MockService{},
			})

			runner.newEngine("Workout Mix")
			if config.PlaylistName != "Road Trip" {
				t.Errorf("config.PlaylistName = %q, want %q", config.PlaylistName, "Road Trip")
			}
		})
	})
}

func TestCallbackAddr(t *testing.T) {
	tests := []struct {
		name        string
		redirectURI string
		want        string
		wantErr     bool
	}{
		{
			name:        "host and port",
			redirectURI: "http://localhost:8080/callback",
			want:        "localhost:8080",
		},
		{
			name:        "default port",
			redirectURI: "http://localhost/callback",
			want:        "localhost:8080",
		},
		{
			name:        "custom host and port",
			redirectURI: "http://127.0.0.1:9999/callback",
			want:        "127.0.0.1:9999",
		},
		{
			name:        "invalid URI",
			redirectURI: "://not-a-uri",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := callbackAddr(tt.redirectURI)
			if (err != nil) != tt.wantErr {
				t.Fatalf("callbackAddr() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("callbackAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}
